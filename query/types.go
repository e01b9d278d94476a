package query

import "fmt"

// TokenType represents the type of a token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIllegal

	// Words
	TokenKeyword             // SELECT, WHERE, GROUPBY, LIMIT, OFFSET, AS, PLOT
	TokenIdentifier          // column names
	TokenPlotFunction        // BAR, LINE, SCATTER
	TokenAggregationFunction // MIN, MAX, AVG, SUM, COUNT

	// Punctuation
	TokenLParen // (
	TokenRParen // )
	TokenComma  // ,

	// Literals
	TokenString
	TokenNumber
	TokenNull

	// Operators
	TokenComparisonOperator // >, >=, <, <=, =, !=
	TokenLogicalOperator    // AND, OR
)

var tokenTypeNames = [...]string{
	TokenEOF:                 "EOF",
	TokenIllegal:             "ILLEGAL",
	TokenKeyword:             "KEYWORD",
	TokenIdentifier:          "IDENTIFIER",
	TokenPlotFunction:        "PLOT_FUNCTION",
	TokenAggregationFunction: "AGGREGATION_FUNCTION",
	TokenLParen:              "LPAREN",
	TokenRParen:              "RPAREN",
	TokenComma:               "COMMA",
	TokenString:              "STRING",
	TokenNumber:              "NUMBER",
	TokenNull:                "NULL",
	TokenComparisonOperator:  "COMPARISON_OPERATOR",
	TokenLogicalOperator:     "LOGICAL_OPERATOR",
}

func (t TokenType) String() string {
	if t >= 0 && int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Reserved words. Matching is case-sensitive.
const (
	KeywordSelect  = "SELECT"
	KeywordWhere   = "WHERE"
	KeywordGroupBy = "GROUPBY"
	KeywordLimit   = "LIMIT"
	KeywordOffset  = "OFFSET"
	KeywordAs      = "AS"
	KeywordPlot    = "PLOT"

	LogicalAnd = "AND"
	LogicalOr  = "OR"

	LiteralNull = "NULL"
)

// wordTypes classifies word-like lexemes that are not plain identifiers.
// It is never modified after package initialization.
var wordTypes = map[string]TokenType{
	KeywordSelect:  TokenKeyword,
	KeywordWhere:   TokenKeyword,
	KeywordGroupBy: TokenKeyword,
	KeywordLimit:   TokenKeyword,
	KeywordOffset:  TokenKeyword,
	KeywordAs:      TokenKeyword,
	KeywordPlot:    TokenKeyword,

	string(PlotBar):     TokenPlotFunction,
	string(PlotLine):    TokenPlotFunction,
	string(PlotScatter): TokenPlotFunction,

	string(AggregationMin):   TokenAggregationFunction,
	string(AggregationMax):   TokenAggregationFunction,
	string(AggregationAvg):   TokenAggregationFunction,
	string(AggregationSum):   TokenAggregationFunction,
	string(AggregationCount): TokenAggregationFunction,

	LogicalAnd: TokenLogicalOperator,
	LogicalOr:  TokenLogicalOperator,

	LiteralNull: TokenNull,
}

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Value string
	Pos   int // byte offset of the first character
}

func (t Token) String() string {
	if t.Type == TokenEOF {
		return t.Type.String()
	}
	return fmt.Sprintf("%s %q", t.Type, t.Value)
}

// is reports whether the token has the given type and value.
func (t Token) is(typ TokenType, value string) bool {
	return t.Type == typ && t.Value == value
}
