package query

import (
	"testing"
)

func TestLexer_Words(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "keywords",
			input: "SELECT WHERE GROUPBY LIMIT OFFSET AS PLOT",
			expected: []Token{
				{Type: TokenKeyword, Value: "SELECT"},
				{Type: TokenKeyword, Value: "WHERE"},
				{Type: TokenKeyword, Value: "GROUPBY"},
				{Type: TokenKeyword, Value: "LIMIT"},
				{Type: TokenKeyword, Value: "OFFSET"},
				{Type: TokenKeyword, Value: "AS"},
				{Type: TokenKeyword, Value: "PLOT"},
				{Type: TokenEOF, Value: ""},
			},
		},
		{
			name:  "keywords are case sensitive",
			input: "select Where",
			expected: []Token{
				{Type: TokenIdentifier, Value: "select"},
				{Type: TokenIdentifier, Value: "Where"},
				{Type: TokenEOF, Value: ""},
			},
		},
		{
			name:  "plot and aggregation functions",
			input: "BAR LINE SCATTER MIN MAX AVG SUM COUNT",
			expected: []Token{
				{Type: TokenPlotFunction, Value: "BAR"},
				{Type: TokenPlotFunction, Value: "LINE"},
				{Type: TokenPlotFunction, Value: "SCATTER"},
				{Type: TokenAggregationFunction, Value: "MIN"},
				{Type: TokenAggregationFunction, Value: "MAX"},
				{Type: TokenAggregationFunction, Value: "AVG"},
				{Type: TokenAggregationFunction, Value: "SUM"},
				{Type: TokenAggregationFunction, Value: "COUNT"},
				{Type: TokenEOF, Value: ""},
			},
		},
		{
			name:  "logical operators and null",
			input: "AND OR NULL and null",
			expected: []Token{
				{Type: TokenLogicalOperator, Value: "AND"},
				{Type: TokenLogicalOperator, Value: "OR"},
				{Type: TokenNull, Value: "NULL"},
				{Type: TokenIdentifier, Value: "and"},
				{Type: TokenIdentifier, Value: "null"},
				{Type: TokenEOF, Value: ""},
			},
		},
		{
			name:  "identifiers with digits and underscores",
			input: "user_id _tmp col2 BARS",
			expected: []Token{
				{Type: TokenIdentifier, Value: "user_id"},
				{Type: TokenIdentifier, Value: "_tmp"},
				{Type: TokenIdentifier, Value: "col2"},
				{Type: TokenIdentifier, Value: "BARS"},
				{Type: TokenEOF, Value: ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertTokens(t, Tokenize(tt.input), tt.expected)
		})
	}
}

func TestLexer_Operators(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "comparison operators",
			input: "> >= < <= = !=",
			expected: []Token{
				{Type: TokenComparisonOperator, Value: ">"},
				{Type: TokenComparisonOperator, Value: ">="},
				{Type: TokenComparisonOperator, Value: "<"},
				{Type: TokenComparisonOperator, Value: "<="},
				{Type: TokenComparisonOperator, Value: "="},
				{Type: TokenComparisonOperator, Value: "!="},
				{Type: TokenEOF, Value: ""},
			},
		},
		{
			name:  "operators without whitespace",
			input: "a>=1",
			expected: []Token{
				{Type: TokenIdentifier, Value: "a"},
				{Type: TokenComparisonOperator, Value: ">="},
				{Type: TokenNumber, Value: "1"},
				{Type: TokenEOF, Value: ""},
			},
		},
		{
			name:  "doubled operator is two tokens",
			input: ">>",
			expected: []Token{
				{Type: TokenComparisonOperator, Value: ">"},
				{Type: TokenComparisonOperator, Value: ">"},
				{Type: TokenEOF, Value: ""},
			},
		},
		{
			name:  "punctuation",
			input: "COUNT(),",
			expected: []Token{
				{Type: TokenAggregationFunction, Value: "COUNT"},
				{Type: TokenLParen, Value: "("},
				{Type: TokenRParen, Value: ")"},
				{Type: TokenComma, Value: ","},
				{Type: TokenEOF, Value: ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertTokens(t, Tokenize(tt.input), tt.expected)
		})
	}
}

func TestLexer_Literals(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Token
	}{
		{
			name:     "integer",
			input:    "42",
			expected: Token{Type: TokenNumber, Value: "42"},
		},
		{
			name:     "decimal",
			input:    "3.14",
			expected: Token{Type: TokenNumber, Value: "3.14"},
		},
		{
			name:     "single quoted string",
			input:    "'hello world'",
			expected: Token{Type: TokenString, Value: "hello world"},
		},
		{
			name:     "double quoted string",
			input:    `"hello world"`,
			expected: Token{Type: TokenString, Value: "hello world"},
		},
		{
			name:     "escaped quote",
			input:    `'it\'s'`,
			expected: Token{Type: TokenString, Value: "it's"},
		},
		{
			name:     "escape sequences",
			input:    `'a\tb\nc\\'`,
			expected: Token{Type: TokenString, Value: "a\tb\nc\\"},
		},
		{
			name:     "empty string",
			input:    `''`,
			expected: Token{Type: TokenString, Value: ""},
		},
		{
			name:     "keyword inside string",
			input:    `'SELECT'`,
			expected: Token{Type: TokenString, Value: "SELECT"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := NewLexer(tt.input).NextToken()
			if tok.Type != tt.expected.Type {
				t.Errorf("expected type %v, got %v", tt.expected.Type, tok.Type)
			}
			if tok.Value != tt.expected.Value {
				t.Errorf("expected value %q, got %q", tt.expected.Value, tok.Value)
			}
		})
	}
}

func TestLexer_Illegal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		value string
	}{
		{name: "bang alone", input: "!", value: "!"},
		{name: "minus sign", input: "-5", value: "-"},
		{name: "semicolon", input: ";", value: ";"},
		{name: "star", input: "*", value: "*"},
		{name: "unterminated string", input: "'abc", value: "'abc"},
		{name: "unterminated after escape", input: `'abc\`, value: `'abc\`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := NewLexer(tt.input).NextToken()
			if tok.Type != TokenIllegal {
				t.Fatalf("expected ILLEGAL, got %v", tok)
			}
			if tok.Value != tt.value {
				t.Errorf("expected value %q, got %q", tt.value, tok.Value)
			}
		})
	}
}

func TestLexer_EOFIsIdempotent(t *testing.T) {
	l := NewLexer("  a ")
	if tok := l.NextToken(); tok.Type != TokenIdentifier {
		t.Fatalf("expected identifier, got %v", tok)
	}
	for i := 0; i < 3; i++ {
		tok := l.NextToken()
		if tok.Type != TokenEOF {
			t.Fatalf("call %d: expected EOF, got %v", i, tok)
		}
		if l.Pos() != 4 {
			t.Errorf("call %d: expected position 4, got %d", i, l.Pos())
		}
	}
}

func TestLexer_Positions(t *testing.T) {
	l := NewLexer("SELECT  a,\n b")
	want := []struct {
		typ     TokenType
		start   int
		scanPos int
	}{
		{TokenKeyword, 0, 6},
		{TokenIdentifier, 8, 9},
		{TokenComma, 9, 10},
		{TokenIdentifier, 12, 13},
		{TokenEOF, 13, 13},
	}
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != w.typ {
			t.Fatalf("token %d: expected %v, got %v", i, w.typ, tok)
		}
		if tok.Pos != w.start {
			t.Errorf("token %d: expected start %d, got %d", i, w.start, tok.Pos)
		}
		if l.Pos() != w.scanPos {
			t.Errorf("token %d: expected scan position %d, got %d", i, w.scanPos, l.Pos())
		}
	}
}

func TestLexer_DecimalEdge(t *testing.T) {
	assertTokens(t, Tokenize("1.x"), []Token{
		{Type: TokenNumber, Value: "1"},
		{Type: TokenIllegal, Value: "."},
	})
}

func TestTokenType_String(t *testing.T) {
	if got := TokenComparisonOperator.String(); got != "COMPARISON_OPERATOR" {
		t.Errorf("unexpected name %q", got)
	}
	if got := TokenType(99).String(); got != "TokenType(99)" {
		t.Errorf("unexpected name %q", got)
	}
	tok := Token{Type: TokenIdentifier, Value: "x"}
	if got := tok.String(); got != `IDENTIFIER "x"` {
		t.Errorf("unexpected token string %q", got)
	}
}

func assertTokens(t *testing.T, got, want []Token) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(got), got)
	}
	for i, tok := range got {
		if tok.Type != want[i].Type {
			t.Errorf("token %d: expected type %v, got %v", i, want[i].Type, tok.Type)
		}
		if tok.Value != want[i].Value {
			t.Errorf("token %d: expected value %q, got %q", i, want[i].Value, tok.Value)
		}
	}
}
