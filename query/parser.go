package query

import (
	"fmt"
	"strconv"
)

// Parser builds an SPLQuery from a token source using one token of lookahead.
// A Parser is single-use and not safe for concurrent use.
type Parser struct {
	src   TokenSource
	cur   Token
	depth *depthCounter
}

// NewParser creates a new parser and reads the first token from src
func NewParser(src TokenSource) *Parser {
	p := &Parser{
		src:   src,
		depth: newDepthCounter(),
	}
	p.advance()
	return p
}

// Parse parses an SPL query string
func Parse(input string) (*SPLQuery, error) {
	if err := ValidateQuery(input); err != nil {
		return nil, err
	}
	return NewParser(NewLexer(input)).Parse()
}

// Parse consumes the whole token stream and returns the query. No partial
// result is returned on error.
func (p *Parser) Parse() (*SPLQuery, error) {
	q := &SPLQuery{}

	if p.cur.is(TokenKeyword, KeywordPlot) {
		plot, err := p.parsePlotClause()
		if err != nil {
			return nil, err
		}
		q.PlotClause = plot
	}

	columns, err := p.parseSelectClause()
	if err != nil {
		return nil, err
	}
	q.SelectColumns = columns

	if p.cur.is(TokenKeyword, KeywordWhere) {
		p.advance()
		cond, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		q.WhereCondition = cond
	}

	if p.cur.is(TokenKeyword, KeywordGroupBy) {
		p.advance()
		key, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		q.GroupKey = key
	}

	if p.cur.is(TokenKeyword, KeywordLimit) {
		window, err := p.parseLimitOffset()
		if err != nil {
			return nil, err
		}
		q.LimitAndOffset = window
	}

	if _, err := p.expect(TokenEOF); err != nil {
		return nil, err
	}
	return q, nil
}

func (p *Parser) advance() {
	p.cur = p.src.NextToken()
}

// errorf reports a violation at the current lookahead token
func (p *Parser) errorf(format string, args ...any) error {
	return p.errorAt(p.cur, format, args...)
}

func (p *Parser) errorAt(tok Token, format string, args ...any) error {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...), Pos: p.src.Pos(), Token: tok}
}

// expect checks the current token type, consumes it and returns it
func (p *Parser) expect(typ TokenType) (Token, error) {
	tok := p.cur
	if tok.Type != typ {
		return tok, p.errorf("expected %s, got %s", typ, tok)
	}
	p.advance()
	return tok, nil
}

// expectKeyword consumes the given keyword
func (p *Parser) expectKeyword(keyword string) error {
	if !p.cur.is(TokenKeyword, keyword) {
		return p.errorf("expected %s, got %s", keyword, p.cur)
	}
	p.advance()
	return nil
}

func (p *Parser) expectIdentifier() (string, error) {
	pos := p.src.Pos()
	tok, err := p.expect(TokenIdentifier)
	if err != nil {
		return "", err
	}
	if err := validateColumnName(tok, pos); err != nil {
		return "", err
	}
	return tok.Value, nil
}

// parsePlotClause parses: PLOT fn ( ident , ident )
func (p *Parser) parsePlotClause() (PlotClause, error) {
	if err := p.expectKeyword(KeywordPlot); err != nil {
		return nil, err
	}
	fn, err := p.expect(TokenPlotFunction)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	first, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenComma); err != nil {
		return nil, err
	}
	second, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	switch PlotFunction(fn.Value) {
	case PlotBar:
		return &CategoricalPlot{CategoriesIdentifier: first, ValuesIdentifier: second}, nil
	case PlotLine, PlotScatter:
		return &PointPlot{PlotFunction: PlotFunction(fn.Value), XIdentifier: first, YIdentifier: second}, nil
	default:
		return nil, p.errorAt(fn, "unknown plot function %q", fn.Value)
	}
}

// parseSelectClause parses SELECT column, column, ...
//
// Columns continue until a keyword or EOF; any other token after a column
// must be a comma.
func (p *Parser) parseSelectClause() ([]SelectColumn, error) {
	if err := p.expectKeyword(KeywordSelect); err != nil {
		return nil, err
	}

	var columns []SelectColumn
	for {
		col, err := p.parseColumn()
		if err != nil {
			return nil, err
		}
		columns = append(columns, col)

		if p.cur.Type == TokenKeyword || p.cur.Type == TokenEOF {
			return columns, nil
		}
		if _, err := p.expect(TokenComma); err != nil {
			return nil, err
		}
	}
}

// parseColumn parses: (aggFn "(" ident? ")" | ident) (AS ident)?
func (p *Parser) parseColumn() (SelectColumn, error) {
	var col SelectColumn

	if p.cur.Type == TokenAggregationFunction {
		fnTok := p.cur
		fn := AggregationFunction(fnTok.Value)
		p.advance()
		if _, err := p.expect(TokenLParen); err != nil {
			return col, err
		}
		if p.cur.Type == TokenIdentifier {
			name, err := p.expectIdentifier()
			if err != nil {
				return col, err
			}
			col.Column = name
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return col, err
		}

		if fn == AggregationCount && col.Column != "" {
			return col, p.errorAt(fnTok, "COUNT takes no argument, got %q", col.Column)
		}
		if fn != AggregationCount && col.Column == "" {
			return col, p.errorAt(fnTok, "%s requires a column argument", fn)
		}
		col.AggregationFunction = fn
		col.Identifier = fmt.Sprintf("%s(%s)", fn, col.Column)
	} else {
		name, err := p.expectIdentifier()
		if err != nil {
			return col, err
		}
		col.Column = name
		col.Identifier = name
	}

	if p.cur.is(TokenKeyword, KeywordAs) {
		p.advance()
		alias, err := p.expectIdentifier()
		if err != nil {
			return col, err
		}
		col.Identifier = alias
	}

	return col, nil
}

// parseCondition parses OR-separated groups (lowest precedence)
func (p *Parser) parseCondition() (WhereCondition, error) {
	if err := p.depth.enter(p.cur, p.src.Pos()); err != nil {
		return nil, err
	}
	defer p.depth.exit()

	first, err := p.parseAndGroup()
	if err != nil {
		return nil, err
	}
	conds := []WhereCondition{first}

	for p.cur.is(TokenLogicalOperator, LogicalOr) {
		p.advance()
		next, err := p.parseAndGroup()
		if err != nil {
			return nil, err
		}
		conds = append(conds, next)
	}

	if len(conds) == 1 {
		return conds[0], nil
	}
	return &Or{Conditions: conds}, nil
}

// parseAndGroup parses AND-separated units (binds tighter than OR)
func (p *Parser) parseAndGroup() (WhereCondition, error) {
	first, err := p.parseConditionUnit()
	if err != nil {
		return nil, err
	}
	conds := []WhereCondition{first}

	for p.cur.is(TokenLogicalOperator, LogicalAnd) {
		p.advance()
		next, err := p.parseConditionUnit()
		if err != nil {
			return nil, err
		}
		conds = append(conds, next)
	}

	if len(conds) == 1 {
		return conds[0], nil
	}
	return &And{Conditions: conds}, nil
}

func (p *Parser) parseConditionUnit() (WhereCondition, error) {
	if p.cur.Type != TokenLParen {
		return p.parseComparison()
	}
	p.advance()
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	return cond, nil
}

// parseComparison parses: ident op value
func (p *Parser) parseComparison() (WhereCondition, error) {
	key, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	op, err := p.expect(TokenComparisonOperator)
	if err != nil {
		return nil, err
	}

	switch op.Value {
	case ">", ">=", "<", "<=":
		n, err := p.parseNumber()
		if err != nil {
			return nil, err
		}
		switch op.Value {
		case ">":
			return &Gt{Key: key, Value: n}, nil
		case ">=":
			return &Gte{Key: key, Value: n}, nil
		case "<":
			return &Lt{Key: key, Value: n}, nil
		default:
			return &Lte{Key: key, Value: n}, nil
		}
	case "=", "!=":
		v, err := p.parseEqualityValue()
		if err != nil {
			return nil, err
		}
		if op.Value == "=" {
			return &Eq{Key: key, Value: v}, nil
		}
		return &Neq{Key: key, Value: v}, nil
	default:
		return nil, p.errorAt(op, "unknown comparison operator %q", op.Value)
	}
}

func (p *Parser) parseNumber() (float64, error) {
	tok, err := p.expect(TokenNumber)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseFloat(tok.Value, 64)
	if err != nil {
		return 0, p.errorAt(tok, "invalid number %q", tok.Value)
	}
	return n, nil
}

// parseEqualityValue parses the string, number or NULL operand of = and !=
func (p *Parser) parseEqualityValue() (Value, error) {
	switch p.cur.Type {
	case TokenString:
		v := StringValue(p.cur.Value)
		p.advance()
		return v, nil
	case TokenNumber:
		n, err := p.parseNumber()
		if err != nil {
			return Value{}, err
		}
		return NumberValue(n), nil
	case TokenNull:
		p.advance()
		return NullValue(), nil
	default:
		return Value{}, p.errorf("expected string, number or NULL, got %s", p.cur)
	}
}

// parseLimitOffset parses: LIMIT n (OFFSET n)?
func (p *Parser) parseLimitOffset() (*LimitAndOffset, error) {
	if err := p.expectKeyword(KeywordLimit); err != nil {
		return nil, err
	}
	limit, err := p.parseCount()
	if err != nil {
		return nil, err
	}
	window := &LimitAndOffset{Limit: limit}

	if p.cur.is(TokenKeyword, KeywordOffset) {
		p.advance()
		offset, err := p.parseCount()
		if err != nil {
			return nil, err
		}
		window.Offset = offset
	}
	return window, nil
}

// parseCount parses a non-negative integer literal
func (p *Parser) parseCount() (int, error) {
	tok, err := p.expect(TokenNumber)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok.Value)
	if err != nil {
		return 0, p.errorAt(tok, "expected non-negative integer, got %q", tok.Value)
	}
	return n, nil
}
