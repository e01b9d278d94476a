package query

import (
	"errors"
	"fmt"
)

var (
	// ErrQueryTooLong is wrapped when the query text exceeds MaxQueryLength
	ErrQueryTooLong = errors.New("query too long")

	// ErrExpressionTooDeep is wrapped when predicate nesting exceeds MaxExpressionDepth
	ErrExpressionTooDeep = errors.New("expression nesting too deep")

	// ErrColumnNameTooLong is wrapped when an identifier exceeds MaxColumnNameLength
	ErrColumnNameTooLong = errors.New("column name too long")
)

// SyntaxError is returned for every malformed query. Pos is the lexer's scan
// offset when the violation was detected. Token is the offending token; its
// Pos is where that token starts. Token is zero for errors raised before
// tokenizing.
type SyntaxError struct {
	Msg   string
	Pos   int
	Token Token
	Err   error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d: %s", e.Pos, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
