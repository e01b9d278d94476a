package query

import "fmt"

// Limits applied while parsing untrusted query text
const (
	// MaxQueryLength is the maximum allowed query string length (1MB)
	MaxQueryLength = 1024 * 1024

	// MaxExpressionDepth is the maximum nesting depth of WHERE conditions
	MaxExpressionDepth = 100

	// MaxColumnNameLength is the maximum length for a column name or alias
	MaxColumnNameLength = 256
)

// ValidateQuery checks the raw query text before tokenizing
func ValidateQuery(query string) error {
	if len(query) > MaxQueryLength {
		return &SyntaxError{
			Msg: fmt.Sprintf("%d bytes (max %d)", len(query), MaxQueryLength),
			Err: ErrQueryTooLong,
		}
	}
	return nil
}

// validateColumnName checks identifier length
func validateColumnName(tok Token, pos int) error {
	if len(tok.Value) > MaxColumnNameLength {
		return &SyntaxError{
			Msg:   fmt.Sprintf("column name of %d chars (max %d)", len(tok.Value), MaxColumnNameLength),
			Pos:   pos,
			Token: tok,
			Err:   ErrColumnNameTooLong,
		}
	}
	return nil
}

// depthCounter tracks condition nesting depth
type depthCounter struct {
	depth    int
	maxDepth int
}

func newDepthCounter() *depthCounter {
	return &depthCounter{maxDepth: MaxExpressionDepth}
}

// enter increments depth and returns an error if the limit is exceeded
func (c *depthCounter) enter(tok Token, pos int) error {
	c.depth++
	if c.depth > c.maxDepth {
		return &SyntaxError{
			Msg:   fmt.Sprintf("condition nested %d levels deep (max %d)", c.depth, c.maxDepth),
			Pos:   pos,
			Token: tok,
			Err:   ErrExpressionTooDeep,
		}
	}
	return nil
}

func (c *depthCounter) exit() {
	c.depth--
}
