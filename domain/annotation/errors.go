package annotation

import (
	"errors"
	"fmt"
)

// ErrShortLine reports an annotation line with fewer than five fields.
var ErrShortLine = errors.New("expected \"class cx cy w h\"")

// FormatError describes a malformed annotation line. Line is 1-based and zero
// when the text was parsed on its own.
type FormatError struct {
	Line int
	Text string
	Err  error
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("annotation line %d %q: %v", e.Line, e.Text, e.Err)
	}
	return fmt.Sprintf("annotation line %q: %v", e.Text, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }
