package dataset

import (
	"errors"
	"fmt"
)

// Raised when the motif edge list shares no (TF, gene) pairs with the known
// TF and gene sets. Callers may treat it as a warning and keep the all-zero
// matrix.
var ErrEmptyIntersection = errors.New("motif edge list has no rows matching the TF and gene sets")

// MalformedInputError reports an input file that does not parse into the
// expected column shape or numeric type.
type MalformedInputError struct {
	Path string
	Line int
	Msg  string
}

func (e *MalformedInputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed input %s:%d: %s", e.Path, e.Line, e.Msg)
	}
	return fmt.Sprintf("malformed input %s: %s", e.Path, e.Msg)
}
