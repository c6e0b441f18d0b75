package lot

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput is the sentinel matched by every caller-input error
// produced by this package. Handlers map it to a 400 response.
var ErrInvalidInput = errors.New("invalid input")

// ErrQueryExecution is the sentinel wrapped by storage failures during
// plan execution. Handlers map it to a 500 response.
var ErrQueryExecution = errors.New("query execution failed")

// ErrNotFound indicates a single-lot lookup matched no row.
var ErrNotFound = errors.New("auction lot not found")

// UnsupportedFieldsetError reports unknown fieldset tokens together with
// the full supported list so callers can self-correct.
type UnsupportedFieldsetError struct {
	Tokens    []Fieldset
	Supported []Fieldset
}

func (e *UnsupportedFieldsetError) Error() string {
	bad := make([]string, len(e.Tokens))
	for i, t := range e.Tokens {
		bad[i] = string(t)
	}
	supported := make([]string, len(e.Supported))
	for i, s := range e.Supported {
		supported[i] = string(s)
	}
	return fmt.Sprintf("unsupported fieldset(s) %s, supported fieldsets are: %s",
		strings.Join(bad, ", "), strings.Join(supported, ", "))
}

func (e *UnsupportedFieldsetError) Is(target error) bool {
	return target == ErrInvalidInput
}

// TooManyLotIDsError reports a lot id filter exceeding the per-request cap.
type TooManyLotIDsError struct {
	Count int
	Max   int
}

func (e *TooManyLotIDsError) Error() string {
	return fmt.Sprintf("too many lot ids: %d exceeds the maximum of %d", e.Count, e.Max)
}

func (e *TooManyLotIDsError) Is(target error) bool {
	return target == ErrInvalidInput
}
