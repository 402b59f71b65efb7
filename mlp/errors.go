package mlp

import "github.com/pkg/errors"

// These are the errors that a restore may fail with. Use errors.Cause to compare.
var (
	ErrHeader    = errors.New("missing or malformed topologie header")
	ErrZeroWidth = errors.New("layer with zero neurons")
	ErrRecord    = errors.New("missing or malformed record")
)

// recordError is returned when a neurone or connection line is not where it was expected.
type recordError struct {
	line int
	text string
	msg  string
}

func (err recordError) Error() string {
	return errors.Wrapf(ErrRecord, "line %d %q: %s", err.line, err.text, err.msg).Error()
}

func (err recordError) Cause() error { return ErrRecord }
