package domain

import "errors"

// kindError tags err with an error kind without changing its text.
type kindError struct {
	kind error
	err  error
}

// WithKind returns err tagged so that errors.Is(result, kind) holds,
// whatever wrapping err already carries. A nil err stays nil.
func WithKind(err, kind error) error {
	if err == nil {
		return nil
	}
	return &kindError{kind: kind, err: err}
}

func (e *kindError) Error() string {
	return e.err.Error()
}

func (e *kindError) Unwrap() error {
	return e.err
}

func (e *kindError) Is(target error) bool {
	return target == e.kind || errors.Is(e.kind, target)
}
