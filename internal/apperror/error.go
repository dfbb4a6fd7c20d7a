package apperror

import "errors"

// Error is a business rule violation tagged with a Code. Err, when set, is the
// underlying cause and is never shown to clients.
type Error struct {
	Code Code
	Err  error
}

// New returns an Error for the code.
func New(code Code) *Error {
	return &Error{Code: code}
}

// Wrap returns an Error for the code that keeps err as its cause.
func Wrap(code Code, err error) *Error {
	return &Error{Code: code, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Err.Error()
	}
	return string(e.Code) + ": " + e.Code.Message()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// GetCode extracts the error code from any error.
// Returns CodeInternal if the error is not a business error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// IsCode checks if the error has the specified code.
func IsCode(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}
