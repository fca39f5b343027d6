package errors

import "github.com/muhammadheryan/marketplace/constant"

type CustomError struct {
	errType constant.ErrorType
	message string
	cause   error
}

func (c CustomError) Error() string {
	if c.message != "" {
		return c.message
	}
	return constant.ErrorTypeMessage[c.errType]
}

func (c CustomError) ErrorCode() string {
	return constant.ErrorTypeCode[c.errType]
}

func (c CustomError) ErrorHTTPCode() int {
	return constant.ErrorTypeHTTPCode[c.errType]
}

func (c CustomError) Type() constant.ErrorType {
	return c.errType
}

// Cause returns the underlying error, if any. It is never sent to clients
// outside development mode.
func (c CustomError) Cause() error {
	return c.cause
}

func (c CustomError) Unwrap() error {
	return c.cause
}

// WithMessage replaces the catalogue message with a more specific one.
func (c CustomError) WithMessage(msg string) CustomError {
	c.message = msg
	return c
}

func (c CustomError) WithCause(err error) CustomError {
	c.cause = err
	return c
}

func SetCustomError(errorType constant.ErrorType) CustomError {
	return CustomError{
		errType: errorType,
	}
}

// Is reports whether err is a CustomError of the given type.
func Is(err error, errorType constant.ErrorType) bool {
	ce, ok := err.(CustomError)
	return ok && ce.errType == errorType
}
