package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrCredentialExists
	ErrInvalidCredentials
	ErrForbidden
	ErrInvalidStatusTransition
	ErrServiceUnavailable
	ErrConflict
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:                 "success",
	ErrInternal:                "Internal server error",
	ErrNotFound:                "Not found",
	ErrInvalidRequest:          "Invalid request",
	ErrUnauthorize:             "Not authenticated. Please log in.",
	ErrCredentialExists:        "Email already registered",
	ErrInvalidCredentials:      "Invalid email or password",
	ErrForbidden:               "Account is disabled",
	ErrInvalidStatusTransition: "Invalid status transition",
	ErrServiceUnavailable:      "Service temporarily unavailable",
	ErrConflict:                "Resource already exists",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:                 http.StatusOK,
	ErrInternal:                http.StatusInternalServerError,
	ErrNotFound:                http.StatusNotFound,
	ErrInvalidRequest:          http.StatusBadRequest,
	ErrUnauthorize:             http.StatusUnauthorized,
	ErrCredentialExists:        http.StatusConflict,
	ErrInvalidCredentials:      http.StatusUnauthorized,
	ErrForbidden:               http.StatusForbidden,
	ErrInvalidStatusTransition: http.StatusBadRequest,
	ErrServiceUnavailable:      http.StatusServiceUnavailable,
	ErrConflict:                http.StatusConflict,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:                 "0000",
	ErrInternal:                "0001",
	ErrNotFound:                "0002",
	ErrInvalidRequest:          "0003",
	ErrUnauthorize:             "0004",
	ErrCredentialExists:        "0005",
	ErrInvalidCredentials:      "0006",
	ErrForbidden:               "0007",
	ErrInvalidStatusTransition: "0008",
	ErrServiceUnavailable:      "0009",
	ErrConflict:                "0010",
}
