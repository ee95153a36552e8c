package jwtsign

// ErrorCode represents signing error categories.
type ErrorCode string

const (
	ErrCodeInvalidKey    ErrorCode = "invalid_key"
	ErrCodeInvalidInput  ErrorCode = "invalid_input"
	ErrCodeSigningFailed ErrorCode = "signing_failed"
	ErrCodeInternal      ErrorCode = "internal_error"
)

var errorMessages = map[ErrorCode]string{
	ErrCodeInvalidKey:    "Invalid signing key",
	ErrCodeInvalidInput:  "Invalid input",
	ErrCodeSigningFailed: "Signing failed",
	ErrCodeInternal:      "Internal error",
}

// Error reports why a token could not be minted.
type Error struct {
	Code ErrorCode
	Err  error
}

func (e *Error) Error() string {
	msg, ok := errorMessages[e.Code]
	if !ok {
		msg = string(e.Code)
	}
	if e.Err == nil {
		return msg
	}
	return msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, err error) error {
	return &Error{Code: code, Err: err}
}
