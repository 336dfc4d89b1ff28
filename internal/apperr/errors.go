package apperr

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// ProviderPrice names the price history provider in upstream errors.
const ProviderPrice = "price"

// UpstreamError reports a failure contacting an external provider: network,
// non-2xx status or a malformed envelope.
type UpstreamError struct {
	Provider string
	Err      error
}

func (e *UpstreamError) Error() string {
	return "upstream " + e.Provider + ": " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func NewUpstream(provider string, err error) *UpstreamError {
	return &UpstreamError{Provider: provider, Err: err}
}

// PersistenceError reports a database connection, read or write failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return "persistence " + e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func NewPersistence(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

// AuthError reports a failed token exchange with the social provider.
type AuthError struct {
	Provider string
	Err      error
}

func (e *AuthError) Error() string {
	return "auth " + e.Provider + ": " + e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

func NewAuth(provider string, err error) *AuthError {
	return &AuthError{Provider: provider, Err: err}
}
