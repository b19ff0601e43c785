package credentials

import "github.com/pkg/errors"

// ErrIdentityNotFound matches every *IdentityNotFoundError with errors.Is.
var ErrIdentityNotFound = errors.New("identity not found")

// IdentityNotFoundError reports that the user store holds no account for Identity.
type IdentityNotFoundError struct {
	Identity string
}

func NewIdentityNotFound(identity string) *IdentityNotFoundError {
	return &IdentityNotFoundError{Identity: identity}
}

func (e *IdentityNotFoundError) Error() string {
	return "email not found: " + e.Identity
}

func (e *IdentityNotFoundError) Is(target error) bool {
	return target == ErrIdentityNotFound
}
