// Package credentials turns account records from a user store into credentials
// an authentication pipeline can check a password against.
package credentials

import (
	"context"

	"github.com/maximthomas/meetnow-auth/pkg/user"

	"github.com/sirupsen/logrus"
)

// Resolver finds the credential of an identity.
type Resolver interface {
	Resolve(ctx context.Context, identity string) (Credential, error)
}

// StoreResolver resolves credentials with a single user.Store lookup.
// It keeps no state between calls and is safe for concurrent use.
type StoreResolver struct {
	store       user.Store
	authorities AuthoritiesPolicy
	logger      logrus.FieldLogger
}

type Option func(*StoreResolver)

func WithAuthorities(p AuthoritiesPolicy) Option {
	return func(r *StoreResolver) {
		r.authorities = p
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(r *StoreResolver) {
		r.logger = l
	}
}

func NewResolver(store user.Store, opts ...Option) *StoreResolver {
	r := &StoreResolver{
		store:       store,
		authorities: AuthoritiesNone,
		logger:      logrus.StandardLogger().WithField("module", "credentials"),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Resolve looks identity up as is; it is neither validated nor normalized here.
// A missing account yields *IdentityNotFoundError, store failures are returned unchanged.
func (r *StoreResolver) Resolve(ctx context.Context, identity string) (Credential, error) {
	u, exists, err := r.store.FindByEmail(ctx, identity)
	if err != nil {
		return Credential{}, err
	}
	if !exists {
		r.logger.WithField("identity", identity).Debug("identity not found")
		return Credential{}, NewIdentityNotFound(identity)
	}
	return Credential{
		Identity:     u.Email,
		PasswordHash: u.PasswordHash,
		Authorities:  r.mapAuthorities(u.Roles),
	}, nil
}

func (r *StoreResolver) mapAuthorities(roles []string) []string {
	if r.authorities != AuthoritiesRoles {
		return []string{}
	}
	authorities := make([]string, len(roles))
	copy(authorities, roles)
	return authorities
}
