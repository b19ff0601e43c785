package authn

import (
	"context"

	"github.com/maximthomas/meetnow-auth/pkg/credentials"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for unknown accounts and wrong passwords alike.
var ErrInvalidCredentials = errors.New("invalid email or password")

// unknownAccountHash is compared against for unknown accounts so that they cost
// as much as a wrong password.
var unknownAccountHash []byte

func init() {
	var err error
	unknownAccountHash, err = bcrypt.GenerateFromPassword([]byte("unknown account"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
}

// Manager checks a submitted password against the resolved credential.
type Manager struct {
	resolver credentials.Resolver
	logger   logrus.FieldLogger
	compare  func(hash, password []byte) error
}

func NewManager(r credentials.Resolver, logger logrus.FieldLogger) *Manager {
	return &Manager{
		resolver: r,
		logger:   logger,
		compare:  bcrypt.CompareHashAndPassword,
	}
}

// Authenticate returns the credential of email when password matches its hash.
func (m *Manager) Authenticate(ctx context.Context, email, password string) (credentials.Credential, error) {
	if email == "" || password == "" {
		return credentials.Credential{}, ErrInvalidCredentials
	}

	c, err := m.resolver.Resolve(ctx, email)
	if errors.Is(err, credentials.ErrIdentityNotFound) {
		_ = m.compare(unknownAccountHash, []byte(password))
		m.logger.WithField("email", email).Info("authentication failed: unknown account")
		return credentials.Credential{}, ErrInvalidCredentials
	}
	if err != nil {
		return credentials.Credential{}, errors.Wrap(err, "error resolving credentials")
	}

	if err = m.compare([]byte(c.PasswordHash), []byte(password)); err != nil {
		m.logger.WithField("email", email).Info("authentication failed: password mismatch")
		return credentials.Credential{}, ErrInvalidCredentials
	}
	return c, nil
}
