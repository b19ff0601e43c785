package user

import (
	"context"
	"io"

	"github.com/maximthomas/meetnow-auth/pkg/log"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	TypeMemory   = "memory"
	TypeMongoDB  = "mongodb"
	TypePostgres = "postgres"
	TypeLdap     = "ldap"
	TypeRest     = "rest"
)

// Config selects a Store backend and carries its backend specific properties.
type Config struct {
	Type       string                 `yaml:"type"`
	Properties map[string]interface{} `yaml:"properties,omitempty"`
}

type memoryProperties struct {
	CaseInsensitive bool
	Users           []User
}

func logger() logrus.FieldLogger {
	return log.WithField("module", "user")
}

// NewStore creates the Store described by uc. An empty type selects the memory store.
func NewStore(ctx context.Context, uc Config) (Store, error) {
	switch uc.Type {
	case TypeMemory, "":
		var p memoryProperties
		if err := decodeProperties(uc.Properties, &p); err != nil {
			return nil, err
		}
		s := NewInMemoryStore(!p.CaseInsensitive)
		for _, u := range p.Users {
			if err := s.Add(u); err != nil {
				return nil, errors.Wrap(err, "error seeding memory user store")
			}
		}
		logger().Infof("using memory user store with %v users", s.Len())
		return s, nil
	case TypeMongoDB:
		var p mongoProperties
		if err := decodeProperties(uc.Properties, &p); err != nil {
			return nil, err
		}
		return newUserMongoRepository(ctx, p)
	case TypePostgres:
		var p postgresProperties
		if err := decodeProperties(uc.Properties, &p); err != nil {
			return nil, err
		}
		return openUserPostgresRepository(ctx, p)
	case TypeLdap:
		ur := &userLdapRepository{}
		if err := decodeProperties(uc.Properties, ur); err != nil {
			return nil, err
		}
		ur.setDefaults()
		return ur, nil
	case TypeRest:
		var p restProperties
		if err := decodeProperties(uc.Properties, &p); err != nil {
			return nil, err
		}
		if p.Endpoint == "" {
			return nil, errors.New("rest user store requires an endpoint")
		}
		return newUserRestRepository(p), nil
	default:
		return nil, errors.Errorf("unknown user store type %v", uc.Type)
	}
}

// Close releases resources held by s, if any.
func Close(s Store) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func decodeProperties(props map[string]interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return errors.Wrap(err, "error creating properties decoder")
	}
	if err = dec.Decode(props); err != nil {
		return errors.Wrap(err, "error decoding user store properties")
	}
	return nil
}
