package user

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/go-ldap/ldap/v3"
	"github.com/pkg/errors"
)

const (
	ldapSearchTimeout = 100

	defaultLdapEmailAttribute    = "mail"
	defaultLdapPasswordAttribute = "userPassword"
	defaultLdapRolesAttribute    = "memberOf"
	defaultLdapTimeout           = 5 * time.Second
)

type userLdapRepository struct {
	Address           string
	BindDN            string
	Password          string
	BaseDN            string
	EmailAttribute    string
	PasswordAttribute string
	RolesAttribute    string
	Timeout           time.Duration
}

func (ur *userLdapRepository) setDefaults() {
	if ur.EmailAttribute == "" {
		ur.EmailAttribute = defaultLdapEmailAttribute
	}
	if ur.PasswordAttribute == "" {
		ur.PasswordAttribute = defaultLdapPasswordAttribute
	}
	if ur.RolesAttribute == "" {
		ur.RolesAttribute = defaultLdapRolesAttribute
	}
	if ur.Timeout <= 0 {
		ur.Timeout = defaultLdapTimeout
	}
}

func (ur *userLdapRepository) getConnection(ctx context.Context) (*ldap.Conn, error) {
	dialer := net.Dialer{Timeout: ur.Timeout}
	c, err := dialer.DialContext(ctx, "tcp", ur.Address)
	if err != nil {
		return nil, err
	}
	conn := ldap.NewConn(c, false)
	conn.Start()
	conn.SetTimeout(ur.Timeout)
	return conn, nil
}

func (ur *userLdapRepository) searchRequest(email string) *ldap.SearchRequest {
	return ldap.NewSearchRequest(
		ur.BaseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0,
		ldapSearchTimeout,
		false,
		fmt.Sprintf("(%s=%s)", ur.EmailAttribute, ldap.EscapeFilter(email)),
		[]string{"dn", ur.EmailAttribute, ur.PasswordAttribute, ur.RolesAttribute},
		nil,
	)
}

// FindByEmail relies on the directory matching rule of the email attribute,
// for "mail" that is caseIgnoreIA5Match.
func (ur *userLdapRepository) FindByEmail(ctx context.Context, email string) (User, bool, error) {
	if err := ctx.Err(); err != nil {
		return User{}, false, err
	}
	conn, err := ur.getConnection(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return User{}, false, ctx.Err()
		}
		return User{}, false, errors.Wrap(err, "error connecting to ldap")
	}
	defer conn.Close()
	// unblocks a pending bind or search
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	if err = conn.Bind(ur.BindDN, ur.Password); err != nil {
		if ctx.Err() != nil {
			return User{}, false, ctx.Err()
		}
		return User{}, false, errors.Wrap(err, "error binding to ldap")
	}

	result, err := conn.Search(ur.searchRequest(email))
	if err != nil {
		if ctx.Err() != nil {
			return User{}, false, ctx.Err()
		}
		return User{}, false, errors.Wrapf(err, "error searching user %v", email)
	}

	switch len(result.Entries) {
	case 0:
		return User{}, false, nil
	case 1:
		return ur.entryToUser(result.Entries[0]), true, nil
	default:
		return User{}, false, errors.Errorf("found multiple entries for %v", email)
	}
}

func (ur *userLdapRepository) entryToUser(entry *ldap.Entry) User {
	user := User{
		Email:        entry.GetAttributeValue(ur.EmailAttribute),
		PasswordHash: trimSchemePrefix(entry.GetAttributeValue(ur.PasswordAttribute)),
	}
	for _, v := range entry.GetAttributeValues(ur.RolesAttribute) {
		user.Roles = append(user.Roles, roleName(v))
	}
	return user
}

// roleName returns the CN of a group DN, or the value itself when it is not a DN.
func roleName(v string) string {
	dn, err := ldap.ParseDN(v)
	if err != nil || len(dn.RDNs) == 0 {
		return v
	}
	for _, attr := range dn.RDNs[0].Attributes {
		if strings.EqualFold(attr.Type, "cn") {
			return attr.Value
		}
	}
	return v
}

// trimSchemePrefix drops an RFC 2307 "{CRYPT}" scheme so that the stored crypt
// string can be compared directly.
func trimSchemePrefix(hash string) string {
	const scheme = "{CRYPT}"
	if len(hash) >= len(scheme) && strings.EqualFold(hash[:len(scheme)], scheme) {
		return hash[len(scheme):]
	}
	return hash
}
