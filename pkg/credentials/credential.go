package credentials

// Credential is what an authentication check compares a submitted password against.
// It lives only for the duration of one authentication attempt.
type Credential struct {
	Identity     string   `json:"identity"`
	PasswordHash string   `json:"-"`
	Authorities  []string `json:"authorities"`
}

// AuthoritiesPolicy decides which authorities a resolved credential carries.
type AuthoritiesPolicy string

const (
	// AuthoritiesNone grants no authorities, whatever roles the account has.
	AuthoritiesNone AuthoritiesPolicy = "none"
	// AuthoritiesRoles copies the account roles.
	AuthoritiesRoles AuthoritiesPolicy = "roles"
)

// ParseAuthoritiesPolicy maps a configuration value to a policy.
// An empty value selects AuthoritiesNone.
func ParseAuthoritiesPolicy(s string) (AuthoritiesPolicy, bool) {
	switch AuthoritiesPolicy(s) {
	case "", AuthoritiesNone:
		return AuthoritiesNone, true
	case AuthoritiesRoles:
		return AuthoritiesRoles, true
	}
	return "", false
}
