package user

// User is an account record as held by a Store.
type User struct {
	Email        string   `json:"email" bson:"email"`
	PasswordHash string   `json:"passwordHash,omitempty" bson:"passwordHash"`
	Roles        []string `json:"roles,omitempty" bson:"roles,omitempty"`
}

// Copy returns a user which shares no memory with u.
func (u User) Copy() User {
	c := u
	if u.Roles != nil {
		c.Roles = make([]string, len(u.Roles))
		copy(c.Roles, u.Roles)
	}
	return c
}
