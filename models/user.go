package models

// User resource owner model. The password hash is opaque to the engine; only
// the user provider interprets it.
type User struct {
	ID           string
	Username     string
	PasswordHash string
}

// GetID user id
func (u *User) GetID() string {
	return u.ID
}

// GetUsername login name
func (u *User) GetUsername() string {
	return u.Username
}
