package domain

// User is the authenticated identity handed to the core by the auth layer.
// The core never sees credentials, only the id and display name.
type User struct {
	Id    UserId   `json:"id"`
	Name  UserName `json:"name"`
	Admin bool     `json:"-"`
}

// Is reports whether u and other are the same identity.
func (u User) Is(other User) bool {
	return u.Id == other.Id
}
