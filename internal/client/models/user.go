package models

import "strings"

// User is a read-only directory entry used to resolve user-id references
// on tickets and comments to display labels.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Label returns a human-readable name: "First Last", falling back to the
// username and then the email.
func (u User) Label() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}
