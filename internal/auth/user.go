package auth

import (
	"strconv"

	"github.com/mrlokans/bookstore/internal/entities"
)

// User is the account shape shared by both auth modes and persisted
// under the "auth" storage key after a successful login.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProfileFor converts a local user record into the wire shape.
func ProfileFor(u *entities.User) User {
	return User{
		ID:    strconv.FormatUint(uint64(u.ID), 10),
		Name:  u.Name,
		Email: u.Email,
	}
}
