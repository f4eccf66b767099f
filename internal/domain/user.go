package domain

import "fmt"

// User is an immutable registry record. Two users are equal when all fields match.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}

func NewUser(id int, username, password string) User {
	return User{
		ID:       id,
		Username: username,
		Password: password,
	}
}

func (u User) String() string {
	return fmt.Sprintf("User(id=%d, username=%s)", u.ID, u.Username)
}

// UserDao is the external store consulted when a user is deleted.
type UserDao interface {
	Delete(id int) (bool, error)
}

type UserRepository interface {
	UserDao
	FindByID(id int) (*User, error)
	Create(user User) error
}
