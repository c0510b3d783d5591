package user

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"moviereview/errs"
)

var (
	ErrInvalidUsername   = errs.Errorf(errs.EINVALID, "user: invalid username")
	ErrInvalidEmail      = errs.Errorf(errs.EINVALID, "user: invalid email")
	ErrInvalidPassword   = errs.Errorf(errs.EINVALID, "user: invalid password")
	ErrInvalidUserID     = errs.Errorf(errs.EINVALID, "user: invalid id")
	ErrUserNotFound      = errs.Errorf(errs.ENOTFOUND, "user not found")
	ErrUserAlreadyExists = errs.Errorf(errs.ECONFLICT, "user: username or email already taken")
)

const (
	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 8
	maxPasswordLen = 72
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Registration is the input of Register; Password is the plain text secret.
type Registration struct {
	Username string
	Email    string
	Password string
}

func (r Registration) Validate() error {
	username := strings.TrimSpace(r.Username)
	n := utf8.RuneCountInString(username)
	if n < minUsernameLen || n > maxUsernameLen || strings.ContainsAny(username, " \t\n/") {
		return ErrInvalidUsername
	}

	if _, err := mail.ParseAddress(strings.TrimSpace(r.Email)); err != nil {
		return ErrInvalidEmail
	}

	if len(r.Password) < minPasswordLen || len(r.Password) > maxPasswordLen {
		return ErrInvalidPassword
	}

	return nil
}
