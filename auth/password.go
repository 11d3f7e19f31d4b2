package auth

import (
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	passwordMinLen = 6
	passwordMaxLen = 20
	fullnameMinLen = 3
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidEmail reports whether the address passes the signup format check.
func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidFullname reports whether a full name is long enough to register.
func ValidFullname(fullname string) bool {
	return len(strings.TrimSpace(fullname)) >= fullnameMinLen
}

// ValidPassword reports whether a password satisfies the complexity rules:
// 6 to 20 characters with at least one uppercase letter, one lowercase
// letter and one digit.
func ValidPassword(password string) bool {
	if len(password) < passwordMinLen || len(password) > passwordMaxLen {
		return false
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return upper && lower && digit
}

// HashPassword returns a one-way bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether the password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
