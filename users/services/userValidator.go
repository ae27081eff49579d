package services

import (
	"regexp"
	"unicode"

	"dorm-reservation-backend/users/repositories"

	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 12
	maxPasswordLength = 128
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func ValidateEmailFormat(email string) bool {
	return len(email) <= 254 && emailRegex.MatchString(email)
}

// ValidatePassword checks the password policy and returns a human-readable
// reason when it fails, or "" when the password is acceptable. Length is
// bounded above because bcrypt truncates long inputs.
func ValidatePassword(password string) string {
	if len(password) < minPasswordLength {
		return "Password must be at least 12 characters long"
	}
	if len(password) > maxPasswordLength {
		return "Password must be at most 128 characters long"
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}
	if !hasUpper {
		return "Password must contain at least one uppercase letter"
	}
	if !hasLower {
		return "Password must contain at least one lowercase letter"
	}
	if !hasDigit {
		return "Password must contain at least one digit"
	}
	if !hasSpecial {
		return "Password must contain at least one special character"
	}
	return ""
}

func IsEmailInDB(email string, repo repositories.UserRepository) bool {
	user, err := repo.GetUserByEmail(email)
	return err == nil && user != nil
}

func ValidateEmail(email string, repo repositories.UserRepository) string {
	if !ValidateEmailFormat(email) {
		return "Invalid email format"
	}
	if IsEmailInDB(email, repo) {
		return "Email already exists"
	}
	return ""
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
