package validation

import (
	"fmt"
	"strings"

	"github.com/tradelog/trade-journal-backend/internal/api/request"
)

const minPasswordLength = 8

// ValidateRegister checks a registration request.
func ValidateRegister(req request.Register) error {
	if err := validateEmail(req.Email); err != nil {
		return err
	}
	if len(req.Password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	return nil
}

// ValidateLogin checks a login request.
func ValidateLogin(req request.Login) error {
	if err := validateEmail(req.Email); err != nil {
		return err
	}
	return ValidateRequired("password", req.Password)
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: email", ErrEmptyField)
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("invalid email address: %q", email)
	}
	return nil
}
