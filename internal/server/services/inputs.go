package services

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/server/auth"
)

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Name     string `json:"name"`
	Age      *int   `json:"age"`
	Gender   string `json:"gender"`
	Password string `json:"password"`
}

// Validate reports the first problem found, wrapped in common.ErrorValidation.
func (in RegisterInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name is required")
	}
	if in.Password == "" {
		return invalid("password is required")
	}
	if len(in.Password) > auth.MaxPasswordBytes {
		return invalid(fmt.Sprintf("password must be at most %d bytes", auth.MaxPasswordBytes))
	}
	return validateAge(in.Age)
}

// ProfileInput carries the mutable profile fields of an account. The password
// is deliberately absent.
type ProfileInput struct {
	Name   string `json:"name"`
	Age    *int   `json:"age"`
	Gender string `json:"gender"`
}

func (in ProfileInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name is required")
	}
	return validateAge(in.Age)
}

// MaxAge bounds the age column, which is a 32-bit integer in storage.
const MaxAge = 150

func validateAge(age *int) error {
	if age == nil {
		return nil
	}
	if *age < 0 {
		return invalid("age must not be negative")
	}
	if *age > MaxAge {
		return invalid(fmt.Sprintf("age must be at most %d", MaxAge))
	}
	return nil
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", common.ErrorValidation, msg)
}
