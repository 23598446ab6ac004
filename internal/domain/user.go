package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Address      Address
	PasswordHash []byte
	IsAdmin      bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// NormalizeEmail is the form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterInput passwords are capped at 72 bytes, the most bcrypt reads.
type RegisterInput struct {
	FirstName       string `validate:"required,max=100"`
	LastName        string `validate:"required,max=100"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=6,max=72"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

type LoginInput struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

type ProfileInput struct {
	FirstName string `validate:"required,max=100"`
	LastName  string `validate:"required,max=100"`
	Phone     string `validate:"max=40"`
	Street    string `validate:"max=200"`
	City      string `validate:"max=100"`
	State     string `validate:"max=100"`
	ZipCode   string `validate:"max=20"`
	Country   string `validate:"max=100"`
}

func (in ProfileInput) Address() Address {
	return Address{Street: in.Street, City: in.City, State: in.State, ZipCode: in.ZipCode, Country: in.Country}
}

type PasswordChangeInput struct {
	CurrentPassword    string `validate:"required"`
	NewPassword        string `validate:"required,min=6,max=72"`
	ConfirmNewPassword string `validate:"required,eqfield=NewPassword"`
}
