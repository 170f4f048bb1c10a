package seller

import (
	"strings"

	"sellerbooks/internal/book"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when a seller is not found.
	ErrNotFound = errors.New("seller not found")
	// ErrAlreadyExists is returned when the e-mail belongs to another seller.
	ErrAlreadyExists = errors.New("seller already exists")
)

// ValidationError reports a seller field that breaks a rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Seller owns zero or more books. The password hash never leaves the
// service boundary.
type Seller struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"e_mail"`
	PasswordHash string `json:"-"`
}

// WithBooks is a seller together with the books they offer.
type WithBooks struct {
	Seller
	Books []book.Book `json:"books"`
}

type CreateInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// UpdateInput replaces the profile fields. The password is not changed.
type UpdateInput struct {
	FirstName string
	LastName  string
	Email     string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
