package book

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// MinYear is the oldest publication year the catalogue accepts.
const MinYear = 2020

// MsgYearTooOld is reported when a book is older than MinYear.
const MsgYearTooOld = "Year is too old!"

// Upper bounds keep year and pages inside the 32-bit integer columns.
const (
	MaxYear  = 9999
	MaxPages = 100000
)

var (
	// ErrNotFound is returned when a book is not found.
	ErrNotFound = errors.New("book not found")
	// ErrSellerNotFound is returned when seller_id references no seller.
	ErrSellerNotFound = errors.New("seller not found")
)

// ValidationError reports a book field that breaks a business rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Book is a book offered by a seller.
type Book struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Year     int    `json:"year"`
	Pages    int    `json:"pages"`
	SellerID int64  `json:"seller_id"`
}

// Input carries every mutable field of a book. Create and Update both take
// a full Input; there is no partial update. Text fields are stored exactly as
// given: blank values are rejected but surrounding spaces are kept.
type Input struct {
	Title    string
	Author   string
	Year     int
	Pages    int
	SellerID int64
}

// Validate returns a *ValidationError describing the first broken rule.
func (in Input) Validate() error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return &ValidationError{Field: "title", Message: "title is required"}
	case strings.TrimSpace(in.Author) == "":
		return &ValidationError{Field: "author", Message: "author is required"}
	case in.Pages <= 0:
		return &ValidationError{Field: "pages", Message: "pages must be greater than 0"}
	case in.Pages > MaxPages:
		return &ValidationError{Field: "pages", Message: fmt.Sprintf("pages must be at most %d", MaxPages)}
	case in.SellerID <= 0:
		return &ValidationError{Field: "seller_id", Message: "seller_id is required"}
	case in.Year < MinYear:
		return &ValidationError{Field: "year", Message: MsgYearTooOld}
	case in.Year > MaxYear:
		return &ValidationError{Field: "year", Message: fmt.Sprintf("year must be at most %d", MaxYear)}
	}
	return nil
}

func (in Input) apply(b *Book) {
	b.Title = in.Title
	b.Author = in.Author
	b.Year = in.Year
	b.Pages = in.Pages
	b.SellerID = in.SellerID
}
