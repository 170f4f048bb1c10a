package book

import (
	"context"
)

// Service provides book-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates in and stores a new book. Nothing is written when
// validation fails.
func (s *Service) Create(ctx context.Context, in Input) (Book, error) {
	if err := in.Validate(); err != nil {
		return Book{}, err
	}
	var b Book
	in.apply(&b)
	if err := s.repo.Create(ctx, &b); err != nil {
		return Book{}, err
	}
	return b, nil
}

// List returns all books ordered by ascending id.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

// ListBySeller returns the books of one seller ordered by ascending id.
func (s *Service) ListBySeller(ctx context.Context, sellerID int64) ([]Book, error) {
	books, err := s.repo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

// Get returns a book by its id.
func (s *Service) Get(ctx context.Context, id int64) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

// Update replaces every mutable field of the book with the given id. The
// year rule is enforced here as on Create.
func (s *Service) Update(ctx context.Context, id int64, in Input) (Book, error) {
	if err := in.Validate(); err != nil {
		return Book{}, err
	}
	b := Book{ID: id}
	in.apply(&b)
	if err := s.repo.Update(ctx, &b); err != nil {
		return Book{}, err
	}
	return b, nil
}

// Delete removes a book permanently.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
