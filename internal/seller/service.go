package seller

import (
	"context"
	"strings"

	"sellerbooks/internal/platform/crypto"
)

type Service struct {
	repo  Repository
	books BookLister
}

func NewService(repo Repository, books BookLister) *Service {
	return &Service{repo: repo, books: books}
}

// Register creates a seller with a hashed password.
func (s *Service) Register(ctx context.Context, in CreateInput) (Seller, error) {
	if err := crypto.ValidatePasswordStrength(in.Password); err != nil {
		return Seller{}, &ValidationError{Field: "password", Message: err.Error()}
	}
	hash, err := crypto.HashPassword(in.Password)
	if err != nil {
		return Seller{}, err
	}

	seller := &Seller{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        normalizeEmail(in.Email),
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, seller); err != nil {
		return Seller{}, err
	}
	return *seller, nil
}

func (s *Service) List(ctx context.Context) ([]Seller, error) {
	sellers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if sellers == nil {
		sellers = []Seller{}
	}
	return sellers, nil
}

// Get returns the seller and their books.
func (s *Service) Get(ctx context.Context, id int64) (WithBooks, error) {
	seller, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return WithBooks{}, err
	}
	books, err := s.books.ListBySeller(ctx, id)
	if err != nil {
		return WithBooks{}, err
	}
	return WithBooks{Seller: seller, Books: books}, nil
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Seller, error) {
	seller := &Seller{
		ID:        id,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     normalizeEmail(in.Email),
	}
	if err := s.repo.Update(ctx, seller); err != nil {
		return Seller{}, err
	}
	return *seller, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
