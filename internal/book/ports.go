package book

import (
	"context"
)

//go:generate mockgen -destination=mock_repository.go -package=book sellerbooks/internal/book Repository

// Repository defines the contract for book data storage.
type Repository interface {
	// Create inserts b and sets b.ID.
	Create(ctx context.Context, b *Book) error
	// List returns every book ordered by id.
	List(ctx context.Context) ([]Book, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]Book, error)
	GetByID(ctx context.Context, id int64) (Book, error)
	// Update overwrites all mutable fields of the book with b.ID.
	Update(ctx context.Context, b *Book) error
	Delete(ctx context.Context, id int64) error
}
