package seller

import (
	"context"

	"sellerbooks/internal/book"
)

// Repository defines the contract for seller data storage.
type Repository interface {
	Create(ctx context.Context, s *Seller) error
	List(ctx context.Context) ([]Seller, error)
	GetByID(ctx context.Context, id int64) (Seller, error)
	Update(ctx context.Context, s *Seller) error
	// Delete removes the seller and, through the schema, their books.
	Delete(ctx context.Context, id int64) error
}

// BookLister is the part of the book service the seller view needs.
type BookLister interface {
	ListBySeller(ctx context.Context, sellerID int64) ([]book.Book, error)
}
