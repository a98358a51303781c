package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when no book matches the requested title.
	ErrNotFound = errors.New("book not found")
	// ErrInvalidBook wraps every input validation failure.
	ErrInvalidBook = errors.New("invalid book")
)

const (
	minRating = 0
	maxRating = 5
)

// Book is a stored catalog record. ID is assigned by the store.
type Book struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	Rating      *int   `json:"rating,omitempty"`
}

// BookInput is the payload for creating or replacing a book.
type BookInput struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	Rating      *int   `json:"rating,omitempty"`
}

// Validate checks field presence and the rating range. Values are not
// otherwise normalised: the stored record keeps the caller's text.
func (in BookInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidBook)
	}
	if strings.TrimSpace(in.Author) == "" {
		return fmt.Errorf("%w: author is required", ErrInvalidBook)
	}
	if in.Rating != nil && (*in.Rating < minRating || *in.Rating > maxRating) {
		return fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidBook, minRating, maxRating)
	}
	return nil
}

func (in BookInput) toBook(id int) Book {
	b := Book{
		ID:          id,
		Title:       in.Title,
		Author:      in.Author,
		Category:    in.Category,
		Description: in.Description,
	}
	if in.Rating != nil {
		r := *in.Rating
		b.Rating = &r
	}
	return b
}

// clone copies b so callers never share the Rating pointer with the store.
func (b Book) clone() Book {
	if b.Rating != nil {
		r := *b.Rating
		b.Rating = &r
	}
	return b
}

// SeedBooks returns the records a fresh catalog starts with.
func SeedBooks() []Book {
	return []Book{
		{ID: 1, Title: "One Hundred Years of Solitude", Author: "Gabriel García Márquez", Category: "Magical Realism"},
		{ID: 2, Title: "Murder on the Orient Express", Author: "Agatha Christie", Category: "Mystery"},
		{ID: 3, Title: "Sapiens: A Brief History of Humankind", Author: "Yuval Noah Harari", Category: "Nonfiction"},
		{ID: 4, Title: "The Fifth Season", Author: "N.K. Jemisin", Category: "Fantasy"},
		{ID: 5, Title: "Pride and Prejudice", Author: "Jane Austen", Category: "Classic"},
		{ID: 6, Title: "The Shining", Author: "Stephen King", Category: "Horror"},
	}
}
