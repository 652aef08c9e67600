package types

import (
	"fmt"
	"strings"
	"time"
)

// Book represents one catalogued book record.
//
// ID is assigned by the store on creation and never changes afterwards;
// the same holds for CreatedAt. Title and Author are stored upper-cased.
type Book struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	PublicationYear int       `json:"publication_year"`
	Price           float64   `json:"price"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewBook builds an unsaved book from raw input. Title and author are
// trimmed and upper-cased; ID and CreatedAt are left for the store to
// assign. Inputs are assumed to have passed validation.
func NewBook(title, author string, year int, price float64) *Book {
	return &Book{
		Title:           strings.ToUpper(strings.TrimSpace(title)),
		Author:          strings.ToUpper(strings.TrimSpace(author)),
		PublicationYear: year,
		Price:           price,
	}
}

func (b *Book) String() string {
	return fmt.Sprintf("Book(id=%d, title=%q, author=%q)", b.ID, b.Title, b.Author)
}

// BookPatch describes a partial update. A nil field means "leave
// untouched"; a non-nil field carries the new value. This keeps
// "field omitted" distinct from "field set to a zero value".
type BookPatch struct {
	Title           *string
	Author          *string
	PublicationYear *int
	Price           *float64
}

// IsEmpty reports whether the patch changes nothing.
func (p BookPatch) IsEmpty() bool {
	return p.Title == nil && p.Author == nil && p.PublicationYear == nil && p.Price == nil
}

// Fields returns the names of the fields the patch sets, in the fixed
// column order used across the system.
func (p BookPatch) Fields() []string {
	var fields []string
	if p.Title != nil {
		fields = append(fields, "title")
	}
	if p.Author != nil {
		fields = append(fields, "author")
	}
	if p.PublicationYear != nil {
		fields = append(fields, "publication_year")
	}
	if p.Price != nil {
		fields = append(fields, "price")
	}
	return fields
}

// Statistics holds the aggregates computed over the full collection.
// All price aggregates are zero when the collection is empty.
type Statistics struct {
	TotalBooks    int     `json:"total_books"`
	TotalAuthors  int     `json:"total_authors"`
	AveragePrice  float64 `json:"average_price"`
	MostExpensive float64 `json:"most_expensive"`
	Cheapest      float64 `json:"cheapest"`
}
