// Package store persists generated pages behind an injectable port. The
// pipeline never touches a store; only the worker does, so swapping the
// durable SQLite store for the ephemeral in-memory one is a config choice.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/dgallion1/pagegen/internal/docmodel"
)

// ErrNotFound is returned when a page ID does not exist.
var ErrNotFound = errors.New("page not found")

// Page is one generated page: the projected document content model plus
// the mapped UI sections.
type Page struct {
	ID        string                          `json:"id"`
	Title     string                          `json:"title"`
	Template  string                          `json:"template"`
	CreatedAt time.Time                       `json:"created_at"`
	Document  docmodel.DocumentContent        `json:"document"`
	Sections  []docmodel.MappedSectionContent `json:"sections"`
}

// Summary is the listing view of a stored page.
type Summary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Template     string    `json:"template"`
	CreatedAt    time.Time `json:"created_at"`
	SectionCount int       `json:"section_count"`
}

// Store is the persistence port.
type Store interface {
	PutPage(ctx context.Context, page *Page) error
	GetPage(ctx context.Context, id string) (*Page, error)
	ListPages(ctx context.Context) ([]Summary, error)
	DeletePage(ctx context.Context, id string) error
	Close() error
}
