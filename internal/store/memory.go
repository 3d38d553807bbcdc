package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is the ephemeral fallback store: a mutex-guarded map.
// Contents are lost on restart.
type MemoryStore struct {
	mu    sync.Mutex
	pages map[string]*Page
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{pages: make(map[string]*Page)}
}

func (s *MemoryStore) PutPage(ctx context.Context, page *Page) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *page
	s.pages[page.ID] = &copied
	return nil
}

func (s *MemoryStore) GetPage(ctx context.Context, id string) (*Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	page, ok := s.pages[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *page
	return &copied, nil
}

func (s *MemoryStore) ListPages(ctx context.Context) ([]Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Summary, 0, len(s.pages))
	for _, page := range s.pages {
		out = append(out, Summary{
			ID:           page.ID,
			Title:        page.Title,
			Template:     page.Template,
			CreatedAt:    page.CreatedAt,
			SectionCount: len(page.Sections),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) DeletePage(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pages[id]; !ok {
		return ErrNotFound
	}
	delete(s.pages, id)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
