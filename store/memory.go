package store

import (
	"context"
	"sort"
	"sync"

	"link-tracker-service/models"
)

// In-memory stores keep tests and dependency-free runs lightweight. They
// favor clarity over performance.

type MemoryLinkStore struct {
	mu    sync.RWMutex
	links map[string]*models.Link
}

func NewMemoryLinkStore() *MemoryLinkStore {
	return &MemoryLinkStore{links: make(map[string]*models.Link)}
}

func (s *MemoryLinkStore) CreateLink(_ context.Context, link *models.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *link
	s.links[link.ID] = &cp
	return nil
}

func (s *MemoryLinkStore) GetLink(_ context.Context, id string) (*models.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if link, ok := s.links[id]; ok {
		cp := *link
		return &cp, nil
	}
	return nil, &models.NotFoundError{Message: "link not found"}
}

func (s *MemoryLinkStore) IncrementClicks(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	link, ok := s.links[id]
	if !ok {
		return &models.NotFoundError{Message: "link not found"}
	}
	link.Clicks++
	return nil
}

func (s *MemoryLinkStore) ListLinks(_ context.Context) ([]*models.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	links := make([]*models.Link, 0, len(s.links))
	for _, link := range s.links {
		cp := *link
		links = append(links, &cp)
	}
	sort.Slice(links, func(i, j int) bool {
		return links[i].CreatedAt.After(links[j].CreatedAt)
	})
	return links, nil
}

type MemoryCaptureStore struct {
	mu     sync.RWMutex
	nextID int64
	events []*models.CaptureEvent
}

func NewMemoryCaptureStore() *MemoryCaptureStore {
	return &MemoryCaptureStore{}
}

func (s *MemoryCaptureStore) InsertCapture(_ context.Context, event *models.CaptureEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	event.ID = s.nextID
	cp := *event
	s.events = append(s.events, &cp)
	return nil
}

func (s *MemoryCaptureStore) ListCaptures(_ context.Context) ([]*models.CaptureEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := make([]*models.CaptureEvent, 0, len(s.events))
	for _, event := range s.events {
		cp := *event
		events = append(events, &cp)
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].CapturedAt.After(events[j].CapturedAt)
	})
	return events, nil
}
