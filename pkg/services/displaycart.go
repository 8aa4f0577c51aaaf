package services

import (
	"sync"

	"verve-storefront-io/api/pkg/models"
)

// DisplayCartStore implements DisplayCartService with an in-memory map of
// cart id to ordered item list. It is an injectable container, not a
// package-level singleton, so it can be constructed per test.
type DisplayCartStore struct {
	mu    sync.RWMutex
	carts map[string][]models.DisplayItem
}

// NewDisplayCartService creates an empty display cart container.
func NewDisplayCartService() DisplayCartService {
	return &DisplayCartStore{
		carts: make(map[string][]models.DisplayItem),
	}
}

// Reset replaces the held list with a fresh authoritative seed, discarding
// any interim local-only state.
func (s *DisplayCartStore) Reset(cartId string, items []models.DisplayItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	held := make([]models.DisplayItem, len(items))
	copy(held, items)
	s.carts[cartId] = held
}

// Apply merges a single item update into the held list and returns the
// resulting list.
func (s *DisplayCartStore) Apply(cartId string, item *models.DisplayItem) []models.DisplayItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := MergeDisplayItems(s.carts[cartId], item)
	s.carts[cartId] = merged

	out := make([]models.DisplayItem, len(merged))
	copy(out, merged)
	return out
}

// Items returns a copy of the held list.
func (s *DisplayCartStore) Items(cartId string) []models.DisplayItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	held := s.carts[cartId]
	out := make([]models.DisplayItem, len(held))
	copy(out, held)
	return out
}

// Count returns the badge count: the sum of quantities across held items.
func (s *DisplayCartStore) Count(cartId string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, item := range s.carts[cartId] {
		total += item.Quantity
	}
	return total
}
