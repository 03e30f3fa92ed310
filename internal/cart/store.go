// Package cart implements the client-side cart working set: one line per
// product, quantities adjusted in place, persisted durably on every mutation
// so the cart survives a restart.
//
// The store mirrors a single browser tab. Two stores loaded from the same
// backing file diverge until one reloads; that cross-instance drift is a
// documented property of the design, not something the store reconciles.
package cart

import (
	"encoding/json"
	"sync"

	"github.com/siddhant14g/Real-shop/pkg/apperr"
	"github.com/siddhant14g/Real-shop/pkg/storage"
)

// Line is one product in the cart. Quantity is always at least 1; a line
// that would drop to 0 is removed instead.
type Line struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Store holds the cart for one session. Safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	lines []Line
	disk  storage.Disk
	path  string
}

// Open loads the cart persisted at path on disk, or starts empty when no
// cart was saved yet.
func Open(disk storage.Disk, path string) (*Store, error) {
	s := &Store{disk: disk, path: path}
	if !disk.Exists(path) {
		return s, nil
	}

	raw, err := disk.Get(path)
	if err != nil {
		return nil, apperr.Upstream("load cart", err)
	}
	if err := json.Unmarshal(raw, &s.lines); err != nil {
		// A corrupt cart starts over rather than blocking the user.
		s.lines = nil
	}
	return s, nil
}

// Add inserts the product with quantity 1, or bumps the existing line by 1.
// Availability is the caller's concern; the store does not re-check it.
func (s *Store) Add(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Quantity++
			return s.persist()
		}
	}
	s.lines = append(s.lines, Line{ProductID: productID, Quantity: 1})
	return s.persist()
}

// Increase bumps the line's quantity by 1. Unknown IDs are a no-op.
func (s *Store) Increase(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Quantity++
			return s.persist()
		}
	}
	return nil
}

// Decrease lowers the line's quantity by 1; at quantity 1 the line is
// removed entirely so a zero quantity is never stored.
func (s *Store) Decrease(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID != productID {
			continue
		}
		if s.lines[i].Quantity <= 1 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		} else {
			s.lines[i].Quantity--
		}
		return s.persist()
	}
	return nil
}

// Remove deletes the line unconditionally.
func (s *Store) Remove(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return s.persist()
		}
	}
	return nil
}

// Clear empties the cart, e.g. after a successful checkout.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	return s.persist()
}

// TotalCount sums quantities across all lines, the number a cart badge shows.
func (s *Store) TotalCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, l := range s.lines {
		total += l.Quantity
	}
	return total
}

// Lines returns a copy of the cart contents in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// persist writes the full cart. Called with the lock held.
func (s *Store) persist() error {
	raw, err := json.Marshal(s.lines)
	if err != nil {
		return apperr.Upstream("encode cart", err)
	}
	if err := s.disk.Put(s.path, raw); err != nil {
		return apperr.Upstream("save cart", err)
	}
	return nil
}
