// Package memory implements the backend ports with an in-process store.
// It is the default development backend and the double used by handler
// tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"nhatro/internal/core"
)

type Store struct {
	mu       sync.Mutex
	nextID   int
	rooms    []core.Room
	tenants  []core.Tenant
	bills    []core.Bill
	settings *core.Settings
}

func NewStore() *Store {
	return &Store{nextID: 1}
}

func (s *Store) newID(prefix string) string {
	id := fmt.Sprintf("%s%d", prefix, s.nextID)
	s.nextID++
	return id
}

// ListBills returns a copy with tenant and room names filled in, matching
// the expanded references the remote API produces.
func (s *Store) ListBills(_ context.Context) ([]core.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Bill, len(s.bills))
	for i, b := range s.bills {
		for _, t := range s.tenants {
			if t.ID == b.TenantID {
				b.TenantName = t.Name
			}
		}
		for _, r := range s.rooms {
			if r.ID == b.RoomID {
				b.RoomName = r.Name
			}
		}
		out[i] = b
	}
	return out, nil
}

func (s *Store) GetBill(ctx context.Context, id string) (core.Bill, error) {
	bills, _ := s.ListBills(ctx)
	for _, b := range bills {
		if b.ID == id {
			return b, nil
		}
	}
	return core.Bill{}, fmt.Errorf("bill %s not found", id)
}

func (s *Store) CreateBill(_ context.Context, b core.Bill) (string, error) {
	if err := b.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = s.newID("b")
	s.bills = append(s.bills, b)
	return b.ID, nil
}

func (s *Store) UpdateBill(_ context.Context, id string, b core.Bill) error {
	if err := b.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bills {
		if s.bills[i].ID == id {
			b.ID = id
			s.bills[i] = b
			return nil
		}
	}
	return fmt.Errorf("bill %s not found", id)
}

func (s *Store) DeleteBill(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bills {
		if s.bills[i].ID == id {
			s.bills = append(s.bills[:i:i], s.bills[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("bill %s not found", id)
}

func (s *Store) ListRooms(_ context.Context) ([]core.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Room(nil), s.rooms...), nil
}

func (s *Store) CreateRoom(_ context.Context, r core.Room) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.newID("r")
	s.rooms = append(s.rooms, r)
	return r.ID, nil
}

func (s *Store) UpdateRoom(_ context.Context, id string, r core.Room) error {
	if err := r.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rooms {
		if s.rooms[i].ID == id {
			r.ID = id
			s.rooms[i] = r
			return nil
		}
	}
	return fmt.Errorf("room %s not found", id)
}

func (s *Store) DeleteRoom(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rooms {
		if s.rooms[i].ID == id {
			s.rooms = append(s.rooms[:i:i], s.rooms[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("room %s not found", id)
}

func (s *Store) ListTenants(_ context.Context) ([]core.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Tenant(nil), s.tenants...), nil
}

func (s *Store) CreateTenant(_ context.Context, t core.Tenant) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.newID("t")
	s.tenants = append(s.tenants, t)
	return t.ID, nil
}

func (s *Store) UpdateTenant(_ context.Context, id string, t core.Tenant) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tenants {
		if s.tenants[i].ID == id {
			t.ID = id
			s.tenants[i] = t
			return nil
		}
	}
	return fmt.Errorf("tenant %s not found", id)
}

func (s *Store) DeleteTenant(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tenants {
		if s.tenants[i].ID == id {
			s.tenants = append(s.tenants[:i:i], s.tenants[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("tenant %s not found", id)
}

// GetSettings returns nil while the settings record has never been
// written, letting callers fall back to the core defaults.
func (s *Store) GetSettings(_ context.Context) (*core.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings == nil {
		return nil, nil
	}
	out := *s.settings
	return &out, nil
}

func (s *Store) UpdateSettings(_ context.Context, settings core.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = &settings
	return nil
}
