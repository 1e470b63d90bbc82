// Package services orchestrates backend calls for the admin UI: snapshot
// loading, bill mutations and their event fan-out.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"nhatro/internal/backend"
	"nhatro/internal/core"
)

// ReferenceService loads the four lists a bill form works against in one
// shot. The load is all-or-nothing: one failed list fails the snapshot, and
// partial results are discarded.
type ReferenceService struct {
	backend backend.Backend
}

func NewReferenceService(b backend.Backend) *ReferenceService {
	return &ReferenceService{backend: b}
}

func (s *ReferenceService) Load(ctx context.Context) (core.ReferenceData, error) {
	start := time.Now()
	var ref core.ReferenceData

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		bills, err := s.backend.ListBills(ctx)
		if err != nil {
			return fmt.Errorf("load bills: %w", err)
		}
		ref.Bills = bills
		return nil
	})
	g.Go(func() error {
		tenants, err := s.backend.ListTenants(ctx)
		if err != nil {
			return fmt.Errorf("load tenants: %w", err)
		}
		ref.Tenants = tenants
		return nil
	})
	g.Go(func() error {
		rooms, err := s.backend.ListRooms(ctx)
		if err != nil {
			return fmt.Errorf("load rooms: %w", err)
		}
		ref.Rooms = rooms
		return nil
	})
	g.Go(func() error {
		settings, err := s.backend.GetSettings(ctx)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		ref.Settings = settings
		return nil
	})

	if err := g.Wait(); err != nil {
		return core.ReferenceData{}, err
	}

	slog.DebugContext(ctx, "Loaded reference snapshot",
		"bills", len(ref.Bills),
		"tenants", len(ref.Tenants),
		"rooms", len(ref.Rooms),
		"duration", time.Since(start))

	return ref, nil
}
