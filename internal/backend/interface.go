// Package backend defines the storage ports the admin UI works against and
// the factory that selects a concrete backend from configuration.
package backend

import (
	"context"

	"nhatro/internal/core"
)

// Ports for outbound adapters. Every view loads through these; every
// mutation goes back through them.
type (
	BillStore interface {
		ListBills(ctx context.Context) ([]core.Bill, error)
		GetBill(ctx context.Context, id string) (core.Bill, error)
		CreateBill(ctx context.Context, b core.Bill) (string, error)
		UpdateBill(ctx context.Context, id string, b core.Bill) error
		DeleteBill(ctx context.Context, id string) error
	}

	RoomStore interface {
		ListRooms(ctx context.Context) ([]core.Room, error)
		CreateRoom(ctx context.Context, r core.Room) (string, error)
		UpdateRoom(ctx context.Context, id string, r core.Room) error
		DeleteRoom(ctx context.Context, id string) error
	}

	TenantStore interface {
		ListTenants(ctx context.Context) ([]core.Tenant, error)
		CreateTenant(ctx context.Context, t core.Tenant) (string, error)
		UpdateTenant(ctx context.Context, id string, t core.Tenant) error
		DeleteTenant(ctx context.Context, id string) error
	}

	// SettingsStore reads and writes the singleton pricing record. Get
	// returns (nil, nil) while the record has never been written; callers
	// fall back to the core defaults.
	SettingsStore interface {
		GetSettings(ctx context.Context) (*core.Settings, error)
		UpdateSettings(ctx context.Context, s core.Settings) error
	}
)

// Backend is the unified interface a deployment's data source implements.
type Backend interface {
	BillStore
	RoomStore
	TenantStore
	SettingsStore
}

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result carries a constructed backend and its optional cleanup.
type Result struct {
	Backend Backend
	Cleanup CleanupFunc
}

// Type selects which concrete backend the factory builds.
type Type string

const (
	RemoteBackend Type = "remote"
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case RemoteBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
