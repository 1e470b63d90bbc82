package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"nhatro/internal/core"
	"nhatro/internal/memory"
)

type failingBackend struct {
	*memory.Store
	billsErr error
}

func (f *failingBackend) ListBills(ctx context.Context) ([]core.Bill, error) {
	if f.billsErr != nil {
		return nil, f.billsErr
	}
	return f.Store.ListBills(ctx)
}

func TestReferenceLoadFetchesAllLists(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	roomID, _ := store.CreateRoom(ctx, core.Room{Name: "P101", Price: core.Money{Dong: 2000000}, Status: core.RoomOccupied})
	tenantID, _ := store.CreateTenant(ctx, core.Tenant{Name: "An", Phone: "0901", IDCard: "079", RoomID: roomID, Status: core.TenantActive})
	_, _ = store.CreateBill(ctx, core.Bill{TenantID: tenantID, RoomID: roomID, Month: core.NewMonth(2024, 3), Status: core.BillUnpaid})

	ref, err := NewReferenceService(store).Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(ref.Bills) != 1 || len(ref.Tenants) != 1 || len(ref.Rooms) != 1 {
		t.Fatalf("snapshot incomplete: %d bills, %d tenants, %d rooms", len(ref.Bills), len(ref.Tenants), len(ref.Rooms))
	}
	if ref.Settings != nil {
		t.Fatalf("expected nil settings before first write, got %+v", ref.Settings)
	}
}

func TestReferenceLoadIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	_, _ = store.CreateRoom(ctx, core.Room{Name: "P101", Price: core.Money{Dong: 1}, Status: core.RoomAvailable})

	fb := &failingBackend{Store: store, billsErr: errors.New("boom")}
	ref, err := NewReferenceService(fb).Load(ctx)
	if err == nil {
		t.Fatal("expected error when one list fails")
	}
	if !strings.Contains(err.Error(), "load bills") {
		t.Fatalf("error should name the failed list: %v", err)
	}
	if ref.Rooms != nil || ref.Tenants != nil {
		t.Fatalf("partial snapshot leaked: %+v", ref)
	}
}

func TestBillServicePublishesWithoutClient(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	roomID, _ := store.CreateRoom(ctx, core.Room{Name: "P101", Price: core.Money{Dong: 1}, Status: core.RoomOccupied})
	tenantID, _ := store.CreateTenant(ctx, core.Tenant{Name: "An", Phone: "0901", IDCard: "079", RoomID: roomID, Status: core.TenantActive})

	svc := NewBillService(store, nil)
	id, err := svc.CreateBill(ctx, core.Bill{TenantID: tenantID, RoomID: roomID, Month: core.NewMonth(2024, 3), Status: core.BillUnpaid})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.UpdateBill(ctx, id, core.Bill{TenantID: tenantID, RoomID: roomID, Month: core.NewMonth(2024, 3), Status: core.BillPaid}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := svc.DeleteBill(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
