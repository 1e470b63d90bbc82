package storage

import (
	"context"
	"path/filepath"
	"testing"

	"nhatro/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "nhatro.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestRepositoryBillRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	roomID, err := repo.CreateRoom(ctx, core.Room{Name: "P101", Price: core.Money{Dong: 2000000}, Status: core.RoomOccupied})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	tenantID, err := repo.CreateTenant(ctx, core.Tenant{Name: "Nguyễn Văn An", Phone: "0901234567", IDCard: "079123", RoomID: roomID, Status: core.TenantActive})
	if err != nil {
		t.Fatalf("create tenant: %v", err)
	}

	bill := core.Bill{
		TenantID:            tenantID,
		RoomID:              roomID,
		Month:               core.NewMonth(2024, 3),
		OldElectricityIndex: 1000,
		NewElectricityIndex: 1120,
		ElectricityPrice:    core.Money{Dong: 3500},
		OldWaterIndex:       40,
		NewWaterIndex:       55,
		WaterPrice:          core.Money{Dong: 16000},
		InternetFee:         core.Money{Dong: 120000},
		Rent:                core.Money{Dong: 2000000},
		Total:               core.Money{Dong: 2780000},
		Status:              core.BillUnpaid,
	}
	id, err := repo.CreateBill(ctx, bill)
	if err != nil {
		t.Fatalf("create bill: %v", err)
	}
	if len(id) != 24 {
		t.Fatalf("id = %q, want 24 hex chars", id)
	}

	got, err := repo.GetBill(ctx, id)
	if err != nil {
		t.Fatalf("get bill: %v", err)
	}
	if got.Total.Dong != 2780000 || got.Month.String() != "2024-03" {
		t.Fatalf("bill round trip: %+v", got)
	}
	if got.TenantName != "Nguyễn Văn An" || got.RoomName != "P101" {
		t.Fatalf("joined names missing: %+v", got)
	}

	bill.Status = core.BillPaid
	if err := repo.UpdateBill(ctx, id, bill); err != nil {
		t.Fatalf("update bill: %v", err)
	}
	got, err = repo.GetBill(ctx, id)
	if err != nil {
		t.Fatalf("get bill after update: %v", err)
	}
	if got.Status != core.BillPaid {
		t.Fatalf("status = %q, want paid", got.Status)
	}

	if err := repo.DeleteBill(ctx, id); err != nil {
		t.Fatalf("delete bill: %v", err)
	}
	if err := repo.DeleteBill(ctx, id); err == nil {
		t.Fatal("expected error deleting missing bill")
	}
}

func TestRepositoryListBillsOrdersByMonthDesc(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	roomID, _ := repo.CreateRoom(ctx, core.Room{Name: "P102", Price: core.Money{Dong: 1}, Status: core.RoomAvailable})
	tenantID, _ := repo.CreateTenant(ctx, core.Tenant{Name: "B", Phone: "0", IDCard: "1", Status: core.TenantActive})

	for _, m := range []core.Month{core.NewMonth(2024, 1), core.NewMonth(2024, 3), core.NewMonth(2024, 2)} {
		_, err := repo.CreateBill(ctx, core.Bill{TenantID: tenantID, RoomID: roomID, Month: m, Status: core.BillUnpaid})
		if err != nil {
			t.Fatalf("create bill %s: %v", m, err)
		}
	}

	bills, err := repo.ListBills(ctx)
	if err != nil {
		t.Fatalf("list bills: %v", err)
	}
	if len(bills) != 3 {
		t.Fatalf("got %d bills, want 3", len(bills))
	}
	if bills[0].Month.String() != "2024-03" || bills[2].Month.String() != "2024-01" {
		t.Fatalf("unexpected order: %s %s %s", bills[0].Month, bills[1].Month, bills[2].Month)
	}
}

func TestRepositorySettingsSeededAndUpdatable(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	s, err := repo.GetSettings(ctx)
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if s == nil {
		t.Fatal("expected seeded settings row")
	}
	if s.ElectricityPrice.Dong != core.DefaultElectricityPrice || s.WaterPrice.Dong != core.DefaultWaterPrice {
		t.Fatalf("seeded settings = %+v", s)
	}

	want := core.Settings{
		ElectricityPrice: core.Money{Dong: 3500},
		WaterPrice:       core.Money{Dong: 16000},
		InternetFee:      core.Money{Dong: 120000},
	}
	if err := repo.UpdateSettings(ctx, want); err != nil {
		t.Fatalf("update settings: %v", err)
	}
	s, err = repo.GetSettings(ctx)
	if err != nil {
		t.Fatalf("get settings after update: %v", err)
	}
	if *s != want {
		t.Fatalf("settings = %+v, want %+v", *s, want)
	}
}

func TestRepositoryRejectsInvalidRecords(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if _, err := repo.CreateRoom(ctx, core.Room{Name: "", Price: core.Money{Dong: 1}, Status: core.RoomAvailable}); err == nil {
		t.Fatal("expected validation error for unnamed room")
	}
	if _, err := repo.CreateBill(ctx, core.Bill{TenantID: "t1"}); err == nil {
		t.Fatal("expected validation error for bill without room")
	}
}
