package core

import (
	"errors"
	"testing"
)

func TestRoomValidate(t *testing.T) {
	good := Room{Name: "P101", Price: Money{Dong: 2000000}, Status: RoomAvailable}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		room Room
		want error
	}{
		{Room{Price: Money{Dong: 1}, Status: RoomAvailable}, ErrEmptyName},
		{Room{Name: "P101", Status: RoomAvailable}, ErrInvalidPrice},
		{Room{Name: "P101", Price: Money{Dong: 1}, Status: "rented"}, ErrInvalidStatus},
	}
	for i, tc := range cases {
		if err := tc.room.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d: got %v, want %v", i, err, tc.want)
		}
	}
}

func TestTenantValidate(t *testing.T) {
	good := Tenant{Name: "Nguyễn Văn An", Phone: "0901234567", IDCard: "079123456789", Status: TenantActive}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		tenant Tenant
		want   error
	}{
		{Tenant{Phone: "1", IDCard: "2", Status: TenantActive}, ErrEmptyName},
		{Tenant{Name: "a", IDCard: "2", Status: TenantActive}, ErrEmptyPhone},
		{Tenant{Name: "a", Phone: "1", Status: TenantActive}, ErrEmptyIDCard},
		{Tenant{Name: "a", Phone: "1", IDCard: "2", Status: "gone"}, ErrInvalidStatus},
	}
	for i, tc := range cases {
		if err := tc.tenant.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d: got %v, want %v", i, err, tc.want)
		}
	}
}

func TestSettingsValidate(t *testing.T) {
	good := Settings{
		ElectricityPrice: Money{Dong: 3500},
		WaterPrice:       Money{Dong: 16000},
		InternetFee:      Money{Dong: 120000},
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	bad := good
	bad.WaterPrice = Money{}
	if err := bad.Validate(); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("got %v, want %v", err, ErrInvalidPrice)
	}
}

func TestLatestBillForRoom(t *testing.T) {
	ref := ReferenceData{
		Bills: []Bill{
			{ID: "b2", RoomID: "r1", Month: NewMonth(2024, 2)},
			{ID: "b1", RoomID: "r1", Month: NewMonth(2024, 1)},
			{ID: "b9", RoomID: "r2", Month: NewMonth(2024, 6)},
		},
	}
	got := ref.LatestBillForRoom("r1")
	if got == nil || got.ID != "b2" {
		t.Fatalf("got %+v, want b2", got)
	}
	if ref.LatestBillForRoom("r7") != nil {
		t.Fatal("expected nil for room without bills")
	}
}

func TestTenantForRoom(t *testing.T) {
	ref := ReferenceData{
		Tenants: []Tenant{
			{ID: "t1", RoomID: "r1"},
			{ID: "t2"},
		},
	}
	if got := ref.TenantForRoom("r1"); got == nil || got.ID != "t1" {
		t.Fatalf("got %+v, want t1", got)
	}
	if ref.TenantForRoom("r2") != nil {
		t.Fatal("expected nil for vacant room")
	}
	if ref.TenantForRoom("") != nil {
		t.Fatal("expected nil for empty room id")
	}
}
