package core

import (
	"errors"
	"sort"
	"strings"
)

const (
	RoomAvailable RoomStatus = "available"
	RoomOccupied  RoomStatus = "occupied"

	TenantActive   TenantStatus = "active"
	TenantInactive TenantStatus = "inactive"

	BillPaid   BillStatus = "paid"
	BillUnpaid BillStatus = "unpaid"
)

type (
	RoomStatus   string
	TenantStatus string
	BillStatus   string

	Room struct {
		ID          string
		Name        string
		Price       Money
		Status      RoomStatus
		Description string
	}

	Tenant struct {
		ID        string
		Name      string
		Phone     string
		IDCard    string
		Email     string
		RoomID    string // optional; a tenant references at most one room
		Status    TenantStatus
		StartDate string // YYYY-MM-DD, optional
		EndDate   string // YYYY-MM-DD, optional
		Note      string
	}

	Bill struct {
		ID                  string
		TenantID            string
		RoomID              string
		TenantName          string // display only, filled when the backend expands references
		RoomName            string
		Month               Month
		OldElectricityIndex int64
		NewElectricityIndex int64
		ElectricityPrice    Money // copied from settings at creation time, not live-linked
		OldWaterIndex       int64
		NewWaterIndex       int64
		WaterPrice          Money
		InternetFee         Money
		Rent                Money
		Total               Money
		Status              BillStatus
		Note                string
	}

	Settings struct {
		ElectricityPrice Money
		WaterPrice       Money
		InternetFee      Money
		CleaningFee      Money
	}
)

var (
	ErrEmptyName     = errors.New("empty name")
	ErrEmptyPhone    = errors.New("empty phone")
	ErrEmptyIDCard   = errors.New("empty id card")
	ErrInvalidPrice  = errors.New("invalid price")
	ErrInvalidStatus = errors.New("invalid status")
	ErrInvalidMonth  = errors.New("invalid month")
)

func (s RoomStatus) Valid() bool {
	return s == RoomAvailable || s == RoomOccupied
}

func (s TenantStatus) Valid() bool {
	return s == TenantActive || s == TenantInactive
}

func (s BillStatus) Valid() bool {
	return s == BillPaid || s == BillUnpaid
}

func (r Room) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	if r.Price.Dong <= 0 {
		return ErrInvalidPrice
	}
	if !r.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

func (t Tenant) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(t.Phone) == "" {
		return ErrEmptyPhone
	}
	if strings.TrimSpace(t.IDCard) == "" {
		return ErrEmptyIDCard
	}
	if !t.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

func (s Settings) Validate() error {
	if s.ElectricityPrice.Dong <= 0 || s.WaterPrice.Dong <= 0 || s.InternetFee.Dong <= 0 {
		return ErrInvalidPrice
	}
	return nil
}

func (b Bill) Validate() error {
	if b.TenantID == "" || b.RoomID == "" {
		return errors.New("bill must reference a tenant and a room")
	}
	if b.Month.IsZero() {
		return ErrInvalidMonth
	}
	if !b.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// ReferenceData is an immutable snapshot of the four backend lists a bill
// form works against. Mutations never edit it in place; callers reload a
// fresh snapshot instead.
type ReferenceData struct {
	Bills    []Bill
	Tenants  []Tenant
	Rooms    []Room
	Settings *Settings
}

func (r ReferenceData) RoomByID(id string) *Room {
	for i := range r.Rooms {
		if r.Rooms[i].ID == id {
			return &r.Rooms[i]
		}
	}
	return nil
}

func (r ReferenceData) TenantByID(id string) *Tenant {
	for i := range r.Tenants {
		if r.Tenants[i].ID == id {
			return &r.Tenants[i]
		}
	}
	return nil
}

// TenantForRoom returns the tenant currently referencing the room. The
// tenant side of the tenant/room link is the source of truth; rooms carry
// no back-reference.
func (r ReferenceData) TenantForRoom(roomID string) *Tenant {
	if roomID == "" {
		return nil
	}
	for i := range r.Tenants {
		if r.Tenants[i].RoomID == roomID {
			return &r.Tenants[i]
		}
	}
	return nil
}

// LatestBillForRoom returns the room's most recent bill by month, or nil
// when the room has no billing history.
func (r ReferenceData) LatestBillForRoom(roomID string) *Bill {
	var candidates []Bill
	for _, b := range r.Bills {
		if b.RoomID == roomID {
			candidates = append(candidates, b)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[j].Month.Before(candidates[i].Month)
	})
	latest := candidates[0]
	return &latest
}
