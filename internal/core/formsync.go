package core

import "strconv"

// BillForm is the raw state of the bill create/edit form. Numeric fields
// stay as entered; coercion happens once, at submission time.
type BillForm struct {
	ID                  string
	TenantID            string
	RoomID              string
	Month               string
	OldElectricityIndex string
	NewElectricityIndex string
	OldWaterIndex       string
	NewWaterIndex       string
	Rent                string
	Status              string
	Note                string
}

// UsageHint is the non-authoritative cost preview shown next to a meter
// index pair. It is descriptive text only and is never persisted.
type UsageHint struct {
	Consumption int64
	UnitPrice   Money
	Cost        Money
}

// FormView is the consistent snapshot the form converges to after each
// input change: the possibly rewritten form state plus the derived option
// lists and previews.
type FormView struct {
	Form          BillForm
	RoomOptions   []Room
	TenantOptions []Tenant
	Electricity   *UsageHint
	Water         *UsageHint
}

// SyncBillForm applies the dependent-field rules to a form after a field
// change. prev is the form state before the change; next is the state the
// user produced. Every rule reads only the current tenant/room selection
// and the reference snapshot, never its own earlier output, so applying
// the rules twice to an unchanged snapshot is a no-op.
func SyncBillForm(prev, next BillForm, ref ReferenceData) FormView {
	form := next

	// Room filtering by tenant. A tenant with an assigned room collapses
	// the room options to that room, and the assignment wins over whatever
	// room was selected before.
	var roomOptions []Room
	if t := ref.TenantByID(form.TenantID); t != nil && t.RoomID != "" {
		if room := ref.RoomByID(t.RoomID); room != nil {
			form.RoomID = room.ID
			roomOptions = []Room{*room}
		}
	}
	if roomOptions == nil {
		roomOptions = ref.Rooms
	}

	// Tenant filtering by room, symmetric to the rule above.
	var tenantOptions []Tenant
	if form.RoomID != "" {
		if t := ref.TenantForRoom(form.RoomID); t != nil {
			tenantOptions = []Tenant{*t}
		}
	}
	if tenantOptions == nil {
		tenantOptions = ref.Tenants
	}

	// The remaining rewrite rules fire only when the selected room actually
	// changed, so a manually edited rent or index survives unrelated edits.
	if form.RoomID != prev.RoomID && form.RoomID != "" {
		if room := ref.RoomByID(form.RoomID); room != nil && room.Price.Dong != 0 {
			if ParseAmount(form.Rent) != room.Price.Dong {
				form.Rent = strconv.FormatInt(room.Price.Dong, 10)
			}
		}

		// Meter-index carry-forward: this month's starting reading is last
		// month's ending reading. A zero ending index in the prior bill is
		// treated as unrecorded and does not overwrite user input.
		if last := ref.LatestBillForRoom(form.RoomID); last != nil {
			if last.NewElectricityIndex != 0 {
				form.OldElectricityIndex = strconv.FormatInt(last.NewElectricityIndex, 10)
			}
			if last.NewWaterIndex != 0 {
				form.OldWaterIndex = strconv.FormatInt(last.NewWaterIndex, 10)
			}
		}
	}

	settings := ResolveSettings(ref.Settings)
	return FormView{
		Form:          form,
		RoomOptions:   roomOptions,
		TenantOptions: tenantOptions,
		Electricity:   usageHint(form.OldElectricityIndex, form.NewElectricityIndex, settings.ElectricityPrice),
		Water:         usageHint(form.OldWaterIndex, form.NewWaterIndex, settings.WaterPrice),
	}
}

func usageHint(oldRaw, newRaw string, price Money) *UsageHint {
	if oldRaw == "" || newRaw == "" {
		return nil
	}
	consumption := ParseAmount(newRaw) - ParseAmount(oldRaw)
	return &UsageHint{
		Consumption: consumption,
		UnitPrice:   price,
		Cost:        price.MulUnits(consumption),
	}
}
