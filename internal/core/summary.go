package core

// Overview is the compact dashboard summary derived from a reference
// snapshot.
type Overview struct {
	TotalRooms     int
	AvailableRooms int
	TotalTenants   int
	ActiveTenants  int
	TotalBills     int
	PaidTotal      Money
	UnpaidTotal    Money
	UnpaidCount    int
}

// BuildOverview aggregates the dashboard numbers from a loaded snapshot.
func BuildOverview(ref ReferenceData) Overview {
	o := Overview{
		TotalRooms:   len(ref.Rooms),
		TotalTenants: len(ref.Tenants),
		TotalBills:   len(ref.Bills),
	}
	for _, r := range ref.Rooms {
		if r.Status == RoomAvailable {
			o.AvailableRooms++
		}
	}
	for _, t := range ref.Tenants {
		if t.Status == TenantActive {
			o.ActiveTenants++
		}
	}
	for _, b := range ref.Bills {
		switch b.Status {
		case BillPaid:
			o.PaidTotal = o.PaidTotal.Add(b.Total)
		case BillUnpaid:
			o.UnpaidTotal = o.UnpaidTotal.Add(b.Total)
			o.UnpaidCount++
		}
	}
	return o
}
