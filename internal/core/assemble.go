package core

import (
	"fmt"
	"strings"
)

// ValidationError reports the required fields a submission is missing or
// has malformed. It is raised before any backend call is made.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// AssembleBill builds the create/update payload from raw form input and the
// current settings snapshot. Tenant, room, and month are required; all
// other numeric fields coerce to zero when absent or malformed. The total
// is always recomputed here, never trusted from the form.
func AssembleBill(form BillForm, settings *Settings) (Bill, error) {
	var missing []string
	if strings.TrimSpace(form.TenantID) == "" {
		missing = append(missing, "tenantId")
	}
	if strings.TrimSpace(form.RoomID) == "" {
		missing = append(missing, "roomId")
	}
	month, monthErr := ParseMonth(form.Month)
	if monthErr != nil {
		missing = append(missing, "month")
	}
	if len(missing) > 0 {
		return Bill{}, &ValidationError{Fields: missing}
	}

	status := BillStatus(form.Status)
	if status == "" {
		status = BillUnpaid
	}

	resolved := ResolveSettings(settings)
	bill := Bill{
		ID:                  form.ID,
		TenantID:            form.TenantID,
		RoomID:              form.RoomID,
		Month:               month,
		OldElectricityIndex: ParseAmount(form.OldElectricityIndex),
		NewElectricityIndex: ParseAmount(form.NewElectricityIndex),
		ElectricityPrice:    resolved.ElectricityPrice,
		OldWaterIndex:       ParseAmount(form.OldWaterIndex),
		NewWaterIndex:       ParseAmount(form.NewWaterIndex),
		WaterPrice:          resolved.WaterPrice,
		InternetFee:         resolved.InternetFee,
		Rent:                Money{Dong: ParseAmount(form.Rent)},
		Status:              status,
		Note:                strings.TrimSpace(form.Note),
	}
	bill.Total = ComputeBreakdown(bill).Total
	return bill, nil
}

// FormFromBill flattens a persisted bill back into editable form state.
func FormFromBill(b Bill) BillForm {
	return BillForm{
		ID:                  b.ID,
		TenantID:            b.TenantID,
		RoomID:              b.RoomID,
		Month:               b.Month.String(),
		OldElectricityIndex: formatIndex(b.OldElectricityIndex),
		NewElectricityIndex: formatIndex(b.NewElectricityIndex),
		OldWaterIndex:       formatIndex(b.OldWaterIndex),
		NewWaterIndex:       formatIndex(b.NewWaterIndex),
		Rent:                formatIndex(b.Rent.Dong),
		Status:              string(b.Status),
		Note:                b.Note,
	}
}

func formatIndex(v int64) string {
	if v == 0 {
		return ""
	}
	return fmt.Sprintf("%d", v)
}
