package http

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"nhatro/internal/core"
	applog "nhatro/internal/log"
)

// billRow is one row of the bills table with its derived breakdown.
type billRow struct {
	core.Bill
	Breakdown core.Breakdown
}

// billFormData is everything the bill form fragment renders: the widget
// per field, the carried previous selection, and the usage previews.
type billFormData struct {
	ID         string
	PrevTenant string
	PrevRoom   string

	Tenant Field
	Room   Field
	Month  Field
	OldE   Field
	NewE   Field
	OldW   Field
	NewW   Field
	Rent   Field
	Status Field
	Note   Field

	Electricity *core.UsageHint
	Water       *core.UsageHint

	Error string
}

func buildBillFormData(view core.FormView) billFormData {
	form := view.Form

	roomOptions := make([]Option, 0, len(view.RoomOptions))
	for _, r := range view.RoomOptions {
		roomOptions = append(roomOptions, Option{Value: r.ID, Label: r.Name})
	}
	tenantOptions := make([]Option, 0, len(view.TenantOptions))
	for _, t := range view.TenantOptions {
		tenantOptions = append(tenantOptions, Option{Value: t.ID, Label: t.Name})
	}

	return billFormData{
		ID:         form.ID,
		PrevTenant: form.TenantID,
		PrevRoom:   form.RoomID,

		Tenant: Field{Kind: FieldSelect, Name: "tenant_id", Label: "Người thuê", Value: form.TenantID, Required: true, Options: tenantOptions},
		Room:   Field{Kind: FieldSelect, Name: "room_id", Label: "Phòng", Value: form.RoomID, Required: true, Options: roomOptions},
		Month:  Field{Kind: FieldMonth, Name: "month", Label: "Tháng", Value: form.Month, Required: true},
		OldE:   Field{Kind: FieldNumber, Name: "old_electricity_index", Label: "Chỉ số điện cũ", Value: form.OldElectricityIndex},
		NewE:   Field{Kind: FieldNumber, Name: "new_electricity_index", Label: "Chỉ số điện mới", Value: form.NewElectricityIndex},
		OldW:   Field{Kind: FieldNumber, Name: "old_water_index", Label: "Chỉ số nước cũ", Value: form.OldWaterIndex},
		NewW:   Field{Kind: FieldNumber, Name: "new_water_index", Label: "Chỉ số nước mới", Value: form.NewWaterIndex},
		Rent:   Field{Kind: FieldNumber, Name: "rent", Label: "Tiền phòng", Value: form.Rent, Hint: "Tự điền theo giá phòng khi chọn phòng"},
		Status: Field{Kind: FieldSelect, Name: "status", Label: "Trạng thái", Value: form.Status, Options: []Option{
			{Value: string(core.BillUnpaid), Label: "Chưa thanh toán"},
			{Value: string(core.BillPaid), Label: "Đã thanh toán"},
		}},
		Note: Field{Kind: FieldTextArea, Name: "note", Label: "Ghi chú", Value: form.Note},

		Electricity: view.Electricity,
		Water:       view.Water,
	}
}

func billFormFromRequest(r *http.Request) core.BillForm {
	return core.BillForm{
		ID:                  formValue(r, "id"),
		TenantID:            formValue(r, "tenant_id"),
		RoomID:              formValue(r, "room_id"),
		Month:               formValue(r, "month"),
		OldElectricityIndex: formValue(r, "old_electricity_index"),
		NewElectricityIndex: formValue(r, "new_electricity_index"),
		OldWaterIndex:       formValue(r, "old_water_index"),
		NewWaterIndex:       formValue(r, "new_water_index"),
		Rent:                formValue(r, "rent"),
		Status:              formValue(r, "status"),
		Note:                formValue(r, "note"),
	}
}

// prevBillFormFromRequest recovers the form state before the edit from the
// hidden prev_* fields, so change-gated rules know what actually changed.
func prevBillFormFromRequest(r *http.Request) core.BillForm {
	return core.BillForm{
		ID:       formValue(r, "id"),
		TenantID: formValue(r, "prev_tenant_id"),
		RoomID:   formValue(r, "prev_room_id"),
	}
}

func (s *Server) handleBillsPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/bills" || r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	ref, err := s.loadSnapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Bills page snapshot load failed", "error", err)
		w.WriteHeader(http.StatusBadGateway)
		s.render(w, r, "error.html", map[string]string{"Message": msgLoadFailure})
		return
	}

	form := core.BillForm{Month: core.CurrentMonth().String(), Status: string(core.BillUnpaid)}
	if editID := r.URL.Query().Get("edit"); editID != "" {
		for _, b := range ref.Bills {
			if b.ID == editID {
				form = core.FormFromBill(b)
				break
			}
		}
	}
	// prev == next here: option lists are derived but nothing is rewritten.
	view := core.SyncBillForm(form, form, ref)

	rows := make([]billRow, 0, len(ref.Bills))
	for _, b := range ref.Bills {
		rows = append(rows, billRow{Bill: b, Breakdown: core.ComputeBreakdown(b)})
	}

	s.render(w, r, "bills.html", struct {
		Bills []billRow
		Form  billFormData
	}{Bills: rows, Form: buildBillFormData(view)})
}

// handleBillFormSync re-renders the bill form fragment after a field
// change, applying the dependent-field rules.
func (s *Server) handleBillFormSync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(msgGenericFailure) + `</div>`))
		return
	}

	ref, err := s.loadSnapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Form sync snapshot load failed", "error", err)
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(msgLoadFailure) + `</div>`))
		return
	}

	view := core.SyncBillForm(prevBillFormFromRequest(r), billFormFromRequest(r), ref)
	s.render(w, r, "bill_form.html", buildBillFormData(view))
}

func (s *Server) handleBillSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(msgGenericFailure) + `</div>`))
		return
	}

	form := billFormFromRequest(r)

	ref, err := s.loadSnapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Bill save snapshot load failed", "error", err)
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(msgLoadFailure) + `</div>`))
		return
	}

	// Validation happens before any backend mutation.
	bill, err := core.AssembleBill(form, ref.Settings)
	if err != nil {
		var valErr *core.ValidationError
		if errors.As(err, &valErr) {
			slog.WarnContext(r.Context(), "Bill submission rejected", "missing", valErr.Fields)
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(msgMissingRequired) + `</div>`))
		return
	}

	id := form.ID
	if id == "" {
		id, err = s.bills.CreateBill(r.Context(), bill)
	} else {
		err = s.bills.UpdateBill(r.Context(), id, bill)
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Bill save failed", "error", err, "bill_id", form.ID)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(backendErrorMessage(err)) + `</div>`))
		return
	}

	applog.FromContext(r.Context()).InfoContext(r.Context(), "Bill saved",
		applog.FieldBillID, id,
		applog.FieldMonth, bill.Month.String(),
		applog.FieldAmountDong, bill.Total.Dong)

	s.invalidateSnapshot()
	w.Header().Set("HX-Trigger", `{"bill:saved": {}}`)
	w.Header().Set("HX-Refresh", "true")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Đã lưu hóa đơn</div>`))
}

func (s *Server) handleBillDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	_ = r.ParseForm()
	id := formValue(r, "id")
	if id == "" {
		id = r.URL.Query().Get("id")
	}
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(msgGenericFailure) + `</div>`))
		return
	}

	if err := s.bills.DeleteBill(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Bill delete failed", "error", err, "bill_id", id)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(backendErrorMessage(err)) + `</div>`))
		return
	}

	s.invalidateSnapshot()
	w.Header().Set("HX-Trigger", `{"bill:deleted": {}}`)
	w.Header().Set("HX-Refresh", "true")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Đã xóa hóa đơn</div>`))
}
