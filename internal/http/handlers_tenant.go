package http

import (
	"html/template"
	"log/slog"
	"net/http"

	"nhatro/internal/core"
)

type tenantRow struct {
	core.Tenant
	RoomName string
}

func (s *Server) handleTenantsPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/tenants" || r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	ref, err := s.loadSnapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Tenants page snapshot load failed", "error", err)
		w.WriteHeader(http.StatusBadGateway)
		s.render(w, r, "error.html", map[string]string{"Message": msgLoadFailure})
		return
	}

	var form core.Tenant
	form.Status = core.TenantActive
	if editID := r.URL.Query().Get("edit"); editID != "" {
		if t := ref.TenantByID(editID); t != nil {
			form = *t
		}
	}

	rows := make([]tenantRow, 0, len(ref.Tenants))
	for _, t := range ref.Tenants {
		row := tenantRow{Tenant: t}
		if room := ref.RoomByID(t.RoomID); room != nil {
			row.RoomName = room.Name
		}
		rows = append(rows, row)
	}

	// Offer available rooms plus the tenant's current one, so editing
	// never drops an existing assignment.
	roomOptions := make([]Option, 0, len(ref.Rooms))
	for _, room := range ref.Rooms {
		if room.Status == core.RoomAvailable || room.ID == form.RoomID {
			roomOptions = append(roomOptions, Option{Value: room.ID, Label: room.Name})
		}
	}

	s.render(w, r, "tenants.html", struct {
		Tenants   []tenantRow
		ID        string
		Name      Field
		Phone     Field
		IDCard    Field
		Email     Field
		Room      Field
		Status    Field
		StartDate Field
		EndDate   Field
		Note      Field
	}{
		Tenants: rows,
		ID:      form.ID,
		Name:    Field{Kind: FieldText, Name: "name", Label: "Họ tên", Value: form.Name, Required: true},
		Phone:   Field{Kind: FieldText, Name: "phone", Label: "Số điện thoại", Value: form.Phone, Required: true},
		IDCard:  Field{Kind: FieldText, Name: "id_card", Label: "CMND/CCCD", Value: form.IDCard, Required: true},
		Email:   Field{Kind: FieldText, Name: "email", Label: "Email", Value: form.Email},
		Room:    Field{Kind: FieldSelect, Name: "room_id", Label: "Phòng", Value: form.RoomID, Options: roomOptions},
		Status: Field{Kind: FieldSelect, Name: "status", Label: "Trạng thái", Value: string(form.Status), Options: []Option{
			{Value: string(core.TenantActive), Label: "Đang thuê"},
			{Value: string(core.TenantInactive), Label: "Đã rời đi"},
		}},
		StartDate: Field{Kind: FieldDate, Name: "start_date", Label: "Ngày bắt đầu", Value: form.StartDate},
		EndDate:   Field{Kind: FieldDate, Name: "end_date", Label: "Ngày kết thúc", Value: form.EndDate},
		Note:      Field{Kind: FieldTextArea, Name: "note", Label: "Ghi chú", Value: form.Note},
	})
}

func (s *Server) handleTenantSave(w http.ResponseWriter, r *http.Request) {
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

	status := core.TenantStatus(formValue(r, "status"))
	if status == "" {
		status = core.TenantActive
	}
	tenant := core.Tenant{
		Name:      formValue(r, "name"),
		Phone:     formValue(r, "phone"),
		IDCard:    formValue(r, "id_card"),
		Email:     formValue(r, "email"),
		RoomID:    formValue(r, "room_id"),
		Status:    status,
		StartDate: formValue(r, "start_date"),
		EndDate:   formValue(r, "end_date"),
		Note:      formValue(r, "note"),
	}
	if tenant.Name == "" || tenant.Phone == "" || tenant.IDCard == "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(msgMissingRequired) + `</div>`))
		return
	}

	id := formValue(r, "id")
	var err error
	if id == "" {
		_, err = s.backend.CreateTenant(r.Context(), tenant)
	} else {
		err = s.backend.UpdateTenant(r.Context(), id, tenant)
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Tenant save failed", "error", err, "tenant_id", id)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(backendErrorMessage(err)) + `</div>`))
		return
	}

	s.invalidateSnapshot()
	w.Header().Set("HX-Trigger", `{"tenant:saved": {}}`)
	w.Header().Set("HX-Refresh", "true")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Đã lưu người thuê</div>`))
}

func (s *Server) handleTenantDelete(w http.ResponseWriter, r *http.Request) {
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

	if err := s.backend.DeleteTenant(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Tenant delete failed", "error", err, "tenant_id", id)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(backendErrorMessage(err)) + `</div>`))
		return
	}

	s.invalidateSnapshot()
	w.Header().Set("HX-Refresh", "true")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Đã xóa người thuê</div>`))
}
