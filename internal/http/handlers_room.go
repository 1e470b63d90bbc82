package http

import (
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"nhatro/internal/core"
)

type roomRow struct {
	core.Room
	Tenant *core.Tenant
}

func (s *Server) handleRoomsPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/rooms" || r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	ref, err := s.loadSnapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Rooms page snapshot load failed", "error", err)
		w.WriteHeader(http.StatusBadGateway)
		s.render(w, r, "error.html", map[string]string{"Message": msgLoadFailure})
		return
	}

	var form core.Room
	form.Status = core.RoomAvailable
	if editID := r.URL.Query().Get("edit"); editID != "" {
		if room := ref.RoomByID(editID); room != nil {
			form = *room
		}
	}

	rows := make([]roomRow, 0, len(ref.Rooms))
	for _, room := range ref.Rooms {
		rows = append(rows, roomRow{Room: room, Tenant: ref.TenantForRoom(room.ID)})
	}

	rent := ""
	if form.Price.Dong != 0 {
		rent = strconv.FormatInt(form.Price.Dong, 10)
	}

	s.render(w, r, "rooms.html", struct {
		Rooms  []roomRow
		ID     string
		Name   Field
		Price  Field
		Status Field
		Desc   Field
	}{
		Rooms: rows,
		ID:    form.ID,
		Name:  Field{Kind: FieldText, Name: "name", Label: "Tên phòng", Value: form.Name, Required: true},
		Price: Field{Kind: FieldNumber, Name: "price", Label: "Giá phòng", Value: rent, Required: true},
		Status: Field{Kind: FieldSelect, Name: "status", Label: "Trạng thái", Value: string(form.Status), Options: []Option{
			{Value: string(core.RoomAvailable), Label: "Còn trống"},
			{Value: string(core.RoomOccupied), Label: "Đang thuê"},
		}},
		Desc: Field{Kind: FieldTextArea, Name: "description", Label: "Mô tả", Value: form.Description},
	})
}

func (s *Server) handleRoomSave(w http.ResponseWriter, r *http.Request) {
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

	status := core.RoomStatus(formValue(r, "status"))
	if status == "" {
		status = core.RoomAvailable
	}
	room := core.Room{
		Name:        formValue(r, "name"),
		Price:       core.Money{Dong: core.ParseAmount(formValue(r, "price"))},
		Status:      status,
		Description: formValue(r, "description"),
	}
	if room.Name == "" || room.Price.Dong <= 0 {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(msgMissingRequired) + `</div>`))
		return
	}

	id := formValue(r, "id")
	var err error
	if id == "" {
		_, err = s.backend.CreateRoom(r.Context(), room)
	} else {
		err = s.backend.UpdateRoom(r.Context(), id, room)
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Room save failed", "error", err, "room_id", id)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(backendErrorMessage(err)) + `</div>`))
		return
	}

	s.invalidateSnapshot()
	w.Header().Set("HX-Trigger", `{"room:saved": {}}`)
	w.Header().Set("HX-Refresh", "true")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Đã lưu phòng</div>`))
}

func (s *Server) handleRoomDelete(w http.ResponseWriter, r *http.Request) {
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

	if err := s.backend.DeleteRoom(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Room delete failed", "error", err, "room_id", id)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(backendErrorMessage(err)) + `</div>`))
		return
	}

	s.invalidateSnapshot()
	w.Header().Set("HX-Refresh", "true")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Đã xóa phòng</div>`))
}
