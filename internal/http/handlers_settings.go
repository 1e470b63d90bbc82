package http

import (
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"nhatro/internal/core"
)

func (s *Server) handleSettingsPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/settings" || r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	ref, err := s.loadSnapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Settings page snapshot load failed", "error", err)
		w.WriteHeader(http.StatusBadGateway)
		s.render(w, r, "error.html", map[string]string{"Message": msgLoadFailure})
		return
	}

	settings := core.ResolveSettings(ref.Settings)

	s.render(w, r, "settings.html", struct {
		Electricity Field
		Water       Field
		Internet    Field
		Cleaning    Field
	}{
		Electricity: Field{Kind: FieldNumber, Name: "electricity_price", Label: "Giá điện (₫/kWh)", Value: strconv.FormatInt(settings.ElectricityPrice.Dong, 10), Required: true},
		Water:       Field{Kind: FieldNumber, Name: "water_price", Label: "Giá nước (₫/m³)", Value: strconv.FormatInt(settings.WaterPrice.Dong, 10), Required: true},
		Internet:    Field{Kind: FieldNumber, Name: "internet_fee", Label: "Phí internet (₫/tháng)", Value: strconv.FormatInt(settings.InternetFee.Dong, 10), Required: true},
		Cleaning:    Field{Kind: FieldNumber, Name: "cleaning_fee", Label: "Phí vệ sinh (₫/tháng)", Value: strconv.FormatInt(settings.CleaningFee.Dong, 10)},
	})
}

func (s *Server) handleSettingsSave(w http.ResponseWriter, r *http.Request) {
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

	settings := core.Settings{
		ElectricityPrice: core.Money{Dong: core.ParseAmount(formValue(r, "electricity_price"))},
		WaterPrice:       core.Money{Dong: core.ParseAmount(formValue(r, "water_price"))},
		InternetFee:      core.Money{Dong: core.ParseAmount(formValue(r, "internet_fee"))},
		CleaningFee:      core.Money{Dong: core.ParseAmount(formValue(r, "cleaning_fee"))},
	}
	if err := settings.Validate(); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(msgMissingRequired) + `</div>`))
		return
	}

	if err := s.backend.UpdateSettings(r.Context(), settings); err != nil {
		slog.ErrorContext(r.Context(), "Settings save failed", "error", err)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(backendErrorMessage(err)) + `</div>`))
		return
	}

	s.invalidateSnapshot()
	w.Header().Set("HX-Trigger", `{"settings:saved": {}}`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Đã lưu cài đặt</div>`))
}
