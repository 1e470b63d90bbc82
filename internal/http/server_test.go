package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"nhatro/internal/core"
	"nhatro/internal/memory"
	"nhatro/internal/services"
)

func newTestServer(t *testing.T, store *memory.Store) *Server {
	t.Helper()
	s := NewServer("127.0.0.1:0", store, services.NewBillService(store, nil), time.Second)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
	})
	return s
}

func seedRoomAndTenant(t *testing.T, store *memory.Store) (roomID, tenantID string) {
	t.Helper()
	ctx := context.Background()
	roomID, err := store.CreateRoom(ctx, core.Room{Name: "P101", Price: core.Money{Dong: 2500000}, Status: core.RoomOccupied})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	tenantID, err = store.CreateTenant(ctx, core.Tenant{Name: "Nguyễn Văn An", Phone: "0901234567", IDCard: "079123", RoomID: roomID, Status: core.TenantActive})
	if err != nil {
		t.Fatalf("create tenant: %v", err)
	}
	return roomID, tenantID
}

func postForm(s *Server, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func get(s *Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestBillSaveRejectsIncompleteSubmission(t *testing.T) {
	store := memory.NewStore()
	s := newTestServer(t, store)

	rec := postForm(s, "/bills/save", url.Values{"month": {"2024-03"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Vui lòng điền đầy đủ thông tin bắt buộc") {
		t.Fatalf("body = %q, want required-fields message", rec.Body.String())
	}

	bills, _ := store.ListBills(context.Background())
	if len(bills) != 0 {
		t.Fatalf("rejected submission must not persist, got %d bills", len(bills))
	}
}

func TestBillSaveCreatesAndListsBill(t *testing.T) {
	store := memory.NewStore()
	roomID, tenantID := seedRoomAndTenant(t, store)
	s := newTestServer(t, store)

	rec := postForm(s, "/bills/save", url.Values{
		"tenant_id":             {tenantID},
		"room_id":               {roomID},
		"month":                 {"2024-03"},
		"old_electricity_index": {"1000"},
		"new_electricity_index": {"1120"},
		"old_water_index":       {"40"},
		"new_water_index":       {"55"},
		"rent":                  {"2000000"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("HX-Refresh") != "true" {
		t.Fatal("expected HX-Refresh header for full reload")
	}

	bills, _ := store.ListBills(context.Background())
	if len(bills) != 1 {
		t.Fatalf("got %d bills, want 1", len(bills))
	}
	// 120*3000 + 15*15000 + 100000 + 2000000 with default prices
	if bills[0].Total.Dong != 2685000 {
		t.Fatalf("total = %d, want 2685000", bills[0].Total.Dong)
	}

	page := get(s, "/bills")
	if page.Code != http.StatusOK {
		t.Fatalf("bills page status = %d", page.Code)
	}
	if !strings.Contains(page.Body.String(), "₫2,685,000") {
		t.Fatal("bills page should render the computed total")
	}
}

func TestBillFormSyncFillsRentAndCarriesIndexes(t *testing.T) {
	store := memory.NewStore()
	roomID, tenantID := seedRoomAndTenant(t, store)
	_, err := store.CreateBill(context.Background(), core.Bill{
		TenantID:            tenantID,
		RoomID:              roomID,
		Month:               core.NewMonth(2024, 2),
		NewElectricityIndex: 150,
		NewWaterIndex:       80,
		Status:              core.BillUnpaid,
	})
	if err != nil {
		t.Fatalf("seed bill: %v", err)
	}
	s := newTestServer(t, store)

	rec := postForm(s, "/bills/form", url.Values{
		"prev_room_id": {""},
		"room_id":      {roomID},
		"tenant_id":    {tenantID},
		"month":        {"2024-03"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `name="rent" value="2500000"`) {
		t.Fatalf("rent not autofilled from room price:\n%s", body)
	}
	if !strings.Contains(body, `name="old_electricity_index" value="150"`) {
		t.Fatalf("electricity index not carried forward:\n%s", body)
	}
	if !strings.Contains(body, `name="old_water_index" value="80"`) {
		t.Fatalf("water index not carried forward:\n%s", body)
	}
	// prev_* hidden fields carry the new selection for the next sync
	if !strings.Contains(body, `name="prev_room_id" value="`+roomID+`"`) {
		t.Fatalf("prev room not updated:\n%s", body)
	}
}

func TestBillFormSyncLeavesUnrelatedEditsAlone(t *testing.T) {
	store := memory.NewStore()
	roomID, tenantID := seedRoomAndTenant(t, store)
	s := newTestServer(t, store)

	rec := postForm(s, "/bills/form", url.Values{
		"prev_room_id":   {roomID},
		"prev_tenant_id": {tenantID},
		"room_id":        {roomID},
		"tenant_id":      {tenantID},
		"month":          {"2024-03"},
		"rent":           {"1234567"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `name="rent" value="1234567"`) {
		t.Fatal("manual rent must survive a sync without a room change")
	}
}

func TestBillDeleteRemovesBill(t *testing.T) {
	store := memory.NewStore()
	roomID, tenantID := seedRoomAndTenant(t, store)
	billID, _ := store.CreateBill(context.Background(), core.Bill{TenantID: tenantID, RoomID: roomID, Month: core.NewMonth(2024, 1), Status: core.BillUnpaid})
	s := newTestServer(t, store)

	rec := postForm(s, "/bills/delete?id="+billID, url.Values{})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}

	bills, _ := store.ListBills(context.Background())
	if len(bills) != 0 {
		t.Fatalf("bill not deleted, %d remain", len(bills))
	}
}

type brokenBackend struct {
	*memory.Store
}

func (b *brokenBackend) ListBills(context.Context) ([]core.Bill, error) {
	return nil, errors.New("connection refused")
}

func TestPagesReturn502WhenSnapshotLoadFails(t *testing.T) {
	store := memory.NewStore()
	b := &brokenBackend{Store: store}
	s := NewServer("127.0.0.1:0", b, services.NewBillService(b, nil), time.Second)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
	})

	rec := get(s, "/bills")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Không thể tải dữ liệu") {
		t.Fatalf("body = %q, want load-failure notice", rec.Body.String())
	}
}

func TestDashboardRendersOverview(t *testing.T) {
	store := memory.NewStore()
	roomID, tenantID := seedRoomAndTenant(t, store)
	_, _ = store.CreateBill(context.Background(), core.Bill{TenantID: tenantID, RoomID: roomID, Month: core.NewMonth(2024, 3), Total: core.Money{Dong: 2780000}, Status: core.BillUnpaid})
	s := newTestServer(t, store)

	rec := get(s, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "₫2,780,000") {
		t.Fatal("dashboard should show the unpaid total")
	}
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t, memory.NewStore())
	if rec := get(s, "/healthz"); rec.Code != http.StatusOK {
		t.Fatalf("healthz = %d", rec.Code)
	}
	if rec := get(s, "/readyz"); rec.Code != http.StatusOK {
		t.Fatalf("readyz = %d", rec.Code)
	}
}
