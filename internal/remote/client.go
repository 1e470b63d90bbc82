// Package remote implements the backend ports against the external
// rental-management REST API. List endpoints return a {data:[...]} envelope;
// bill tenant/room references arrive either as raw identifiers or as
// expanded sub-objects, and both shapes are accepted.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nhatro/internal/core"
)

// Client talks to the remote API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client for the given base URL. A zero timeout lets a
// hung request block until the request context is cancelled.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// APIError is a rejection from the remote backend. Message carries the
// backend's own error text when the response body included one; callers
// surface it verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend rejected request: %s", http.StatusText(e.StatusCode))
}

// ref accepts a populated reference in either wire shape: a raw id string
// or an expanded sub-object.
type ref struct {
	ID   string
	Name string
}

func (r *ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*r = ref{}
		return nil
	}
	if data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = ref{ID: id}
		return nil
	}
	var obj struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*r = ref{ID: obj.ID, Name: obj.Name}
	return nil
}

type listEnvelope[T any] struct {
	Data []T `json:"data"`
}

type billDTO struct {
	ID                  string `json:"_id"`
	TenantID            ref    `json:"tenantId"`
	RoomID              ref    `json:"roomId"`
	Month               string `json:"month"`
	OldElectricityIndex int64  `json:"oldElectricityIndex"`
	NewElectricityIndex int64  `json:"newElectricityIndex"`
	ElectricityPrice    int64  `json:"electricityPrice"`
	OldWaterIndex       int64  `json:"oldWaterIndex"`
	NewWaterIndex       int64  `json:"newWaterIndex"`
	WaterPrice          int64  `json:"waterPrice"`
	InternetFee         int64  `json:"internetFee"`
	Rent                int64  `json:"rent"`
	Total               int64  `json:"total"`
	Status              string `json:"status"`
	Note                string `json:"note"`
}

type billPayload struct {
	TenantID            string `json:"tenantId"`
	RoomID              string `json:"roomId"`
	Month               string `json:"month"`
	OldElectricityIndex int64  `json:"oldElectricityIndex"`
	NewElectricityIndex int64  `json:"newElectricityIndex"`
	ElectricityPrice    int64  `json:"electricityPrice"`
	OldWaterIndex       int64  `json:"oldWaterIndex"`
	NewWaterIndex       int64  `json:"newWaterIndex"`
	WaterPrice          int64  `json:"waterPrice"`
	InternetFee         int64  `json:"internetFee"`
	Rent                int64  `json:"rent"`
	Total               int64  `json:"total"`
	Status              string `json:"status"`
	Note                string `json:"note"`
}

type roomDTO struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

type roomPayload struct {
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

type tenantDTO struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	IDCard    string `json:"idCard"`
	Email     string `json:"email"`
	RoomID    ref    `json:"roomId"`
	Status    string `json:"status"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Note      string `json:"note"`
}

type tenantPayload struct {
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	IDCard    string  `json:"idCard"`
	Email     string  `json:"email"`
	RoomID    *string `json:"roomId"`
	Status    string  `json:"status"`
	StartDate string  `json:"startDate,omitempty"`
	EndDate   string  `json:"endDate,omitempty"`
	Note      string  `json:"note"`
}

type settingsDTO struct {
	ElectricityPrice int64 `json:"electricityPrice"`
	WaterPrice       int64 `json:"waterPrice"`
	InternetFee      int64 `json:"internetFee"`
	CleaningFee      int64 `json:"cleaningFee"`
}

type createdDTO struct {
	ID string `json:"_id"`
}

// ListBills implements backend.BillStore.
func (c *Client) ListBills(ctx context.Context) ([]core.Bill, error) {
	var env listEnvelope[billDTO]
	if err := c.do(ctx, http.MethodGet, "/bills", nil, nil, &env); err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	bills := make([]core.Bill, len(env.Data))
	for i, d := range env.Data {
		bills[i] = billFromDTO(d)
	}
	return bills, nil
}

// GetBill fetches one bill. The API has no single-resource endpoint, so
// the list is scanned.
func (c *Client) GetBill(ctx context.Context, id string) (core.Bill, error) {
	bills, err := c.ListBills(ctx)
	if err != nil {
		return core.Bill{}, err
	}
	for _, b := range bills {
		if b.ID == id {
			return b, nil
		}
	}
	return core.Bill{}, fmt.Errorf("bill %s not found", id)
}

func (c *Client) CreateBill(ctx context.Context, b core.Bill) (string, error) {
	var created createdDTO
	if err := c.do(ctx, http.MethodPost, "/bills", nil, billToPayload(b), &created); err != nil {
		return "", fmt.Errorf("create bill: %w", err)
	}
	return created.ID, nil
}

func (c *Client) UpdateBill(ctx context.Context, id string, b core.Bill) error {
	if err := c.do(ctx, http.MethodPut, "/bills", url.Values{"id": {id}}, billToPayload(b), nil); err != nil {
		return fmt.Errorf("update bill: %w", err)
	}
	return nil
}

func (c *Client) DeleteBill(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/bills", url.Values{"id": {id}}, nil, nil); err != nil {
		return fmt.Errorf("delete bill: %w", err)
	}
	return nil
}

// ListRooms implements backend.RoomStore.
func (c *Client) ListRooms(ctx context.Context) ([]core.Room, error) {
	var env listEnvelope[roomDTO]
	if err := c.do(ctx, http.MethodGet, "/rooms", nil, nil, &env); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	rooms := make([]core.Room, len(env.Data))
	for i, d := range env.Data {
		rooms[i] = core.Room{
			ID:          d.ID,
			Name:        d.Name,
			Price:       core.Money{Dong: d.Price},
			Status:      core.RoomStatus(d.Status),
			Description: d.Description,
		}
	}
	return rooms, nil
}

func (c *Client) CreateRoom(ctx context.Context, r core.Room) (string, error) {
	var created createdDTO
	if err := c.do(ctx, http.MethodPost, "/rooms", nil, roomToPayload(r), &created); err != nil {
		return "", fmt.Errorf("create room: %w", err)
	}
	return created.ID, nil
}

func (c *Client) UpdateRoom(ctx context.Context, id string, r core.Room) error {
	if err := c.do(ctx, http.MethodPut, "/rooms", url.Values{"id": {id}}, roomToPayload(r), nil); err != nil {
		return fmt.Errorf("update room: %w", err)
	}
	return nil
}

func (c *Client) DeleteRoom(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/rooms", url.Values{"id": {id}}, nil, nil); err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	return nil
}

// ListTenants implements backend.TenantStore. Tenant mutations address the
// resource by path, unlike bills and rooms which use an id query parameter.
func (c *Client) ListTenants(ctx context.Context) ([]core.Tenant, error) {
	var env listEnvelope[tenantDTO]
	if err := c.do(ctx, http.MethodGet, "/tenants", nil, nil, &env); err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	tenants := make([]core.Tenant, len(env.Data))
	for i, d := range env.Data {
		tenants[i] = core.Tenant{
			ID:        d.ID,
			Name:      d.Name,
			Phone:     d.Phone,
			IDCard:    d.IDCard,
			Email:     d.Email,
			RoomID:    d.RoomID.ID,
			Status:    core.TenantStatus(d.Status),
			StartDate: d.StartDate,
			EndDate:   d.EndDate,
			Note:      d.Note,
		}
	}
	return tenants, nil
}

func (c *Client) CreateTenant(ctx context.Context, t core.Tenant) (string, error) {
	var created createdDTO
	if err := c.do(ctx, http.MethodPost, "/tenants", nil, tenantToPayload(t), &created); err != nil {
		return "", fmt.Errorf("create tenant: %w", err)
	}
	return created.ID, nil
}

func (c *Client) UpdateTenant(ctx context.Context, id string, t core.Tenant) error {
	if err := c.do(ctx, http.MethodPut, "/tenants/"+url.PathEscape(id), nil, tenantToPayload(t), nil); err != nil {
		return fmt.Errorf("update tenant: %w", err)
	}
	return nil
}

func (c *Client) DeleteTenant(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/tenants/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete tenant: %w", err)
	}
	return nil
}

// GetSettings implements backend.SettingsStore. The settings resource is a
// singleton object, not an enveloped list.
func (c *Client) GetSettings(ctx context.Context) (*core.Settings, error) {
	var dto settingsDTO
	if err := c.do(ctx, http.MethodGet, "/settings", nil, nil, &dto); err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &core.Settings{
		ElectricityPrice: core.Money{Dong: dto.ElectricityPrice},
		WaterPrice:       core.Money{Dong: dto.WaterPrice},
		InternetFee:      core.Money{Dong: dto.InternetFee},
		CleaningFee:      core.Money{Dong: dto.CleaningFee},
	}, nil
}

func (c *Client) UpdateSettings(ctx context.Context, s core.Settings) error {
	payload := settingsDTO{
		ElectricityPrice: s.ElectricityPrice.Dong,
		WaterPrice:       s.WaterPrice.Dong,
		InternetFee:      s.InternetFee.Dong,
		CleaningFee:      s.CleaningFee.Dong,
	}
	if err := c.do(ctx, http.MethodPut, "/settings", nil, payload, nil); err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}

// do performs one request/response cycle. Failures are terminal; nothing
// is retried here.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call backend: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &errBody) == nil {
			if errBody.Error != "" {
				apiErr.Message = errBody.Error
			} else if errBody.Message != "" {
				apiErr.Message = errBody.Message
			}
		}
		slog.WarnContext(ctx, "Backend rejected request",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"message", apiErr.Message)
		return apiErr
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func billFromDTO(d billDTO) core.Bill {
	month, err := core.ParseMonth(d.Month)
	if err != nil {
		// Tolerate a malformed month in persisted data; the bill still
		// lists, it just sorts first.
		month = core.Month{}
	}
	return core.Bill{
		ID:                  d.ID,
		TenantID:            d.TenantID.ID,
		RoomID:              d.RoomID.ID,
		TenantName:          d.TenantID.Name,
		RoomName:            d.RoomID.Name,
		Month:               month,
		OldElectricityIndex: d.OldElectricityIndex,
		NewElectricityIndex: d.NewElectricityIndex,
		ElectricityPrice:    core.Money{Dong: d.ElectricityPrice},
		OldWaterIndex:       d.OldWaterIndex,
		NewWaterIndex:       d.NewWaterIndex,
		WaterPrice:          core.Money{Dong: d.WaterPrice},
		InternetFee:         core.Money{Dong: d.InternetFee},
		Rent:                core.Money{Dong: d.Rent},
		Total:               core.Money{Dong: d.Total},
		Status:              core.BillStatus(d.Status),
		Note:                d.Note,
	}
}

func billToPayload(b core.Bill) billPayload {
	return billPayload{
		TenantID:            b.TenantID,
		RoomID:              b.RoomID,
		Month:               b.Month.String(),
		OldElectricityIndex: b.OldElectricityIndex,
		NewElectricityIndex: b.NewElectricityIndex,
		ElectricityPrice:    b.ElectricityPrice.Dong,
		OldWaterIndex:       b.OldWaterIndex,
		NewWaterIndex:       b.NewWaterIndex,
		WaterPrice:          b.WaterPrice.Dong,
		InternetFee:         b.InternetFee.Dong,
		Rent:                b.Rent.Dong,
		Total:               b.Total.Dong,
		Status:              string(b.Status),
		Note:                b.Note,
	}
}

func roomToPayload(r core.Room) roomPayload {
	return roomPayload{
		Name:        r.Name,
		Price:       r.Price.Dong,
		Status:      string(r.Status),
		Description: r.Description,
	}
}

func tenantToPayload(t core.Tenant) tenantPayload {
	p := tenantPayload{
		Name:      t.Name,
		Phone:     t.Phone,
		IDCard:    t.IDCard,
		Email:     t.Email,
		Status:    string(t.Status),
		StartDate: t.StartDate,
		EndDate:   t.EndDate,
		Note:      t.Note,
	}
	if t.RoomID != "" {
		roomID := t.RoomID
		p.RoomID = &roomID
	}
	return p
}
