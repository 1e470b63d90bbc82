// Package storage persists rooms, tenants, bills and settings in SQLite.
// Schema changes ship as embedded migrations run on startup.
package storage

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"nhatro/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// newID returns a 24-hex-char identifier, the same shape the remote
// backend hands out, so records stay addressable when operators move
// between backends.
func newID() string {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("read random id: %v", err))
	}
	return hex.EncodeToString(buf)
}

const billColumns = `b.id, b.tenant_id, b.room_id, b.month,
	b.old_electricity_index, b.new_electricity_index, b.electricity_price,
	b.old_water_index, b.new_water_index, b.water_price,
	b.internet_fee, b.rent, b.total, b.status, b.note,
	COALESCE(t.name, ''), COALESCE(ro.name, '')`

const billJoins = `FROM bills b
	LEFT JOIN tenants t ON t.id = b.tenant_id
	LEFT JOIN rooms ro ON ro.id = b.room_id`

func scanBill(row interface{ Scan(...any) error }) (core.Bill, error) {
	var b core.Bill
	var month string
	err := row.Scan(&b.ID, &b.TenantID, &b.RoomID, &month,
		&b.OldElectricityIndex, &b.NewElectricityIndex, &b.ElectricityPrice.Dong,
		&b.OldWaterIndex, &b.NewWaterIndex, &b.WaterPrice.Dong,
		&b.InternetFee.Dong, &b.Rent.Dong, &b.Total.Dong, &b.Status, &b.Note,
		&b.TenantName, &b.RoomName)
	if err != nil {
		return core.Bill{}, err
	}
	if m, err := core.ParseMonth(month); err == nil {
		b.Month = m
	}
	return b, nil
}

func (r *SQLiteRepository) ListBills(ctx context.Context) ([]core.Bill, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+billColumns+` `+billJoins+` ORDER BY b.month DESC, b.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()

	var bills []core.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

func (r *SQLiteRepository) GetBill(ctx context.Context, id string) (core.Bill, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+billColumns+` `+billJoins+` WHERE b.id = ?`, id)
	b, err := scanBill(row)
	if err == sql.ErrNoRows {
		return core.Bill{}, fmt.Errorf("bill %s not found", id)
	}
	if err != nil {
		return core.Bill{}, fmt.Errorf("get bill: %w", err)
	}
	return b, nil
}

func (r *SQLiteRepository) CreateBill(ctx context.Context, b core.Bill) (string, error) {
	if err := b.Validate(); err != nil {
		return "", err
	}
	id := newID()
	_, err := r.db.ExecContext(ctx, `INSERT INTO bills
		(id, tenant_id, room_id, month,
		 old_electricity_index, new_electricity_index, electricity_price,
		 old_water_index, new_water_index, water_price,
		 internet_fee, rent, total, status, note)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, b.TenantID, b.RoomID, b.Month.String(),
		b.OldElectricityIndex, b.NewElectricityIndex, b.ElectricityPrice.Dong,
		b.OldWaterIndex, b.NewWaterIndex, b.WaterPrice.Dong,
		b.InternetFee.Dong, b.Rent.Dong, b.Total.Dong, string(b.Status), b.Note)
	if err != nil {
		return "", fmt.Errorf("create bill: %w", err)
	}

	slog.InfoContext(ctx, "Bill saved to SQLite",
		"id", id,
		"month", b.Month.String(),
		"total_dong", b.Total.Dong)
	return id, nil
}

func (r *SQLiteRepository) UpdateBill(ctx context.Context, id string, b core.Bill) error {
	if err := b.Validate(); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `UPDATE bills SET
		tenant_id = ?, room_id = ?, month = ?,
		old_electricity_index = ?, new_electricity_index = ?, electricity_price = ?,
		old_water_index = ?, new_water_index = ?, water_price = ?,
		internet_fee = ?, rent = ?, total = ?, status = ?, note = ?
		WHERE id = ?`,
		b.TenantID, b.RoomID, b.Month.String(),
		b.OldElectricityIndex, b.NewElectricityIndex, b.ElectricityPrice.Dong,
		b.OldWaterIndex, b.NewWaterIndex, b.WaterPrice.Dong,
		b.InternetFee.Dong, b.Rent.Dong, b.Total.Dong, string(b.Status), b.Note, id)
	if err != nil {
		return fmt.Errorf("update bill: %w", err)
	}
	return requireRow(res, "bill", id)
}

func (r *SQLiteRepository) DeleteBill(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bills WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete bill: %w", err)
	}
	return requireRow(res, "bill", id)
}

func (r *SQLiteRepository) ListRooms(ctx context.Context) ([]core.Room, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, price, status, description FROM rooms ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []core.Room
	for rows.Next() {
		var room core.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Price.Dong, &room.Status, &room.Description); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *SQLiteRepository) CreateRoom(ctx context.Context, room core.Room) (string, error) {
	if err := room.Validate(); err != nil {
		return "", err
	}
	id := newID()
	_, err := r.db.ExecContext(ctx, `INSERT INTO rooms (id, name, price, status, description) VALUES (?, ?, ?, ?, ?)`,
		id, room.Name, room.Price.Dong, string(room.Status), room.Description)
	if err != nil {
		return "", fmt.Errorf("create room: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) UpdateRoom(ctx context.Context, id string, room core.Room) error {
	if err := room.Validate(); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `UPDATE rooms SET name = ?, price = ?, status = ?, description = ? WHERE id = ?`,
		room.Name, room.Price.Dong, string(room.Status), room.Description, id)
	if err != nil {
		return fmt.Errorf("update room: %w", err)
	}
	return requireRow(res, "room", id)
}

func (r *SQLiteRepository) DeleteRoom(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	return requireRow(res, "room", id)
}

func (r *SQLiteRepository) ListTenants(ctx context.Context) ([]core.Tenant, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, phone, id_card, email, room_id, status, start_date, end_date, note FROM tenants ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []core.Tenant
	for rows.Next() {
		var t core.Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.Phone, &t.IDCard, &t.Email, &t.RoomID, &t.Status, &t.StartDate, &t.EndDate, &t.Note); err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

func (r *SQLiteRepository) CreateTenant(ctx context.Context, t core.Tenant) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	id := newID()
	_, err := r.db.ExecContext(ctx, `INSERT INTO tenants (id, name, phone, id_card, email, room_id, status, start_date, end_date, note)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, t.Name, t.Phone, t.IDCard, t.Email, t.RoomID, string(t.Status), t.StartDate, t.EndDate, t.Note)
	if err != nil {
		return "", fmt.Errorf("create tenant: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) UpdateTenant(ctx context.Context, id string, t core.Tenant) error {
	if err := t.Validate(); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `UPDATE tenants SET name = ?, phone = ?, id_card = ?, email = ?, room_id = ?, status = ?, start_date = ?, end_date = ?, note = ? WHERE id = ?`,
		t.Name, t.Phone, t.IDCard, t.Email, t.RoomID, string(t.Status), t.StartDate, t.EndDate, t.Note, id)
	if err != nil {
		return fmt.Errorf("update tenant: %w", err)
	}
	return requireRow(res, "tenant", id)
}

func (r *SQLiteRepository) DeleteTenant(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tenants WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete tenant: %w", err)
	}
	return requireRow(res, "tenant", id)
}

// GetSettings always finds the row seeded by the initial migration.
func (r *SQLiteRepository) GetSettings(ctx context.Context) (*core.Settings, error) {
	var s core.Settings
	err := r.db.QueryRowContext(ctx, `SELECT electricity_price, water_price, internet_fee, cleaning_fee FROM settings WHERE id = 1`).
		Scan(&s.ElectricityPrice.Dong, &s.WaterPrice.Dong, &s.InternetFee.Dong, &s.CleaningFee.Dong)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

func (r *SQLiteRepository) UpdateSettings(ctx context.Context, s core.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO settings (id, electricity_price, water_price, internet_fee, cleaning_fee)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			electricity_price = excluded.electricity_price,
			water_price = excluded.water_price,
			internet_fee = excluded.internet_fee,
			cleaning_fee = excluded.cleaning_fee`,
		s.ElectricityPrice.Dong, s.WaterPrice.Dong, s.InternetFee.Dong, s.CleaningFee.Dong)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}

func requireRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s not found", kind, id)
	}
	return nil
}
