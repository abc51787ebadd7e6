package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"picklist/internal"
)

var ErrNotFound = errors.New("not found")

const lastSyncKey = "orders.last_sync"

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS orders (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  store TEXT NOT NULL,
  orderNumber TEXT NOT NULL,
  isoDatetime TEXT NOT NULL,
  orderDatetime TEXT NOT NULL,
  customer TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_store ON orders(store);
CREATE INDEX IF NOT EXISTS idx_orders_isoDatetime ON orders(isoDatetime);

CREATE TABLE IF NOT EXISTS items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  orderId INTEGER NOT NULL,
  sku TEXT NOT NULL,
  description TEXT NOT NULL,
  quantity INTEGER NOT NULL CHECK (quantity > 0),
  FOREIGN KEY(orderId) REFERENCES orders(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_items_sku ON items(sku);
CREATE INDEX IF NOT EXISTS idx_items_orderId ON items(orderId);

CREATE TABLE IF NOT EXISTS notes (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  note TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS sync_runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  stores INTEGER NOT NULL,
  orders INTEGER NOT NULL,
  items INTEGER NOT NULL,
  rejected INTEGER NOT NULL,
  mismatched INTEGER NOT NULL,
  elapsedMs INTEGER NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// ReplaceOrders swaps the whole order snapshot in one transaction, so readers
// never see a half-synced pick list.
func (d *DB) ReplaceOrders(orders []internal.OrderRecord) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM items`); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM orders`); err != nil {
		return err
	}

	orderStmt, err := tx.Prepare(`
INSERT INTO orders (store, orderNumber, isoDatetime, orderDatetime, customer)
VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer orderStmt.Close()

	itemStmt, err := tx.Prepare(`INSERT INTO items (orderId, sku, description, quantity) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer itemStmt.Close()

	for _, o := range orders {
		res, err := orderStmt.Exec(o.Store, o.OrderNumber, o.ISODatetime, o.OrderDatetime, o.Customer)
		if err != nil {
			return fmt.Errorf("insert order %s/%s: %w", o.Store, o.OrderNumber, err)
		}
		orderID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		for _, item := range o.Items {
			if _, err := itemStmt.Exec(orderID, item.SKU, item.Description, item.Quantity); err != nil {
				return fmt.Errorf("insert item %s for order %s/%s: %w", item.SKU, o.Store, o.OrderNumber, err)
			}
		}
	}

	return tx.Commit()
}

// AggregateQuantities sums item quantities per normalized SKU.
func (d *DB) AggregateQuantities() ([]internal.SKUQuantity, error) {
	rows, err := d.conn.Query(`SELECT sku, SUM(quantity) FROM items GROUP BY sku ORDER BY sku`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.SKUQuantity
	for rows.Next() {
		var row internal.SKUQuantity
		if err := rows.Scan(&row.SKU, &row.Quantity); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ListStoreItems returns every item of a store's orders, newest order first.
func (d *DB) ListStoreItems(store string) ([]internal.StoreItemRow, error) {
	rows, err := d.conn.Query(`
SELECT o.orderDatetime, o.orderNumber, o.customer, i.sku, i.description, i.quantity
FROM orders o
JOIN items i ON i.orderId = o.id
WHERE o.store = ?
ORDER BY o.isoDatetime DESC, o.id ASC, i.id ASC
`, store)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.StoreItemRow
	for rows.Next() {
		var row internal.StoreItemRow
		if err := rows.Scan(&row.OrderDatetime, &row.OrderNumber, &row.Customer, &row.SKU, &row.Description, &row.Quantity); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (d *DB) CountOrders() (orders int, items int, err error) {
	err = d.conn.QueryRow(`SELECT (SELECT COUNT(*) FROM orders), (SELECT COUNT(*) FROM items)`).Scan(&orders, &items)
	return orders, items, err
}

func (d *DB) AddNote(text string) (internal.Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return internal.Note{}, errors.New("note is empty")
	}
	res, err := d.conn.Exec(`INSERT INTO notes (note) VALUES (?)`, text)
	if err != nil {
		return internal.Note{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return internal.Note{}, err
	}

	var note internal.Note
	err = d.conn.QueryRow(`SELECT id, note, createdAt FROM notes WHERE id = ?`, id).Scan(&note.ID, &note.Note, &note.CreatedAt)
	return note, err
}

func (d *DB) ListNotes() ([]internal.Note, error) {
	rows, err := d.conn.Query(`SELECT id, note, createdAt FROM notes ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.Note
	for rows.Next() {
		var note internal.Note
		if err := rows.Scan(&note.ID, &note.Note, &note.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, note)
	}
	return out, rows.Err()
}

func (d *DB) DeleteNote(id int) error {
	res, err := d.conn.Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("note %d: %w", id, ErrNotFound)
	}
	return nil
}

func (d *DB) InsertSyncRun(run internal.SyncRun) error {
	_, err := d.conn.Exec(`
INSERT INTO sync_runs (traceId, stores, orders, items, rejected, mismatched, elapsedMs)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, run.TraceID, run.Stores, run.Orders, run.Items, run.Rejected, run.Mismatch, run.ElapsedMs)
	return err
}

func (d *DB) ListSyncRuns(limit int) ([]internal.SyncRun, error) {
	rows, err := d.conn.Query(`
SELECT traceId, stores, orders, items, rejected, mismatched, elapsedMs, createdAt
FROM sync_runs ORDER BY id DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.SyncRun
	for rows.Next() {
		var run internal.SyncRun
		if err := rows.Scan(&run.TraceID, &run.Stores, &run.Orders, &run.Items, &run.Rejected, &run.Mismatch, &run.ElapsedMs, &run.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func (d *DB) SetLastSync(at time.Time) error {
	return d.SetMetadata(lastSyncKey, at.UTC().Format(time.RFC3339))
}

// LastSync returns nil when no sync has completed yet.
func (d *DB) LastSync() (*time.Time, error) {
	value, err := d.GetMetadata(lastSyncKey)
	if err != nil || value == nil {
		return nil, err
	}
	parsed, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", lastSyncKey, err)
	}
	return &parsed, nil
}
