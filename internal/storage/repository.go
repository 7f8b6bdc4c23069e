package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"txdash/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository is the persistent record store backend.
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

// TransactionsByMonth implements store.Reader. The sale_month column is
// precomputed at insert time so month lookups across years stay a plain
// indexed equality.
func (r *SQLiteRepository) TransactionsByMonth(ctx context.Context, month int) ([]core.Transaction, error) {
	query := `SELECT record_id, title, description, price, category, image, sold, date_of_sale
	          FROM transactions`
	args := []any{}
	if month != core.MonthAny {
		query += ` WHERE sale_month = ?`
		args = append(args, month)
	}
	query += ` ORDER BY seq`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions by month: %w", err)
	}
	defer rows.Close()

	var records []core.Transaction
	for rows.Next() {
		var (
			t        core.Transaction
			sold     int64
			saleDate string
		)
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Price, &t.Category, &t.Image, &sold, &saleDate); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Sold = sold != 0
		t.DateOfSale, err = time.Parse(time.RFC3339, saleDate)
		if err != nil {
			return nil, fmt.Errorf("parse date_of_sale %q: %w", saleDate, err)
		}
		records = append(records, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return records, nil
}

// Count implements store.Reader.
func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}

// ReplaceAll implements store.Replacer. The delete and all inserts run in
// a single transaction, so a concurrent reader sees the old set or the
// new one but never a partially loaded mixture.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, records []core.Transaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("delete existing records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO transactions
		(record_id, title, description, price, category, image, sold, date_of_sale, sale_month)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range records {
		sold := 0
		if t.Sold {
			sold = 1
		}
		_, err := stmt.ExecContext(ctx,
			t.ID, t.Title, t.Description, t.Price, t.Category, t.Image,
			sold, t.DateOfSale.Format(time.RFC3339Nano), int(t.DateOfSale.Month()))
		if err != nil {
			return fmt.Errorf("insert record %d: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace transaction: %w", err)
	}

	slog.InfoContext(ctx, "Record set replaced", "count", len(records))
	return nil
}
