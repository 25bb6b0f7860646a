package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Veraticus/retail-sales/internal/model"
)

const recordColumns = `id, customer_id, customer_name, phone_number, gender, age,
	customer_region, customer_type, product_id, product_name, brand,
	product_category, tag, quantity, price_per_unit, discount_percentage,
	total_amount, final_amount, date, payment_method, order_status,
	delivery_type, store_id, store_location, salesperson_id, employee_name`

// SaveRecords inserts records in one transaction. Records whose ID already
// exists are skipped.
func (s *SQLiteStorage) SaveRecords(ctx context.Context, records []model.SalesRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecords(records); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO sales_records (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range records {
		_, err = stmt.ExecContext(ctx,
			r.ID,
			r.CustomerID,
			r.CustomerName,
			r.PhoneNumber,
			r.Gender,
			r.Age,
			r.CustomerRegion,
			r.CustomerType,
			r.ProductID,
			r.ProductName,
			r.Brand,
			r.ProductCategory,
			r.Tag,
			r.Quantity,
			r.PricePerUnit,
			r.DiscountPercentage,
			r.TotalAmount,
			r.FinalAmount,
			r.DateString(),
			r.PaymentMethod,
			r.OrderStatus,
			r.DeliveryType,
			r.StoreID,
			r.StoreLocation,
			r.SalespersonID,
			r.EmployeeName,
		)
		if err != nil {
			return fmt.Errorf("failed to insert record %s: %w", r.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit records: %w", err)
	}
	return nil
}

// Records returns every stored record in insertion order.
func (s *SQLiteStorage) Records(ctx context.Context) ([]model.SalesRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT `+recordColumns+` FROM sales_records ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.SalesRecord
	for rows.Next() {
		r, scanErr := scanRecord(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}

	return records, nil
}

// CountRecords returns the number of stored records.
func (s *SQLiteStorage) CountRecords(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sales_records`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

// DeleteAllRecords removes every stored record.
func (s *SQLiteStorage) DeleteAllRecords(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM sales_records`); err != nil {
		return fmt.Errorf("failed to delete records: %w", err)
	}
	return nil
}

func scanRecord(rows *sql.Rows) (model.SalesRecord, error) {
	var (
		r    model.SalesRecord
		date string
	)
	err := rows.Scan(
		&r.ID,
		&r.CustomerID,
		&r.CustomerName,
		&r.PhoneNumber,
		&r.Gender,
		&r.Age,
		&r.CustomerRegion,
		&r.CustomerType,
		&r.ProductID,
		&r.ProductName,
		&r.Brand,
		&r.ProductCategory,
		&r.Tag,
		&r.Quantity,
		&r.PricePerUnit,
		&r.DiscountPercentage,
		&r.TotalAmount,
		&r.FinalAmount,
		&date,
		&r.PaymentMethod,
		&r.OrderStatus,
		&r.DeliveryType,
		&r.StoreID,
		&r.StoreLocation,
		&r.SalespersonID,
		&r.EmployeeName,
	)
	if err != nil {
		return model.SalesRecord{}, fmt.Errorf("failed to scan record: %w", err)
	}

	r.Date, err = model.ParseDate(date)
	if err != nil {
		return model.SalesRecord{}, fmt.Errorf("%w: record %s has bad date %q", ErrInvalidRecord, r.ID, date)
	}
	return r, nil
}
