package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/unclebandit/customer-bootstrap/internal/model"
)

// CustomerRepositoryInterface defines methods used by services
type CustomerRepositoryInterface interface {
	SaveAll(ctx context.Context, customers []model.Customer) (int, error)
	GetByID(ctx context.Context, id string) (*model.Customer, error)
	ListByCountry(ctx context.Context, country string) ([]model.Customer, error)
}

// CustomerRepository is the concrete implementation
type CustomerRepository struct {
	DB *sql.DB
}

const upsertCustomer = `
        INSERT INTO customers (customer_id, first_name, last_name, company, city, country)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (customer_id) DO UPDATE SET
            first_name = EXCLUDED.first_name,
            last_name = EXCLUDED.last_name,
            company = EXCLUDED.company,
            city = EXCLUDED.city,
            country = EXCLUDED.country,
            imported_at = NOW()
    `

// SaveAll upserts customers in one transaction and returns how many rows
// were written. Nothing is written if any row fails.
func (r *CustomerRepository) SaveAll(ctx context.Context, customers []model.Customer) (int, error) {
	if len(customers) == 0 {
		return 0, nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertCustomer)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, c := range customers {
		if _, err := stmt.ExecContext(ctx, c.ID, c.FirstName, c.LastName, c.Company, c.City, c.Country); err != nil {
			return 0, fmt.Errorf("failed to save customer %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(customers), nil
}

// GetByID fetches a customer by ID
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	query := `
        SELECT customer_id, first_name, last_name, company, city, country
        FROM customers
        WHERE customer_id = $1
    `
	row := r.DB.QueryRowContext(ctx, query, id)

	var c model.Customer
	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Company, &c.City, &c.Country); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // not found
		}
		return nil, err
	}
	return &c, nil
}

// ListByCountry matches country the same way the ingest filter does:
// trimmed and case-insensitive. A blank country lists every customer.
func (r *CustomerRepository) ListByCountry(ctx context.Context, country string) ([]model.Customer, error) {
	query := `
        SELECT customer_id, first_name, last_name, company, city, country
        FROM customers
        WHERE TRIM($1) = '' OR LOWER(TRIM(country)) = LOWER(TRIM($1))
        ORDER BY customer_id
    `
	rows, err := r.DB.QueryContext(ctx, query, country)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []model.Customer{}
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Company, &c.City, &c.Country); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}
