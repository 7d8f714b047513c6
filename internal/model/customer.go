// internal/model/customer.go
package model

// Customer is one qualifying data row of a customer CSV file.
type Customer struct {
	ID        string `db:"customer_id" json:"id"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Company   string `db:"company" json:"company"`
	City      string `db:"city" json:"city"`
	Country   string `db:"country" json:"country"`
}
