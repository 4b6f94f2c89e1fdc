package models

import "time"

// Product is a catalog record. ID is monotonically increasing and serves
// as the universal tie-breaker when ordering on non-unique columns.
type Product struct {
	ID          int64     `json:"id" msgpack:"id"`
	Name        string    `json:"name" msgpack:"name"`
	Description *string   `json:"description" msgpack:"description"`
	Category    string    `json:"category" msgpack:"category"`
	Price       float64   `json:"price" msgpack:"price"`
	CreatedAt   time.Time `json:"created_at" msgpack:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" msgpack:"updated_at"`
}
