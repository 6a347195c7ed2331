package stocksrepo

import "time"

// Stock is a listed company, the parent of financial statements and
// clustering results.
type Stock struct {
	ID           int64     `db:"id"`
	StockCode    string    `db:"stock_code"`
	StockName    string    `db:"stock_name"`
	Market       string    `db:"market"`
	Sector       string    `db:"sector"`
	CurrentPrice *float64  `db:"current_price"`
	MarketCap    *int64    `db:"market_cap"`
	PER          *float64  `db:"per"`
	PBR          *float64  `db:"pbr"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// CreateStock contains fields for creating a new stock.
type CreateStock struct {
	StockCode    string
	StockName    string
	Market       string
	Sector       string
	CurrentPrice *float64
	MarketCap    *int64
	PER          *float64
	PBR          *float64
}

// UpdateStock contains fields for updating an existing stock.
// All fields are optional to support partial updates.
type UpdateStock struct {
	StockCode    *string
	StockName    *string
	Market       *string
	Sector       *string
	CurrentPrice *float64
	MarketCap    *int64
	PER          *float64
	PBR          *float64
}
