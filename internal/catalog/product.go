// Package catalog defines the product entity and CSV ingestion.
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a single catalog record. It is constructed once by ingestion
// and read-only thereafter.
type Product struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	SubCategory       string          `json:"sub_category"`
	Brand             string          `json:"brand"`
	Price             decimal.Decimal `json:"price"`
	Cost              decimal.Decimal `json:"cost"`
	StockQuantity     int             `json:"stock_quantity"`
	WarehouseLocation string          `json:"warehouse_location"`
	Supplier          string          `json:"supplier"`
	LastRestockDate   time.Time       `json:"last_restock_date"`
	SalesCount        int             `json:"sales_count"`
	Rating            float64         `json:"rating"`
	ReviewCount       int             `json:"review_count"`
	Tags              []string        `json:"tags"`
	IsActive          bool            `json:"is_active"`
	Discount          float64         `json:"discount"`
	Weight            float64         `json:"weight"`
	Dimensions        string          `json:"dimensions"`
}

// Margin returns price minus cost per unit. Negative when the product
// sells at a loss.
func (p Product) Margin() decimal.Decimal {
	return p.Price.Sub(p.Cost)
}

// IsOutOfStock reports whether the product has no units on hand.
func (p Product) IsOutOfStock() bool {
	return p.StockQuantity == 0
}

// HasSales reports whether the product has any recorded sales.
func (p Product) HasSales() bool {
	return p.SalesCount > 0
}
