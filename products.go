package shopkeeper

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item document.
type Product struct {
	ID          ProductID       `json:"id"`
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	Description string          `json:"desc"`
	Color       string          `json:"color"`
	Length      decimal.Decimal `json:"length"`
	Breadth     decimal.Decimal `json:"width"`
	Height      decimal.Decimal `json:"height"`
	Price       decimal.Decimal `json:"price"`
	SKU         string          `json:"sku"`
	Archived    bool            `json:"archived"`
	Featured    bool            `json:"featured"`
	CategoryID  CategoryID      `json:"productCategory"`
	Images      []UploadedFile  `json:"imgurl"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// InventoryEntry is the stock side-record written alongside a new product.
type InventoryEntry struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}
