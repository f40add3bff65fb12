package model

// StockLevel is the presentation bucket of a product's stock count.
type StockLevel string

const (
	StockLevelOut StockLevel = "out_of_stock"
	StockLevelLow StockLevel = "low_stock"
	StockLevelIn  StockLevel = "in_stock"
)

// Product represents a bottle or ingredient held in a workspace's inventory.
type Product struct {
	ID              int64  `json:"id" db:"id" validate:"gt=0"`
	WorkspaceID     int64  `json:"workspaceId" db:"workspace_id"`
	CategoryID      int64  `json:"categoryId" db:"category_id" validate:"gt=0"`
	Name            string `json:"name" db:"name"`
	InStockQuantity int    `json:"inStockQuantity" db:"in_stock_quantity" validate:"gte=0"`
}

// InStock reports whether at least one unit is on hand.
func (p Product) InStock() bool {
	return p.InStockQuantity > 0
}

// StockLevel buckets the stock count: 0 is out, 1 is low, anything above is in stock.
func (p Product) StockLevel() StockLevel {
	switch {
	case p.InStockQuantity <= 0:
		return StockLevelOut
	case p.InStockQuantity == 1:
		return StockLevelLow
	default:
		return StockLevelIn
	}
}
