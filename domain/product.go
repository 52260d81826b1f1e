package domain

import "time"

type Product struct {
	ID        string  `json:"id"`
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Supplier  string  `json:"supplier"`
	CostPrice float64 `json:"cost_price"`
	SalePrice float64 `json:"sale_price"`
}

// ProductFilter selects the products a bulk adjustment touches. Empty fields match everything.
type ProductFilter struct {
	IDs      []string `json:"ids,omitempty"`
	Category string   `json:"category,omitempty"`
	Supplier string   `json:"supplier,omitempty"`
	Search   string   `json:"search,omitempty"`
}

type AdjustmentMode string

const (
	IncreasePercent AdjustmentMode = "increase_percent"
	DecreasePercent AdjustmentMode = "decrease_percent"
	IncreaseAmount  AdjustmentMode = "increase_amount"
	DecreaseAmount  AdjustmentMode = "decrease_amount"
)

func (m AdjustmentMode) Valid() bool {
	switch m {
	case IncreasePercent, DecreasePercent, IncreaseAmount, DecreaseAmount:
		return true
	}
	return false
}

type AdjustmentRequest struct {
	Mode        AdjustmentMode `json:"mode"`
	Magnitude   string         `json:"magnitude"` // as typed in the field, e.g. "10" or "1.250,00"
	ApplyToCost bool           `json:"apply_to_cost"`
	ApplyToSale bool           `json:"apply_to_sale"`
	Filter      ProductFilter  `json:"filter"`
	DryRun      bool           `json:"dry_run"`
}

// PriceUpdate is what gets persisted: both prices already rounded to cents.
type PriceUpdate struct {
	ProductID string
	CostPrice float64
	SalePrice float64
}

type PriceChange struct {
	ProductID    string  `json:"product_id"`
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	OldCostPrice float64 `json:"old_cost_price"`
	NewCostPrice float64 `json:"new_cost_price"`
	OldSalePrice float64 `json:"old_sale_price"`
	NewSalePrice float64 `json:"new_sale_price"`
}

type AdjustmentBatch struct {
	ID        string         `json:"id"`
	Mode      AdjustmentMode `json:"mode"`
	Magnitude float64        `json:"magnitude"`
	DryRun    bool           `json:"dry_run"`
	CreatedAt time.Time      `json:"created_at"`
	Changes   []PriceChange  `json:"changes"`
}
