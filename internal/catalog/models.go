package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	// DiscountedPrice, when present, must be lower than Price.
	DiscountedPrice *decimal.Decimal `json:"discountedPrice,omitempty"`
	ImageURL        string           `json:"imageUrl,omitempty"`
	Stock           int              `json:"stock"`
	CategoryID      int64            `json:"categoryId"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// EffectivePrice is the unit price a buyer actually pays: the discounted
// price when one is set, the list price otherwise.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.DiscountedPrice != nil {
		return *p.DiscountedPrice
	}
	return p.Price
}
