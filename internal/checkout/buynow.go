package checkout

import "github.com/yashdharmal/shopline/internal/catalog"

// BuyNow is the single-product fast path. At most one product occupies the
// slot, always with quantity 1, and the cart is never touched by it.
type BuyNow struct {
	Active  bool
	Product *catalog.Product
}

func NewBuyNow() *BuyNow { return &BuyNow{} }

func (b *BuyNow) Set(p catalog.Product) {
	b.Active = true
	b.Product = &p
}

func (b *BuyNow) Clear() {
	b.Active = false
	b.Product = nil
}
