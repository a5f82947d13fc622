// Package checkout holds the client-resident half of order placement: the
// cart, the buy-now slot, the selection reconciler and the submission state
// machine. State lives in explicitly constructed values; nothing here is a
// package-level singleton.
package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/yashdharmal/shopline/internal/catalog"
)

// CartItem is one cart line. UnitPrice is snapshotted from the product's
// effective price when the line is created and reused for every later
// quantity change.
type CartItem struct {
	Product   catalog.Product
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// Cart keeps running totals incrementally on every mutation. Invariant after
// each mutation: TotalAmount == sum of line totals and TotalQuantity == sum
// of quantities.
type Cart struct {
	Items         []CartItem
	TotalQuantity int
	TotalAmount   decimal.Decimal
}

func NewCart() *Cart {
	return &Cart{TotalAmount: decimal.Zero}
}

func (c *Cart) find(productID int64) *CartItem {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// Add puts one unit of the product in the cart, extending an existing line
// when there is one.
func (c *Cart) Add(p catalog.Product) {
	price := p.EffectivePrice()
	if it := c.find(p.ID); it != nil {
		it.Quantity++
		it.LineTotal = it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		c.TotalQuantity++
		c.TotalAmount = c.TotalAmount.Add(it.UnitPrice)
		return
	}
	c.Items = append(c.Items, CartItem{
		Product:   p,
		Quantity:  1,
		UnitPrice: price,
		LineTotal: price,
	})
	c.TotalQuantity++
	c.TotalAmount = c.TotalAmount.Add(price)
}

// Remove drops the whole line for a product.
func (c *Cart) Remove(productID int64) {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			c.TotalQuantity -= c.Items[i].Quantity
			c.TotalAmount = c.TotalAmount.Sub(c.Items[i].LineTotal)
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets a line to an exact quantity. Quantities below one and
// unknown products are ignored.
func (c *Cart) UpdateQuantity(productID int64, quantity int) {
	it := c.find(productID)
	if it == nil || quantity < 1 {
		return
	}
	diff := quantity - it.Quantity
	it.Quantity = quantity
	it.LineTotal = it.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	c.TotalQuantity += diff
	c.TotalAmount = c.TotalAmount.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(diff))))
}

func (c *Cart) Clear() {
	c.Items = nil
	c.TotalQuantity = 0
	c.TotalAmount = decimal.Zero
}

func (c *Cart) Empty() bool { return len(c.Items) == 0 }
