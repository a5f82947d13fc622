package checkout

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/yashdharmal/shopline/internal/orders"
)

// ErrNothingToCheckOut means checkout was entered with an empty cart and no
// buy-now product; the caller should leave checkout instead of submitting.
var ErrNothingToCheckOut = errors.New("nothing to check out")

// Selection is the item set one checkout attempt operates on. Exactly one
// source is active: the buy-now slot when it holds a product, the cart
// otherwise.
type Selection struct {
	Items    []orders.ItemInput
	Subtotal decimal.Decimal

	clear func()
}

// ClearOnSuccess clears the source that was active when the selection was
// taken: the buy-now slot, or the whole cart. Never both.
func (s *Selection) ClearOnSuccess() { s.clear() }

// ActiveSelection reconciles the two sources of truth for a checkout
// attempt. Buy-now takes exclusive precedence and leaves the cart untouched.
func ActiveSelection(cart *Cart, buy *BuyNow) (*Selection, error) {
	if buy.Active && buy.Product != nil {
		p := *buy.Product
		price := p.EffectivePrice()
		return &Selection{
			Items:    []orders.ItemInput{{ProductID: p.ID, Quantity: 1, Price: price}},
			Subtotal: price,
			clear:    buy.Clear,
		}, nil
	}
	if cart.Empty() {
		return nil, ErrNothingToCheckOut
	}
	items := make([]orders.ItemInput, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, orders.ItemInput{
			ProductID: it.Product.ID,
			Quantity:  it.Quantity,
			Price:     it.UnitPrice,
		})
	}
	return &Selection{
		Items:    items,
		Subtotal: cart.TotalAmount,
		clear:    cart.Clear,
	}, nil
}
