package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/yashdharmal/shopline/internal/catalog"
)

// Repo persists orders in Postgres. Placement runs as a single transaction:
// the order row, its items, and every stock decrement commit together or not
// at all.
type Repo struct{ DB *pgxpool.Pool }

var _ Store = (*Repo)(nil)

const fkViolation = "23503"

func (r *Repo) PlaceOrder(ctx context.Context, customer CustomerDetails, items []ItemInput) (*PlacedOrder, error) {
	if err := ValidateRequest(customer, items); err != nil {
		return nil, err
	}
	total := TotalAmount(items)

	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	o := Order{
		ID:              uuid.NewString(),
		CustomerName:    customer.Name,
		CustomerEmail:   customer.Email,
		CustomerAddress: customer.Address,
		TotalAmount:     total,
		Status:          StatusPending,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO orders(id, customer_name, customer_email, customer_address, total_amount, status)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at, updated_at`,
		o.ID, o.CustomerName, o.CustomerEmail, o.CustomerAddress, o.TotalAmount, o.Status,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	out := make([]OrderItem, 0, len(items))
	for _, it := range items {
		item := OrderItem{
			OrderID:   o.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		}
		err = tx.QueryRow(ctx, `
			INSERT INTO order_items(order_id, product_id, quantity, price)
			VALUES ($1,$2,$3,$4)
			RETURNING id`,
			item.OrderID, item.ProductID, item.Quantity, item.Price,
		).Scan(&item.ID)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == fkViolation {
				return nil, validationf("product not found: %d", it.ProductID)
			}
			return nil, fmt.Errorf("insert order item: %w", err)
		}

		// The conditional decrement is the stock authority: no prior read,
		// no window for two requests to both pass a stock check.
		ct, err := tx.Exec(ctx,
			`UPDATE products SET stock = stock - $2 WHERE id = $1 AND stock >= $2`,
			it.ProductID, it.Quantity)
		if err != nil {
			return nil, fmt.Errorf("reserve stock: %w", err)
		}
		if ct.RowsAffected() == 0 {
			return nil, fmt.Errorf("product %d: %w", it.ProductID, ErrInsufficientStock)
		}
		out = append(out, item)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &PlacedOrder{Order: o, Items: out}, nil
}

func (r *Repo) GetOrder(ctx context.Context, id string) (*PlacedOrder, error) {
	var o Order
	err := r.DB.QueryRow(ctx, `
		SELECT id, customer_name, customer_email, customer_address, total_amount, status, created_at, updated_at
		FROM orders WHERE id=$1`, id,
	).Scan(&o.ID, &o.CustomerName, &o.CustomerEmail, &o.CustomerAddress,
		&o.TotalAmount, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.itemsForOrder(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	return &PlacedOrder{Order: o, Items: items}, nil
}

func (r *Repo) ListOrders(ctx context.Context) ([]PlacedOrder, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, customer_name, customer_email, customer_address, total_amount, status, created_at, updated_at
		FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PlacedOrder
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.CustomerName, &o.CustomerEmail, &o.CustomerAddress,
			&o.TotalAmount, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, PlacedOrder{Order: o})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		items, err := r.itemsForOrder(ctx, out[i].Order.ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func (r *Repo) itemsForOrder(ctx context.Context, orderID string) ([]OrderItem, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price,
		       p.id, p.name, p.description, p.price, p.discounted_price,
		       p.image_url, p.stock, p.category_id, p.created_at, p.updated_at
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var (
			it    OrderItem
			pID   *int64
			pName *string
			pDesc *string
			pPrc  *decimal.Decimal
			pDis  *decimal.Decimal
			pImg  *string
			pStk  *int
			pCat  *int64
			pCr   *time.Time
			pUp   *time.Time
		)
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price,
			&pID, &pName, &pDesc, &pPrc, &pDis, &pImg, &pStk, &pCat, &pCr, &pUp); err != nil {
			return nil, err
		}
		// LEFT JOIN: the product row may be gone; keep the snapshot anyway.
		if pID != nil {
			it.Product = &catalog.Product{
				ID:              *pID,
				Name:            *pName,
				Description:     *pDesc,
				Price:           *pPrc,
				DiscountedPrice: pDis,
				ImageURL:        *pImg,
				Stock:           *pStk,
				CategoryID:      *pCat,
				CreatedAt:       *pCr,
				UpdatedAt:       *pUp,
			}
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *Repo) UpdateStatus(ctx context.Context, id string, to Status) (*Order, error) {
	if !to.Valid() {
		return nil, validationf("invalid status: %s", to)
	}

	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var cur Status
	err = tx.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1 FOR UPDATE`, id).Scan(&cur)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !CanTransition(cur, to) {
		return nil, fmt.Errorf("%s -> %s: %w", cur, to, ErrInvalidStatusTransition)
	}

	if to == StatusCancelled {
		// Return reserved stock to the shelf.
		if _, err := tx.Exec(ctx, `
			UPDATE products p SET stock = p.stock + oi.quantity
			FROM order_items oi
			WHERE oi.order_id = $1 AND p.id = oi.product_id`, id); err != nil {
			return nil, fmt.Errorf("restock: %w", err)
		}
	}

	var o Order
	err = tx.QueryRow(ctx, `
		UPDATE orders SET status=$2, updated_at=now() WHERE id=$1
		RETURNING id, customer_name, customer_email, customer_address, total_amount, status, created_at, updated_at`,
		id, to,
	).Scan(&o.ID, &o.CustomerName, &o.CustomerEmail, &o.CustomerAddress,
		&o.TotalAmount, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &o, nil
}
