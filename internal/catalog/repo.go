package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("product not found")

// ErrBadDiscount rejects a discounted price that is not below the list price.
var ErrBadDiscount = errors.New("discounted price must be lower than price")

type Repo struct{ DB *pgxpool.Pool }

const productCols = `id, name, description, price, discounted_price, image_url, stock, category_id, created_at, updated_at`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.DiscountedPrice,
		&p.ImageURL, &p.Stock, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *Repo) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+productCols+` FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) GetProduct(ctx context.Context, id int64) (Product, error) {
	p, err := scanProduct(r.DB.QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *Repo) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name, description FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func validateDiscount(p *Product) error {
	if p.DiscountedPrice != nil && !p.DiscountedPrice.LessThan(p.Price) {
		return ErrBadDiscount
	}
	return nil
}

func (r *Repo) CreateProduct(ctx context.Context, p *Product) error {
	if err := validateDiscount(p); err != nil {
		return err
	}
	err := r.DB.QueryRow(ctx, `
		INSERT INTO products(name, description, price, discounted_price, image_url, stock, category_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id, created_at, updated_at`,
		p.Name, p.Description, p.Price, p.DiscountedPrice, p.ImageURL, p.Stock, p.CategoryID,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *Repo) UpdateProduct(ctx context.Context, p *Product) error {
	if err := validateDiscount(p); err != nil {
		return err
	}
	ct, err := r.DB.Exec(ctx, `
		UPDATE products
		SET name=$2, description=$3, price=$4, discounted_price=$5, image_url=$6, stock=$7, category_id=$8, updated_at=now()
		WHERE id=$1`,
		p.ID, p.Name, p.Description, p.Price, p.DiscountedPrice, p.ImageURL, p.Stock, p.CategoryID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) DeleteProduct(ctx context.Context, id int64) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
