// Seeds the storefront database: schema, the category list, and a starter
// product set.
package main

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/yashdharmal/shopline/internal/config"
	"github.com/yashdharmal/shopline/internal/money"
	"github.com/yashdharmal/shopline/internal/postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS categories (
	id          BIGSERIAL PRIMARY KEY,
	name        TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS products (
	id               BIGSERIAL PRIMARY KEY,
	name             TEXT NOT NULL,
	description      TEXT NOT NULL DEFAULT '',
	price            NUMERIC(10,2) NOT NULL,
	discounted_price NUMERIC(10,2),
	image_url        TEXT NOT NULL DEFAULT '',
	stock            INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
	category_id      BIGINT NOT NULL REFERENCES categories(id),
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	CHECK (discounted_price IS NULL OR discounted_price < price)
);

CREATE TABLE IF NOT EXISTS orders (
	id               UUID PRIMARY KEY,
	customer_name    TEXT NOT NULL,
	customer_email   TEXT NOT NULL,
	customer_address TEXT NOT NULL,
	total_amount     NUMERIC(10,2) NOT NULL,
	status           TEXT NOT NULL DEFAULT 'pending',
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS order_items (
	id         BIGSERIAL PRIMARY KEY,
	order_id   UUID NOT NULL REFERENCES orders(id),
	product_id BIGINT NOT NULL REFERENCES products(id),
	quantity   INTEGER NOT NULL CHECK (quantity >= 1),
	price      NUMERIC(10,2) NOT NULL
);
`

type seedCategory struct {
	name, description string
}

type seedProduct struct {
	name, description string
	price             decimal.Decimal
	discounted        *decimal.Decimal
	imageURL          string
	stock             int
	category          string
}

func disc(f float64) *decimal.Decimal {
	d := money.FromFloat(f)
	return &d
}

var categories = []seedCategory{
	{"Electronics", "Electronic devices, gadgets, smartphones, laptops, and tech accessories"},
	{"Fashion & Apparel", "Clothing, shoes, accessories, and fashion items for men and women"},
	{"Home & Kitchen", "Home appliances, kitchen essentials, furniture, and home décor items"},
	{"Sports & Fitness", "Sports equipment, fitness gear, outdoor activities, and wellness products"},
	{"Books & Education", "Books, educational materials, stationery, and learning resources"},
}

var products = []seedProduct{
	{"Wireless Bluetooth Headphones", "High-quality wireless headphones with noise cancellation and 30-hour battery life",
		money.FromFloat(149.99), nil, "https://images.pexels.com/photos/3394656/pexels-photo-3394656.jpeg", 25, "Electronics"},
	{"Smart Watch Series X", "Feature-rich smartwatch with health monitoring, GPS, and 7-day battery life",
		money.FromFloat(299.99), disc(249.99), "https://images.pexels.com/photos/267394/pexels-photo-267394.jpeg", 15, "Electronics"},
	{"Professional Coffee Maker", "Premium programmable coffee maker with built-in grinder and thermal carafe",
		money.FromFloat(189.99), nil, "https://images.pexels.com/photos/5591667/pexels-photo-5591667.jpeg", 12, "Home & Kitchen"},
	{"Stainless Steel Cookware Set", "10-piece professional stainless steel cookware set with non-stick coating",
		money.FromFloat(249.99), disc(199.99), "https://images.pexels.com/photos/5379918/pexels-photo-5379918.jpeg", 8, "Home & Kitchen"},
	{"Running Shoes Pro", "Professional running shoes with advanced cushioning and breathable material",
		money.FromFloat(129.99), nil, "https://images.pexels.com/photos/2529148/pexels-photo-2529148.jpeg", 30, "Sports & Fitness"},
	{"Yoga Mat Premium", "Non-slip exercise mat with carrying strap, ideal for yoga and home workouts",
		money.FromFloat(49.99), disc(39.99), "https://images.pexels.com/photos/4056535/pexels-photo-4056535.jpeg", 40, "Sports & Fitness"},
	{"Classic Denim Jacket", "Timeless denim jacket with a relaxed fit, available in all sizes",
		money.FromFloat(89.99), nil, "https://images.pexels.com/photos/1124468/pexels-photo-1124468.jpeg", 20, "Fashion & Apparel"},
	{"The Art of Programming", "A practical guide to writing clear, maintainable software",
		money.FromFloat(44.99), disc(34.99), "https://images.pexels.com/photos/159711/books-bookstore-book-reading-159711.jpeg", 50, "Books & Education"},
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(ctx, schema); err != nil {
		log.Fatalf("schema: %v", err)
	}
	log.Println("schema ready")

	catIDs, err := seedCategories(ctx, db)
	if err != nil {
		log.Fatalf("seed categories: %v", err)
	}
	if err := seedProducts(ctx, db, catIDs); err != nil {
		log.Fatalf("seed products: %v", err)
	}
	log.Printf("seeded %d categories, %d products", len(categories), len(products))
}

func seedCategories(ctx context.Context, db *pgxpool.Pool) (map[string]int64, error) {
	ids := make(map[string]int64, len(categories))
	for _, c := range categories {
		var id int64
		err := db.QueryRow(ctx, `
			INSERT INTO categories(name, description) VALUES ($1,$2)
			ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description
			RETURNING id`, c.name, c.description).Scan(&id)
		if err != nil {
			return nil, err
		}
		ids[c.name] = id
	}
	return ids, nil
}

func seedProducts(ctx context.Context, db *pgxpool.Pool, catIDs map[string]int64) error {
	for _, p := range products {
		var n int
		if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE name=$1`, p.name).Scan(&n); err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		_, err := db.Exec(ctx, `
			INSERT INTO products(name, description, price, discounted_price, image_url, stock, category_id)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			p.name, p.description, p.price, p.discounted, p.imageURL, p.stock, catIDs[p.category])
		if err != nil {
			return err
		}
	}
	return nil
}
