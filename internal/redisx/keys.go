package redisx

import "time"

const (
	// Cached GET /orders/{id} body: order:{order_id}
	KeyOrder = "order:%s"

	// Cached GET /products body (whole listing).
	KeyProductList = "products:all"

	// Dedup for event consumers: dedup:{consumer}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLOrderCache   = 5 * time.Minute
	TTLProductCache = 1 * time.Minute
	TTLDedup        = 48 * time.Hour
)
