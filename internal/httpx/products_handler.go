package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/yashdharmal/shopline/internal/catalog"
	"github.com/yashdharmal/shopline/internal/redisx"
)

// ProductsHandler serves the browse surface and admin product management.
type ProductsHandler struct {
	Catalog *catalog.Repo
	Redis   *redis.Client
}

func (h *ProductsHandler) Register(r *chi.Mux) {
	r.Get("/products", h.listProducts)
	r.Get("/products/{id}", h.getProduct)
	r.Post("/products", h.createProduct)
	r.Put("/products/{id}", h.updateProduct)
	r.Delete("/products/{id}", h.deleteProduct)
	r.Get("/categories", h.listCategories)
}

func (h *ProductsHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if h.Redis != nil {
		if s, err := h.Redis.Get(ctx, redisx.KeyProductList).Result(); err == nil && s != "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(s))
			return
		}
	}

	ps, err := h.Catalog.ListProducts(ctx)
	if err != nil {
		respondErr(w, http.StatusInternalServerError, "Failed to fetch products", err.Error())
		return
	}

	body, _ := json.Marshal(Envelope{Success: true, Message: "Products fetched successfully", Data: ps})
	if h.Redis != nil {
		_ = h.Redis.Set(ctx, redisx.KeyProductList, body, redisx.TTLProductCache).Err()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *ProductsHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondErr(w, http.StatusBadRequest, "Failed to fetch product", "invalid product id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.Catalog.GetProduct(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		respondErr(w, http.StatusNotFound, "Product not found", "Product not found")
		return
	}
	if err != nil {
		respondErr(w, http.StatusInternalServerError, "Failed to fetch product", err.Error())
		return
	}
	respondOK(w, http.StatusOK, "Product fetched successfully", p)
}

func (h *ProductsHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	cs, err := h.Catalog.ListCategories(ctx)
	if err != nil {
		respondErr(w, http.StatusInternalServerError, "Failed to fetch categories", err.Error())
		return
	}
	respondOK(w, http.StatusOK, "Categories fetched successfully", cs)
}

func (h *ProductsHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var p catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondErr(w, http.StatusBadRequest, "Failed to create product", "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Catalog.CreateProduct(ctx, &p); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, catalog.ErrBadDiscount) {
			code = http.StatusBadRequest
		}
		respondErr(w, code, "Failed to create product", err.Error())
		return
	}
	h.invalidateList(ctx)
	respondOK(w, http.StatusCreated, "Product created successfully", p)
}

func (h *ProductsHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondErr(w, http.StatusBadRequest, "Failed to update product", "invalid product id")
		return
	}
	var p catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondErr(w, http.StatusBadRequest, "Failed to update product", "invalid json")
		return
	}
	p.ID = id

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Catalog.UpdateProduct(ctx, &p); err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			respondErr(w, http.StatusNotFound, "Product not found", "Product not found")
		case errors.Is(err, catalog.ErrBadDiscount):
			respondErr(w, http.StatusBadRequest, "Failed to update product", err.Error())
		default:
			respondErr(w, http.StatusInternalServerError, "Failed to update product", err.Error())
		}
		return
	}
	h.invalidateList(ctx)
	respondOK(w, http.StatusOK, "Product updated successfully", p)
}

func (h *ProductsHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondErr(w, http.StatusBadRequest, "Failed to delete product", "invalid product id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Catalog.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondErr(w, http.StatusNotFound, "Product not found", "Product not found")
			return
		}
		respondErr(w, http.StatusInternalServerError, "Failed to delete product", err.Error())
		return
	}
	h.invalidateList(ctx)
	respondOK(w, http.StatusOK, "Product deleted successfully", nil)
}

func (h *ProductsHandler) invalidateList(ctx context.Context) {
	if h.Redis != nil {
		_ = h.Redis.Del(ctx, redisx.KeyProductList).Err()
	}
}
