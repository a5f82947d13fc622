package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/yashdharmal/shopline/internal/catalog"
	"github.com/yashdharmal/shopline/internal/config"
	"github.com/yashdharmal/shopline/internal/httpx"
	kafkax "github.com/yashdharmal/shopline/internal/kafka"
	"github.com/yashdharmal/shopline/internal/orders"
	"github.com/yashdharmal/shopline/internal/postgres"
	"github.com/yashdharmal/shopline/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	placed := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderPlaced, 1024)
	placed.Start(ctx)
	status := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicStatusChanged, 1024)
	status.Start(ctx)

	router := httpx.NewRouter()
	oh := &httpx.OrdersHandler{
		Store:          &orders.Repo{DB: db},
		PlacedProducer: placed,
		StatusProducer: status,
		Redis:          rdb,
		Service:        cfg.ServiceName,
	}
	oh.Register(router)
	ph := &httpx.ProductsHandler{
		Catalog: &catalog.Repo{DB: db},
		Redis:   rdb,
	}
	ph.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)

	placed.Close()
	status.Close()
	placed.WaitClosed()
	status.WaitClosed()
}
