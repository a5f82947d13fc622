package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/yashdharmal/shopline/internal/config"
	"github.com/yashdharmal/shopline/internal/fulfillment"
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
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	status := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicStatusChanged, 1024)
	status.Start(ctx)

	svc := &fulfillment.Service{
		Store:          &orders.Repo{DB: db},
		Redis:          rdb,
		StatusProducer: status,
		ServiceName:    cfg.ServiceName + "-fulfillment",
	}

	group := getenv("FULFILLMENT_GROUP", "fulfillment-svc")
	workers := atoiOr(os.Getenv("FULFILLMENT_WORKERS"), 8)
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, orders.TopicOrderPlaced, workers)

	go func() {
		log.Printf("fulfillment consumer started: group=%s topic=%s workers=%d", group, orders.TopicOrderPlaced, workers)
		if err := cons.Start(ctx, svc.HandleOrderPlaced); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down consumer...")
	cancel()
	time.Sleep(500 * time.Millisecond)
	status.Close()
	status.WaitClosed()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
