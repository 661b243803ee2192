package app

import (
	"context"
	"database/sql"
	"time"

	"github.com/FernandoNarvaez1904/ecommerce-expo/configs"
	"github.com/FernandoNarvaez1904/ecommerce-expo/internal/adapter/cache"
	apphttp "github.com/FernandoNarvaez1904/ecommerce-expo/internal/adapter/http"
	"github.com/FernandoNarvaez1904/ecommerce-expo/internal/adapter/http/middleware"
	"github.com/FernandoNarvaez1904/ecommerce-expo/internal/adapter/kafka"
	"github.com/FernandoNarvaez1904/ecommerce-expo/internal/adapter/queue"
	"github.com/FernandoNarvaez1904/ecommerce-expo/internal/adapter/repo"
	"github.com/FernandoNarvaez1904/ecommerce-expo/internal/logging"
	"github.com/FernandoNarvaez1904/ecommerce-expo/internal/usecase"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	logging.Init(cfg.App.Name, cfg.App.LogFile)
	l := logging.New("bootstrap")

	// init database
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, nil, err
	}

	l.Info("storefront-api: starting up")

	// init redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, nil, err
	}

	// init rabbitmq
	conn, err := amqp091.Dial(cfg.Rabbit.URL)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, err
	}
	producer, err := queue.NewRabbitProducer(ch)
	if err != nil {
		return nil, nil, err
	}

	// infra
	store := repo.NewMySQLStore(db)
	itemRepo := repo.NewMySQLItemRepo(db)
	catalogCache := cache.NewRedisCatalogCache(rdb, cfg.Cache.TTL)

	// use cases
	engine := usecase.NewOrderEngine(store, catalogCache, producer)
	catalog := usecase.NewCatalog(itemRepo, catalogCache)

	// warehouse stock feed
	consumerCancel := setupStockFeed(cfg, catalog)

	// handlers + router + middleware
	oh := apphttp.NewOrderHandler(engine)
	ih := apphttp.NewItemHandler(catalog)
	th := apphttp.NewTokenHandler(cfg)
	authz := middleware.NewAuthz(cfg)
	router := apphttp.NewRouter(oh, ih, th, authz)

	cleanup := func() {
		consumerCancel()
		_ = ch.Close()
		_ = conn.Close()
		_ = rdb.Close()
		_ = db.Close()
	}

	return &App{Router: router}, cleanup, nil
}

func setupStockFeed(cfg configs.Config, catalog *usecase.Catalog) context.CancelFunc {
	grp, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
	if err != nil {
		panic(err)
	}

	h := kafka.NewStockAdjustedHandler(catalog)
	consumer := kafka.NewConsumer(grp, []string{cfg.Kafka.StockTopic}, h.Handle)
	consumer.Logger = logging.New("stock-feed")

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
			logging.New("stock-feed").Error("consumer stopped", "err", err)
		}
	}()
	return cancel
}
