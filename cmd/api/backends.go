package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"storefront/pkg/config"
	"storefront/pkg/discount"
	memdiscount "storefront/pkg/discount/memory"
	pgdiscount "storefront/pkg/discount/postgres"
	"storefront/pkg/events"
	"storefront/pkg/events/kafka"
	"storefront/pkg/kv"
	memkv "storefront/pkg/kv/memory"
	pgkv "storefront/pkg/kv/postgres"
	rediskv "storefront/pkg/kv/redis"
	sqlitekv "storefront/pkg/kv/sqlite"
	"storefront/pkg/logger"
	"storefront/pkg/order"
	memorder "storefront/pkg/order/memory"
	pgorder "storefront/pkg/order/postgres"
)

const redisKeyPrefix = "storefront:"

// backends holds the storage selected by configuration.
type backends struct {
	kv        kv.Store
	orders    order.Repository
	discounts discount.Registry
	sessions  sessionStore
	events    events.Publisher

	closers []func() error
}

// Close releases connections in reverse order of opening.
func (b *backends) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

// openBackends connects to PostgreSQL and Redis when configured. Orders and
// discount codes live in PostgreSQL if DATABASE_URL is set, otherwise in
// memory; carts and override markers use KV_BACKEND. Order events go to
// Kafka when brokers are configured and are dropped otherwise.
func openBackends(ctx context.Context, cfg config.Config, log *logger.Logger) (*backends, error) {
	b := &backends{}
	fail := func(err error) (*backends, error) {
		b.Close()
		return nil, err
	}

	var db *sql.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return fail(fmt.Errorf("db connect: %w", err))
		}
		b.closers = append(b.closers, db.Close)
		if err := db.PingContext(ctx); err != nil {
			return fail(fmt.Errorf("db ping: %w", err))
		}
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		b.closers = append(b.closers, rdb.Close)
	}

	if db != nil {
		orders := pgorder.New(db)
		if err := orders.Migrate(ctx); err != nil {
			return fail(err)
		}
		codes := pgdiscount.New(db)
		if err := codes.Migrate(ctx); err != nil {
			return fail(err)
		}
		for _, c := range cfg.Discounts {
			if err := codes.Put(ctx, c); err != nil {
				return fail(fmt.Errorf("seed discount %s: %w", c.Code, err))
			}
		}
		b.orders, b.discounts = orders, codes
	} else {
		b.orders = memorder.New()
		b.discounts = memdiscount.New(cfg.Discounts...)
	}

	switch cfg.KVBackend {
	case config.BackendRedis:
		b.kv = rediskv.New(rdb, redisKeyPrefix)
	case config.BackendPostgres:
		s := pgkv.New(db)
		if err := s.Migrate(ctx); err != nil {
			return fail(err)
		}
		b.kv = s
	case config.BackendSQLite:
		s, err := sqlitekv.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return fail(err)
		}
		b.closers = append(b.closers, s.Close)
		b.kv = s
	default:
		b.kv = memkv.New()
	}

	if rdb != nil {
		b.sessions = &redisSessions{client: rdb, prefix: redisKeyPrefix, ttl: time.Hour}
	} else {
		log.Warn(ctx, "REDIS_ADDR not set, login sessions never expire")
		b.sessions = &kvSessions{store: b.kv}
	}

	if brokers := kafka.ParseBrokers(cfg.KafkaBrokers); len(brokers) > 0 {
		p := kafka.New(brokers, cfg.KafkaTopic)
		b.closers = append(b.closers, p.Close)
		b.events = p
	} else {
		b.events = events.Nop{}
	}

	log.Info(ctx, "backends ready",
		"kv_backend", cfg.KVBackend,
		"postgres", db != nil,
		"redis", rdb != nil,
		"kafka", cfg.KafkaBrokers != "",
		"discount_codes", len(cfg.Discounts),
	)
	return b, nil
}
