// Package app composes the allocation modules into one HTTP handler for the
// configured backends.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	availabilityhandler "hostel/internal/availability/handler"
	availabilityservice "hostel/internal/availability/service"
	cataloghandler "hostel/internal/catalog/handler"
	catalogservice "hostel/internal/catalog/service"
	catalogstore "hostel/internal/catalog/store"
	jwttoken "hostel/internal/jwt_token"
	leasehandler "hostel/internal/lease/handler"
	leasemodels "hostel/internal/lease/models"
	leaseservice "hostel/internal/lease/service"
	leasestore "hostel/internal/lease/store"
	"hostel/internal/platform/config"
	"hostel/internal/platform/metrics"
	"hostel/internal/platform/postgres"
	platformredis "hostel/internal/platform/redis"
	reservationhandler "hostel/internal/reservation/handler"
	reservationmodels "hostel/internal/reservation/models"
	reservationservice "hostel/internal/reservation/service"
	reservationstore "hostel/internal/reservation/store"
	httptransport "hostel/internal/transport/http"
	id "hostel/pkg/domain"
	audit "hostel/pkg/platform/audit"
	auditkafka "hostel/pkg/platform/audit/kafka"
	"hostel/pkg/platform/audit/publisher"
	auditmemory "hostel/pkg/platform/audit/store/memory"
	"hostel/pkg/platform/tx"
)

const auditBuffer = 1024

type reservationStore interface {
	reservationservice.Store
	ListEndingAfter(ctx context.Context, roomIDs []id.RoomID, t time.Time) ([]*reservationmodels.Reservation, error)
}

type leaseStore interface {
	leaseservice.LeaseStore
	ListPresentAt(ctx context.Context, roomIDs []id.RoomID, t time.Time) ([]*leasemodels.LeaseContract, error)
}

type stores struct {
	catalog      catalogservice.Store
	reservations reservationStore
	leases       leaseStore
	deposits     leaseservice.DepositStore
}

// App owns the composed handler and the resources behind it.
type App struct {
	Handler http.Handler
	Audit   audit.Publisher

	closers []func()
}

// New wires every module. An empty DATABASE_URL selects the in-memory stores
// and the sharded runner; REDIS_URL adds the distributed room lock on top of
// either runner; KAFKA_BROKERS routes audit events to Kafka.
func New(ctx context.Context, cfg config.Server, logger *slog.Logger, registry *prometheus.Registry) (*App, error) {
	a := &App{}
	health := map[string]httptransport.HealthCheck{}

	var (
		st     stores
		runner tx.Runner
	)
	if cfg.Database.URL != "" {
		db, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = db.Close() })
		if err := postgres.Migrate(ctx, db); err != nil {
			a.Close()
			return nil, err
		}
		st = postgresStores(db)
		runner = tx.NewPostgres(db)
		health["postgres"] = db.PingContext
		logger.InfoContext(ctx, "using postgres stores")
	} else {
		st = memoryStores()
		runner = tx.NewSharded(cfg.TxTimeout)
		logger.InfoContext(ctx, "using in-memory stores")
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		a.Close()
		return nil, err
	}
	if redisClient != nil {
		a.closers = append(a.closers, func() { _ = redisClient.Close() })
		runner = platformredis.NewLockingRunner(redisClient.Client, runner,
			platformredis.WithLockTTL(cfg.Redis.LockTTL))
		health["redis"] = redisClient.Health
		logger.InfoContext(ctx, "distributed room lock enabled")
	}

	auditStore, err := a.newAuditStore(ctx, cfg.Kafka, logger, health)
	if err != nil {
		a.Close()
		return nil, err
	}
	pub := publisher.NewPublisher(auditStore, publisher.WithAsyncBuffer(auditBuffer), publisher.WithLogger(logger))
	a.closers = append(a.closers, pub.Close)
	a.Audit = pub

	m := metrics.New(registry)

	catalog := catalogservice.New(st.catalog,
		catalogservice.WithLogger(logger),
		catalogservice.WithAuditPublisher(pub),
	)
	reservations := reservationservice.New(st.reservations, catalog,
		reservationservice.WithLogger(logger),
		reservationservice.WithAuditPublisher(pub),
		reservationservice.WithMetrics(m),
		reservationservice.WithTxRunner(runner),
		reservationservice.WithPresentLeases(st.leases),
	)
	leases := leaseservice.New(st.leases, st.deposits, st.reservations, catalog,
		leaseservice.WithLogger(logger),
		leaseservice.WithAuditPublisher(pub),
		leaseservice.WithMetrics(m),
		leaseservice.WithTxRunner(runner),
	)
	availability := availabilityservice.New(catalog, st.reservations, st.leases,
		availabilityservice.WithLogger(logger),
		availabilityservice.WithMetrics(m),
	)

	a.Handler = httptransport.NewRouter(httptransport.Config{
		Logger:   logger,
		Metrics:  m,
		Gatherer: registry,
		Tokens:   jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer),
		Health:   health,
	},
		availabilityhandler.New(availability, logger),
		cataloghandler.New(catalog, logger),
		reservationhandler.New(reservations, logger),
		leasehandler.New(leases, logger),
	)
	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func memoryStores() stores {
	return stores{
		catalog:      catalogstore.NewInMemoryStore(),
		reservations: reservationstore.NewInMemoryStore(),
		leases:       leasestore.NewInMemoryLeaseStore(),
		deposits:     leasestore.NewInMemoryDepositStore(),
	}
}

func postgresStores(db *sql.DB) stores {
	return stores{
		catalog:      catalogstore.NewPostgres(db),
		reservations: reservationstore.NewPostgres(db),
		leases:       leasestore.NewPostgresLeaseStore(db),
		deposits:     leasestore.NewPostgresDepositStore(db),
	}
}

func (a *App) newAuditStore(ctx context.Context, cfg config.KafkaConfig, logger *slog.Logger, health map[string]httptransport.HealthCheck) (audit.Store, error) {
	if len(cfg.Brokers) == 0 {
		return auditmemory.NewInMemoryStore(), nil
	}
	store, err := auditkafka.New(cfg.Brokers, cfg.AuditTopic)
	if err != nil {
		return nil, fmt.Errorf("create kafka audit store: %w", err)
	}
	a.closers = append(a.closers, store.Close)
	if err := store.EnsureTopic(ctx, 3, 1); err != nil {
		return nil, fmt.Errorf("ensure audit topic: %w", err)
	}
	health["kafka"] = store.Ping
	logger.InfoContext(ctx, "kafka audit sink enabled", "topic", cfg.AuditTopic)
	return store, nil
}
