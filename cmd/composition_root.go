package cmd

import (
	"log/slog"
	"strings"
	"time"

	"ordersync/internal/adapters/in/http"
	"ordersync/internal/adapters/out/gatewayhttp"
	"ordersync/internal/adapters/out/kafkapush"
	"ordersync/internal/adapters/out/postgres/mirrorrepo"
	"ordersync/internal/core/application/syncstore"
	"ordersync/internal/core/application/usecases/commands"
	"ordersync/internal/core/application/usecases/queries"
	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/services"
	"ordersync/internal/core/ports"
	"ordersync/internal/jobs"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB  *gorm.DB
	gateway ports.OrderGateway
	store   *syncstore.Store
	logger  *slog.Logger
	config  Config
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	gateway := gatewayhttp.NewClient(config.GatewayBaseURL, config.GatewayToken, nil, logger)
	mirror := mirrorrepo.NewGormMirrorRepository(gormDB)

	storeCfg := syncstore.Config{
		TTL:     cacheTTL(config, logger),
		Metrics: syncstore.NewMetrics(prometheus.DefaultRegisterer),
	}
	store := syncstore.NewStore(gateway, mirror, logger, storeCfg)

	return CompositionRoot{
		gormDB:  gormDB,
		gateway: gateway,
		store:   store,
		logger:  logger,
		config:  config,
	}
}

// Store exposes the synchronization store for warm start and push wiring.
func (c *CompositionRoot) Store() *syncstore.Store {
	return c.store
}

// ConfigureActor installs the configured credential's identity into the
// store. It must run before the push consumer starts: actor-scoped fetches
// and the push channel both belong to this credential.
func (c *CompositionRoot) ConfigureActor() error {
	actorID, role, err := actorCredential(c.config)
	if err != nil {
		return err
	}
	return c.store.SetActor(actorID, role)
}

func actorCredential(config Config) (kernel.UUID, services.Role, error) {
	actorID, err := kernel.UUIDFromString(config.ActorID)
	if err != nil {
		return kernel.UUID{}, services.RoleUnknown, err
	}

	role, err := services.RoleFromString(config.ActorRole)
	if err != nil {
		return kernel.UUID{}, services.RoleUnknown, err
	}

	return actorID, role, nil
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	return commands.NewClaimOrderCommandHandler(c.store, c.gateway)
}

func (c *CompositionRoot) CreateRejectOrderCommandHandler() commands.RejectOrderCommandHandler {
	return commands.NewRejectOrderCommandHandler(c.store, c.gateway)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	return commands.NewAssignCourierCommandHandler(c.store, c.gateway)
}

func (c *CompositionRoot) CreateProposePriceCommandHandler() commands.ProposePriceCommandHandler {
	return commands.NewProposePriceCommandHandler(c.store, c.gateway)
}

func (c *CompositionRoot) CreateConfirmPriceCommandHandler() commands.ConfirmPriceCommandHandler {
	return commands.NewConfirmPriceCommandHandler(c.store, c.gateway)
}

func (c *CompositionRoot) CreateResolveConflictCommandHandler() commands.ResolveConflictCommandHandler {
	return commands.NewResolveConflictCommandHandler(c.store, c.gateway)
}

func (c *CompositionRoot) CreateEndOrderCommandHandler() commands.EndOrderCommandHandler {
	return commands.NewEndOrderCommandHandler(c.store, c.gateway)
}

func (c *CompositionRoot) CreateRefreshOrdersCommandHandler() commands.RefreshOrdersCommandHandler {
	return commands.NewRefreshOrdersCommandHandler(c.store)
}

func (c *CompositionRoot) CreateGetProjectionQueryHandler() queries.GetProjectionQueryHandler {
	return queries.NewGetProjectionQueryHandler(c.store)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.store)
}

func (c *CompositionRoot) CreateGetNegotiationQueryHandler() queries.GetNegotiationQueryHandler {
	return queries.NewGetNegotiationQueryHandler(c.gateway)
}

// CreateServer builds the HTTP server over all use case handlers.
func (c *CompositionRoot) CreateServer() *http.Server {
	return http.NewServer(
		c.CreateClaimOrderCommandHandler(),
		c.CreateRejectOrderCommandHandler(),
		c.CreateAssignCourierCommandHandler(),
		c.CreateProposePriceCommandHandler(),
		c.CreateConfirmPriceCommandHandler(),
		c.CreateResolveConflictCommandHandler(),
		c.CreateEndOrderCommandHandler(),
		c.CreateRefreshOrdersCommandHandler(),
		c.CreateGetProjectionQueryHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetNegotiationQueryHandler(),
	)
}

// CreatePushConsumer builds the Kafka consumer that feeds push invalidation
// events into the store.
func (c *CompositionRoot) CreatePushConsumer() *kafkapush.Consumer {
	cfg := kafkapush.Config{
		Brokers: strings.Split(c.config.KafkaHost, ","),
		Topic:   c.config.KafkaOrderEventsTopic,
		Group:   c.config.KafkaConsumerGroup,
	}
	return kafkapush.NewConsumer(cfg, c.store, c.logger)
}

// CreateJobManager builds the background job manager.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateRefreshOrdersCommandHandler(), c.logger)
}

func cacheTTL(config Config, logger *slog.Logger) time.Duration {
	if config.CacheTTL == "" {
		return syncstore.DefaultTTL
	}
	ttl, err := time.ParseDuration(config.CacheTTL)
	if err != nil || ttl <= 0 {
		logger.Warn("Invalid CACHE_TTL, using default", "value", config.CacheTTL)
		return syncstore.DefaultTTL
	}
	return ttl
}
