package cmd

import (
	"log/slog"
	"time"

	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/kafka"
	"marketplace/internal/adapters/out/postgres"
	redisstorage "marketplace/internal/adapters/out/redis"
	"marketplace/internal/adapters/out/whatsapp"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	carts      ports.CartStorage
	links      whatsapp.LinkBuilder
	formatter  services.SummaryFormatter
	sessions   *commands.SessionLocks
	inFlight   *commands.InFlightOrders
	boardJob   *jobs.BoardRefreshJob
	logger     *slog.Logger
	now        func() time.Time
}

// NewCompositionRoot wires the adapters. publisher may be nil when no broker
// is configured.
func NewCompositionRoot(
	config Config,
	location *time.Location,
	gormDB *gorm.DB,
	redisClient *goredis.Client,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) *CompositionRoot {
	if publisher == nil {
		publisher = kafka.NoopPublisher{}
	}

	c := &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger),
		carts:      redisstorage.NewCartStorage(redisClient, config.CartTTL),
		links:      whatsapp.NewLinkBuilder(config.WhatsAppBaseURL),
		formatter:  services.NewSummaryFormatter(location),
		sessions:   commands.NewSessionLocks(),
		inFlight:   commands.NewInFlightOrders(),
		logger:     logger,
		now:        time.Now,
	}
	c.boardJob = jobs.NewBoardRefreshJob(c.CreateGetStatusBoardQueryHandler(), config.BoardRefreshSchedule, logger)
	return c
}

func (c *CompositionRoot) commandUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateAddCartItemCommandHandler() commands.AddCartItemCommandHandler {
	return commands.NewAddCartItemCommandHandler(c.carts, c.sessions, nil)
}

func (c *CompositionRoot) CreateResolveCartConflictCommandHandler() commands.ResolveCartConflictCommandHandler {
	return commands.NewResolveCartConflictCommandHandler(c.carts, c.sessions)
}

func (c *CompositionRoot) CreateUpdateCartItemCommandHandler() commands.UpdateCartItemCommandHandler {
	return commands.NewUpdateCartItemCommandHandler(c.carts, c.sessions)
}

func (c *CompositionRoot) CreateClearCartCommandHandler() commands.ClearCartCommandHandler {
	return commands.NewClearCartCommandHandler(c.carts, c.sessions)
}

func (c *CompositionRoot) CreateCheckoutCartCommandHandler() commands.CheckoutCartCommandHandler {
	return commands.NewCheckoutCartCommandHandler(c.carts, c.sessions, c.commandUoWFactory(), c.now, c.logger)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.commandUoWFactory(), c.inFlight, c.now)
}

func (c *CompositionRoot) CreateOverrideOrderStatusCommandHandler() commands.OverrideOrderStatusCommandHandler {
	return commands.NewOverrideOrderStatusCommandHandler(c.commandUoWFactory(), c.inFlight, c.now, c.logger)
}

func (c *CompositionRoot) CreateGetCartQueryHandler() queries.GetCartQueryHandler {
	return queries.NewGetCartQueryHandler(c.carts)
}

func (c *CompositionRoot) CreateGetStatusBoardQueryHandler() queries.GetStatusBoardQueryHandler {
	return queries.NewGetStatusBoardQueryHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateGetOrderSummaryQueryHandler() queries.GetOrderSummaryQueryHandler {
	return queries.NewGetOrderSummaryQueryHandler(c.uowFactory, c.formatter, c.links, c.now)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.boardJob)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		AddCartItem:         c.CreateAddCartItemCommandHandler(),
		ResolveCartConflict: c.CreateResolveCartConflictCommandHandler(),
		UpdateCartItem:      c.CreateUpdateCartItemCommandHandler(),
		ClearCart:           c.CreateClearCartCommandHandler(),
		CheckoutCart:        c.CreateCheckoutCartCommandHandler(),
		ChangeOrderStatus:   c.CreateChangeOrderStatusCommandHandler(),
		OverrideOrderStatus: c.CreateOverrideOrderStatusCommandHandler(),
		GetCart:             c.CreateGetCartQueryHandler(),
		GetStatusBoard:      c.CreateGetStatusBoardQueryHandler(),
		GetOrderSummary:     c.CreateGetOrderSummaryQueryHandler(),
		GetOrderHistory:     c.CreateGetOrderHistoryQueryHandler(),
	}, c.boardJob, c.links, c.logger)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
