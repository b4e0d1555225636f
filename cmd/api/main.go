package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"lunchly/internal/application/command"
	"lunchly/internal/application/process"
	"lunchly/internal/application/query"
	"lunchly/internal/application/services"
	"lunchly/internal/domain/event"
	"lunchly/internal/infrastructure/bus"
	httpHandler "lunchly/internal/infrastructure/http"
	"lunchly/internal/infrastructure/mongo"
	"lunchly/internal/infrastructure/projection"
	"lunchly/internal/infrastructure/sender"
	jwtutil "lunchly/pkg/jwt"
)

func main() {
	// Load environment variables from .env file. Not fatal when missing,
	// the environment may be set directly.
	godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	logger.Info("starting lunchly API")

	mongoConfig := &mongo.MongoConfig{
		URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		Database: getEnv("MONGO_DATABASE", "lunchly"),
		Timeout:  30 * time.Second,
	}

	mongoClient, err := mongo.NewMongoClient(mongoConfig)
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Close(); err != nil {
			logger.Warn("error closing MongoDB connection", zap.Error(err))
		}
	}()

	logger.Info("connected to MongoDB", zap.String("database", mongoConfig.Database))

	database := mongoClient.GetDatabase()
	uowFactory := mongo.NewMongoUnitOfWorkFactory(mongoClient.GetClient(), database)

	// Event buses: projections run synchronously on the command path, the
	// purchase-order router runs on the async bus so routed order updates
	// never fail the originating command.
	eventBus := bus.NewInMemoryEventBus()
	routingBus := bus.NewAsyncEventBus(logger)

	// Projections
	vendorProjection := projection.NewMongoVendorProjection(database, logger)
	orderProjection := projection.NewMongoOrderProjection(database, logger)
	poProjection := projection.NewMongoPurchaseOrderProjection(database, logger)

	subscribeProjections(eventBus, vendorProjection, orderProjection, poProjection)

	// Purchase-order router, fed by forwarding routed events from the
	// command path onto the async bus.
	poRouter := process.NewPurchaseOrderRouter(uowFactory, eventBus, logger)
	if err := poRouter.Register(routingBus); err != nil {
		logger.Fatal("failed to register purchase order router", zap.Error(err))
	}
	for _, eventType := range []string{"PurchaseOrderCreated", "PurchaseOrderCanceled"} {
		eventBus.Subscribe(eventType, bus.EventHandlerFunc(
			func(ctx context.Context, e event.DomainEvent) error {
				return routingBus.Publish(ctx, e)
			}))
	}

	// Purchase-order sender
	var poSender command.PurchaseOrderSender
	if host := os.Getenv("SMTP_HOST"); host != "" {
		poSender = sender.NewSMTPSender(sender.SMTPConfig{
			Host:     host,
			Port:     getEnv("SMTP_PORT", "587"),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
		})
	} else {
		logger.Warn("SMTP_HOST not set, purchase orders will only be logged")
		poSender = sender.NewLogSender(logger)
	}
	fromEmail := getEnv("PO_FROM_EMAIL", "orders@lunchly.local")

	// Command handlers
	addVendorHandler := command.NewAddVendorHandler(uowFactory, eventBus, logger)
	updateVendorHandler := command.NewUpdateVendorHandler(uowFactory, eventBus, logger)
	importMenuHandler := command.NewImportMenuHandler(uowFactory, eventBus, logger)
	setMenuDateRangeHandler := command.NewSetMenuDateRangeHandler(uowFactory, eventBus, logger)

	createOrderHandler := command.NewCreateOrderHandler(uowFactory, eventBus, logger)
	addDishHandler := command.NewAddDishToOrderHandler(uowFactory, eventBus, logger)
	removeDishHandler := command.NewRemoveDishFromOrderHandler(uowFactory, eventBus, logger)
	cancelOrderHandler := command.NewCancelOrderHandler(uowFactory, eventBus, logger)

	createPOHandler := command.NewCreatePurchaseOrderHandler(uowFactory, eventBus, poSender, fromEmail, logger)
	markPOValidHandler := command.NewMarkPurchaseOrderAsValidHandler(uowFactory, eventBus, logger)
	markPODeliveredHandler := command.NewMarkPurchaseOrderAsDeliveredHandler(uowFactory, eventBus, logger)
	cancelPOHandler := command.NewCancelPurchaseOrderHandler(uowFactory, eventBus, logger)

	// Query handlers
	getVendorHandler := query.NewGetVendorHandler(vendorProjection)
	listVendorsHandler := query.NewListVendorsHandler(vendorProjection)
	getOrderHandler := query.NewGetOrderHandler(orderProjection)
	listOrdersByUserHandler := query.NewListOrdersByUserHandler(orderProjection)
	listOrdersConsolidationHandler := query.NewListOrdersForConsolidationHandler(orderProjection)
	getPOHandler := query.NewGetPurchaseOrderHandler(poProjection)
	listPOsHandler := query.NewListPurchaseOrdersHandler(poProjection)

	// Application services
	vendorService := services.NewVendorService(
		addVendorHandler,
		updateVendorHandler,
		importMenuHandler,
		setMenuDateRangeHandler,
		getVendorHandler,
		listVendorsHandler,
	)
	orderService := services.NewOrderService(
		createOrderHandler,
		addDishHandler,
		removeDishHandler,
		cancelOrderHandler,
		getOrderHandler,
		listOrdersByUserHandler,
		listOrdersConsolidationHandler,
	)
	poService := services.NewPurchaseOrderService(
		createPOHandler,
		markPOValidHandler,
		markPODeliveredHandler,
		cancelPOHandler,
		getPOHandler,
		listPOsHandler,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := eventBus.Start(ctx); err != nil {
		logger.Fatal("failed to start event bus", zap.Error(err))
	}
	if err := routingBus.Start(ctx); err != nil {
		logger.Fatal("failed to start routing bus", zap.Error(err))
	}

	// HTTP layer
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is required")
	}
	adminPasswordHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if adminPasswordHash == "" {
		logger.Fatal("ADMIN_PASSWORD_HASH is required")
	}

	jwtManager := jwtutil.NewJWTManager(jwtSecret, 24*time.Hour)

	controllers := httpHandler.Controllers{
		Auth:          httpHandler.NewHTTPAuthController(jwtManager, adminPasswordHash),
		Vendor:        httpHandler.NewHTTPVendorController(vendorService),
		Order:         httpHandler.NewHTTPOrderController(orderService),
		PurchaseOrder: httpHandler.NewHTTPPurchaseOrderController(poService),
	}

	server := &http.Server{
		Addr:    getEnv("HTTP_ADDR", ":8080"),
		Handler: httpHandler.NewRouter(controllers, jwtManager),
	}

	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server shutdown error", zap.Error(err))
	}

	routingBus.Wait()
	routingBus.Stop()
	eventBus.Stop()

	logger.Info("stopped")
}

// subscribeProjections wires every projection handler to its event type.
func subscribeProjections(
	eventBus bus.EventBus,
	vendorProjection *projection.MongoVendorProjection,
	orderProjection *projection.MongoOrderProjection,
	poProjection *projection.MongoPurchaseOrderProjection,
) {
	eventBus.Subscribe("VendorAdded", bus.EventHandlerFunc(
		func(ctx context.Context, e event.DomainEvent) error {
			return vendorProjection.HandleVendorAdded(ctx, e.(*event.VendorAdded))
		}))
	eventBus.Subscribe("VendorUpdated", bus.EventHandlerFunc(
		func(ctx context.Context, e event.DomainEvent) error {
			return vendorProjection.HandleVendorUpdated(ctx, e.(*event.VendorUpdated))
		}))
	eventBus.Subscribe("MenuImported", bus.EventHandlerFunc(
		func(ctx context.Context, e event.DomainEvent) error {
			return vendorProjection.HandleMenuImported(ctx, e.(*event.MenuImported))
		}))
	eventBus.Subscribe("DateRangeForMenuSet", bus.EventHandlerFunc(
		func(ctx context.Context, e event.DomainEvent) error {
			return vendorProjection.HandleDateRangeForMenuSet(ctx, e.(*event.DateRangeForMenuSet))
		}))

	eventBus.Subscribe("OrderCreated", bus.EventHandlerFunc(
		func(ctx context.Context, e event.DomainEvent) error {
			return orderProjection.HandleOrderCreated(ctx, e.(*event.OrderCreated))
		}))
	eventBus.Subscribe("DishAddedToOrder", bus.EventHandlerFunc(
		func(ctx context.Context, e event.DomainEvent) error {
			return orderProjection.HandleDishAddedToOrder(ctx, e.(*event.DishAddedToOrder))
		}))
	eventBus.Subscribe("DishRemovedFromOrder", bus.EventHandlerFunc(
		func(ctx context.Context, e event.DomainEvent) error {
			return orderProjection.HandleDishRemovedFromOrder(ctx, e.(*event.DishRemovedFromOrder))
		}))
	eventBus.Subscribe("OrderCanceled", bus.EventHandlerFunc(
		func(ctx context.Context, e event.DomainEvent) error {
			return orderProjection.HandleOrderCanceled(ctx, e.(*event.OrderCanceled))
		}))
	eventBus.Subscribe("OrderMarkedAsProcessed", bus.EventHandlerFunc(
		func(ctx context.Context, e event.DomainEvent) error {
			return orderProjection.HandleOrderMarkedAsProcessed(ctx, e.(*event.OrderMarkedAsProcessed))
		}))

	eventBus.Subscribe("PurchaseOrderCreated", bus.EventHandlerFunc(
		func(ctx context.Context, e event.DomainEvent) error {
			return poProjection.HandlePurchaseOrderCreated(ctx, e.(*event.PurchaseOrderCreated))
		}))
	eventBus.Subscribe("PurchaseOrderValidationPassed", bus.EventHandlerFunc(
		func(ctx context.Context, e event.DomainEvent) error {
			return poProjection.HandlePurchaseOrderValidationPassed(ctx, e.(*event.PurchaseOrderValidationPassed))
		}))
	eventBus.Subscribe("PurchaseOrderValidationFailed", bus.EventHandlerFunc(
		func(ctx context.Context, e event.DomainEvent) error {
			return poProjection.HandlePurchaseOrderValidationFailed(ctx, e.(*event.PurchaseOrderValidationFailed))
		}))
	eventBus.Subscribe("PurchaseOrderValidationOverruled", bus.EventHandlerFunc(
		func(ctx context.Context, e event.DomainEvent) error {
			return poProjection.HandlePurchaseOrderValidationOverruled(ctx, e.(*event.PurchaseOrderValidationOverruled))
		}))
	eventBus.Subscribe("PurchaseOrderSent", bus.EventHandlerFunc(
		func(ctx context.Context, e event.DomainEvent) error {
			return poProjection.HandlePurchaseOrderSent(ctx, e.(*event.PurchaseOrderSent))
		}))
	eventBus.Subscribe("PurchaseOrderSendFailed", bus.EventHandlerFunc(
		func(ctx context.Context, e event.DomainEvent) error {
			return poProjection.HandlePurchaseOrderSendFailed(ctx, e.(*event.PurchaseOrderSendFailed))
		}))
	eventBus.Subscribe("PurchaseOrderDelivered", bus.EventHandlerFunc(
		func(ctx context.Context, e event.DomainEvent) error {
			return poProjection.HandlePurchaseOrderDelivered(ctx, e.(*event.PurchaseOrderDelivered))
		}))
	eventBus.Subscribe("PurchaseOrderCanceled", bus.EventHandlerFunc(
		func(ctx context.Context, e event.DomainEvent) error {
			return poProjection.HandlePurchaseOrderCanceled(ctx, e.(*event.PurchaseOrderCanceled))
		}))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
