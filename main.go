package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kedai/internal/handlers"
	"kedai/internal/models"
	"kedai/internal/repositories"
	"kedai/internal/services"
	"kedai/pkg/logging"
	"kedai/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_DSN", "coffee_shop.db")
	viper.SetDefault("RABBITMQ_URL", "") // empty disables order events
	viper.SetDefault("LOG_LEVEL", "info")
	viper.AutomaticEnv()

	log := logging.New(viper.GetString("LOG_LEVEL"))

	// --- Database ---
	db, err := openDB(viper.GetString("DB_DRIVER"), viper.GetString("DB_DSN"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Product{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Repositories ---
	productRepo := repositories.NewGORMProductRepository(db)
	customerRepo := repositories.NewGORMCustomerRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	seedProducts(db, log)

	// --- RabbitMQ (optional) ---
	var publisher services.EventPublisher
	var mqClient *rabbitmq.Client
	if url := viper.GetString("RABBITMQ_URL"); url != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: url, Exchange: "orders"})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient
	}

	// --- Services ---
	productService := services.NewProductService(productRepo)
	customerService := services.NewCustomerService(customerRepo)
	orderService := services.NewOrderService(orderRepo, publisher, log)
	dashboardService := services.NewDashboardService(orderRepo, productRepo, nil)

	// --- Handlers ---
	productHandler := handlers.NewProductHandler(productService, log)
	customerHandler := handlers.NewCustomerHandler(customerService, log)
	orderHandler := handlers.NewOrderHandler(orderService, log)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, log)

	// --- Fiber App ---
	app := fiber.New()
	app.Use(fiberlogger.New())

	api := app.Group("/api")
	productHandler.RegisterRoutes(api)
	customerHandler.RegisterRoutes(api)
	orderHandler.RegisterRoutes(api)
	dashboardHandler.RegisterRoutes(api)

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"message":   "Coffee shop server is running",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// --- Order event consumer (optional) ---
	if mqClient != nil {
		err := mqClient.Consume("order_events", "order.*", func(msg amqp.Delivery) error {
			log.WithField("routing_key", msg.RoutingKey).Infof("order event: %s", string(msg.Body))
			return nil
		})
		if err != nil {
			log.Errorf("Failed to start order event consumer: %v", err)
		}
	}

	// --- Start HTTP Server ---
	appPort := viper.GetString("APP_PORT")
	log.Infof("Starting server on %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Errorf("Error during Fiber shutdown: %v", err)
	}
	log.Info("Server gracefully stopped")
}

// openDB opens the configured database. SQLite is the default; postgres
// is selectable for production-style deployments.
func openDB(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "sqlite":
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	case "postgres":
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

// seedProducts inserts the sample menu when the products table is empty.
func seedProducts(db *gorm.DB, log *logrus.Logger) {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	price := func(s string) decimal.Decimal {
		d, _ := decimal.NewFromString(s)
		return d
	}
	products := []models.Product{
		{Name: "Espresso", Description: "Rich and bold coffee shot", Price: price("2.50"), Category: "Coffee", Available: true},
		{Name: "Cappuccino", Description: "Espresso with steamed milk and foam", Price: price("4.00"), Category: "Coffee", Available: true},
		{Name: "Latte", Description: "Espresso with steamed milk", Price: price("4.50"), Category: "Coffee", Available: true},
		{Name: "Americano", Description: "Espresso with hot water", Price: price("3.00"), Category: "Coffee", Available: true},
		{Name: "Mocha", Description: "Espresso with chocolate and steamed milk", Price: price("5.00"), Category: "Coffee", Available: true},
		{Name: "Macchiato", Description: "Espresso with a dollop of foam", Price: price("3.50"), Category: "Coffee", Available: true},
		{Name: "Croissant", Description: "Buttery, flaky pastry", Price: price("3.50"), Category: "Pastry", Available: true},
		{Name: "Blueberry Muffin", Description: "Fresh baked muffin with blueberries", Price: price("2.75"), Category: "Pastry", Available: true},
		{Name: "Bagel with Cream Cheese", Description: "Everything bagel with cream cheese", Price: price("4.25"), Category: "Food", Available: true},
		{Name: "Green Tea", Description: "Organic green tea", Price: price("2.25"), Category: "Tea", Available: true},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			log.Errorf("Failed to seed product %s: %v", products[i].Name, err)
			return
		}
	}
	log.Infof("Seeded %d sample products", len(products))
}
