package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"cardshop/internal/handlers"
	"cardshop/internal/middleware"
	"cardshop/internal/models"
	"cardshop/internal/repositories"
	"cardshop/internal/services"
	"cardshop/pkg/notifier"
	"cardshop/pkg/rabbitmq"
	"cardshop/pkg/storage"

	"github.com/spf13/viper"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("BASE_URL", "http://localhost:8080")
	viper.SetDefault("JWT_SECRET", "supersecretkey")
	viper.SetDefault("UPLOAD_DIR", "./uploads")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("SEED_ADMIN_EMAIL", "")
	viper.SetDefault("SEED_ADMIN_PASSWORD", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	baseURL := viper.GetString("BASE_URL")
	jwtSecret := viper.GetString("JWT_SECRET")
	uploadDir := viper.GetString("UPLOAD_DIR")
	databaseURL := viper.GetString("DATABASE_URL")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Initialize Repositories ---
	// With DATABASE_URL set the service runs against Postgres; without it
	// the in-memory repositories back a self-contained dev instance.
	var (
		userRepo    repositories.UserRepository
		cardRepo    repositories.CardRepository
		settingRepo repositories.SettingRepository
	)
	if databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{TranslateError: true})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.AutoMigrate(&models.User{}, &models.Card{}, &models.CardImage{}, &models.Setting{}); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		userRepo = repositories.NewGORMUserRepository(db)
		cardRepo = repositories.NewGORMCardRepository(db)
		settingRepo = repositories.NewGORMSettingRepository(db)
		log.Println("Using Postgres repositories")
	} else {
		mockCards := repositories.NewMockCardRepository()
		seedCards(mockCards)
		userRepo = repositories.NewMockUserRepository()
		cardRepo = mockCards
		settingRepo = repositories.NewMockSettingRepository()
		log.Println("DATABASE_URL not set, using in-memory repositories")
	}

	// --- Notification channel ---
	// Verification codes go to RabbitMQ when a broker is configured, and to
	// the log otherwise. The service layer never knows which.
	var codeNotifier notifier.Notifier = notifier.LogNotifier{}
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		client, err := rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, falling back to log notifier: %v", err)
		} else {
			mqClient = client
			codeNotifier = notifier.NewAMQPNotifier(client)
			defer mqClient.Close()
		}
	}

	// --- Upload storage ---
	fileStore, err := storage.NewLocalStore(uploadDir, baseURL)
	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, codeNotifier, jwtSecret)
	catalogService := services.NewCatalogService(cardRepo, settingRepo)
	cardService := services.NewCardService(cardRepo, settingRepo)
	newsService := services.NewNewsService()

	seedAdmin(userRepo)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	cardHandler := handlers.NewCardHandler(catalogService, cardService)
	systemHandler := handlers.NewSystemHandler(catalogService, cardService, fileStore)
	newsHandler := handlers.NewNewsHandler(newsService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger
	authRequired := middleware.AuthRequired(authService)
	adminRequired := middleware.AdminRequired()

	// --- API Routes ---
	api := app.Group("/api")
	authHandler.RegisterRoutes(api, authRequired)
	cardHandler.RegisterRoutes(api, authRequired, adminRequired)
	systemHandler.RegisterRoutes(api, authRequired, adminRequired)
	newsHandler.RegisterRoutes(api)

	// Uploaded images are served straight from the local store directory.
	app.Static("/uploads", uploadDir)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start notification consumer ---
	// In development there is no delivery worker attached to the queue, so
	// the consumer below drains it and logs each event.
	if mqClient != nil {
		messageHandler := func(msg amqp.Delivery) error {
			log.Printf("Received notification event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
			return nil
		}
		if consumerErr := mqClient.ConsumeNotificationEvents(messageHandler); consumerErr != nil {
			log.Printf("Failed to start notification consumer: %v", consumerErr)
		}
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// seedCards populates the in-memory card repository so a dev instance has a
// browsable catalog.
func seedCards(repo repositories.CardRepository) {
	cards := []models.Card{
		{
			Name: "Charizard Holo", Category: models.CategoryPokemon, Language: "en",
			SetName: "Base Set", Year: 1999, Condition: "PSA 8", ManualPrice: 1500,
			Images: []models.CardImage{{URL: "/uploads/demo-charizard.jpg", SortOrder: 0}},
		},
		{
			Name: "Pikachu Promo", Category: models.CategoryPokemon, Language: "jp",
			SetName: "Corocoro", Year: 1998, Condition: "NM", ManualPrice: 320,
		},
		{
			Name: "Ken Griffey Jr. Rookie", Category: models.CategoryBaseball, Language: "en",
			SetName: "Upper Deck", Year: 1989, Condition: "BGS 9", ManualPrice: 240,
		},
	}

	for i := range cards {
		if err := repo.Create(&cards[i]); err != nil {
			log.Printf("Error seeding card %s: %v", cards[i].Name, err)
		} else {
			log.Printf("Seeded card: %s (ID: %s)", cards[i].Name, cards[i].ID)
		}
	}
}

// seedAdmin creates a verified administrator account when the seed env vars
// are set and the account does not exist yet.
func seedAdmin(repo repositories.UserRepository) {
	email := viper.GetString("SEED_ADMIN_EMAIL")
	password := viper.GetString("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}
	if existing, err := repo.GetByEmail(email); err == nil && existing != nil {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing seed admin password: %v", err)
		return
	}
	admin := &models.User{
		Email:      email,
		Username:   "admin",
		Password:   string(hash),
		Role:       models.RoleAdmin,
		IsVerified: true,
	}
	if err := repo.Create(admin); err != nil {
		log.Printf("Error seeding admin account: %v", err)
		return
	}
	log.Printf("Seeded admin account %s", email)
}
