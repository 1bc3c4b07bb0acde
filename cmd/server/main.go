package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/careflowcentral/careflow-backend/internal/config"
	"github.com/careflowcentral/careflow-backend/internal/database"
	"github.com/careflowcentral/careflow-backend/internal/handlers"
	"github.com/careflowcentral/careflow-backend/internal/middleware"
	"github.com/careflowcentral/careflow-backend/internal/routes"
	"github.com/careflowcentral/careflow-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	if err := database.Connect(cfg.MongoURI); err != nil {
		log.Fatalf("❌ Failed to connect to MongoDB: %v", err)
	}
	defer database.Disconnect()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureIndexes(ctx); err != nil {
		cancel()
		log.Fatalf("❌ Failed to create indexes: %v", err)
	}
	cancel()
	log.Println("✅ Database indexes ensured")

	redisAvailable := true
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Printf("⚠️ Redis unavailable, rate limiting degraded: %v", err)
		redisAvailable = false
	} else {
		defer database.DisconnectRedis()
	}

	middleware.InitAuth(cfg.JWTSecret, services.NewMongoIdentityResolver(database.DB))

	mailer := services.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass)
	handlers.InitMailer(mailer)

	store := services.NewMongoCredentialStore(database.DB)
	handlers.InitProvisioning(services.NewProvisioningService(store, mailer))

	cloudinarySvc, err := services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Cloudinary: %v", err)
	}
	handlers.InitCloudinary(cloudinarySvc)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity() {
			r.Use(mw)
		}
		if redisAvailable {
			r.Use(middleware.RateLimitMiddleware)
		}
		log.Println("🔒 Production security middleware enabled")
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	routes.Register(r)

	log.Printf("🚀 Server running on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
