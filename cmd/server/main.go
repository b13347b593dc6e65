package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"splitledger/internal/auth"
	"splitledger/internal/config"
	"splitledger/internal/pdf"
	"splitledger/internal/service"
	"splitledger/internal/storage"
	"splitledger/internal/storage/memory"
	mongostore "splitledger/internal/storage/mongo"
	"splitledger/internal/storage/sqlite"
	"splitledger/pkg/logging"
	"splitledger/pkg/metrics"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "backend", cfg.StorageBackend, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "backend", store.Name())

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	authenticator := auth.NewPasswordAuthenticator(store)

	m := metrics.NewHTTP(prometheus.DefaultRegisterer)

	router := service.NewRouter(store, jwtManager, m, service.Services{
		Auth:     service.NewAuthService(store, authenticator, jwtManager),
		Groups:   service.NewGroupService(store),
		Expenses: service.NewExpenseService(store),
		Payments: service.NewPaymentService(store),
		PDF:      service.NewPDFService(pdf.NewClient(cfg.PDFServiceURL)),
	})

	// h2c allows HTTP/2 clients without TLS termination in front.
	handler := h2c.NewHandler(router, &http2.Server{})

	addr := ":" + cfg.Port
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageBackend {
	case config.BackendMongo:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return mongostore.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case config.BackendMemory:
		return memory.New(), nil
	default:
		return sqlite.New(cfg.SQLitePath)
	}
}
