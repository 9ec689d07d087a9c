package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/rjaysantos/seamless-provider-aix/docs"
	"github.com/rjaysantos/seamless-provider-aix/internal/config"
	"github.com/rjaysantos/seamless-provider-aix/internal/credentials"
	"github.com/rjaysantos/seamless-provider-aix/internal/database"
	"github.com/rjaysantos/seamless-provider-aix/internal/events"
	"github.com/rjaysantos/seamless-provider-aix/internal/gameapi"
	"github.com/rjaysantos/seamless-provider-aix/internal/handlers"
	"github.com/rjaysantos/seamless-provider-aix/internal/logger"
	"github.com/rjaysantos/seamless-provider-aix/internal/metrics"
	mW "github.com/rjaysantos/seamless-provider-aix/internal/middleware"
	"github.com/rjaysantos/seamless-provider-aix/internal/services"
	"github.com/rjaysantos/seamless-provider-aix/internal/wallet"
)

// @title AIX Seamless Provider Adapter
// @version 1.0
// @description Callback endpoints and launch API for the AIX game provider integration
// @host localhost:8080
// @BasePath /

func main() {
	// Initialize config
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Config file not found, using defaults: %v", err)
	}

	srvCfg := config.LoadServerConfig()

	zlog, err := logger.New("seamless-provider-aix", srvCfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	// Swagger metadata
	docs.SwaggerInfo.Host = "localhost:" + srvCfg.HTTPPort

	// Infrastructure
	db, err := database.InitDB()
	if err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		zlog.Fatal("failed to migrate schema", zap.Error(err))
	}

	redisClient := database.InitRedis(zlog)
	if redisClient != nil {
		defer redisClient.Close()
	}

	var publisher services.Publisher
	if srvCfg.KafkaBrokers != "" {
		kp := events.NewKafkaPublisher(srvCfg.KafkaBrokers)
		defer kp.Close()
		publisher = kp
	}

	metrics.Register(prometheus.DefaultRegisterer)

	// Services
	credsResolver := credentials.NewResolver()
	walletClient := wallet.NewClient()
	api := gameapi.New()

	providerService := services.NewProviderService(db, credsResolver, walletClient, publisher, zlog)
	launchService := services.NewLaunchService(db, credsResolver, walletClient, api, redisClient, zlog)

	providerHandler := handlers.NewProviderHandler(providerService, zlog)
	launchHandler := handlers.NewLaunchHandler(launchService, zlog)

	// Router
	r := chi.NewRouter()

	r.Use(mW.SecurityHeaders)
	r.Use(mW.RequestLogger(zlog))
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(chimw.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "secret-key"},
		MaxAge:         86400,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "unhealthy"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:"+srvCfg.HTTPPort+"/swagger/doc.json"),
	))

	r.Route("/aix", func(r chi.Router) {
		r.Route("/in", func(r chi.Router) {
			r.Post("/play", launchHandler.Play)
			r.Post("/visual", launchHandler.Visual)
			r.Get("/play/qr/{token}", launchHandler.PlayQR)
		})
		r.Route("/prov", func(r chi.Router) {
			r.Post("/balance", providerHandler.Balance)
			r.Post("/debit", providerHandler.Debit)
			r.Post("/credit", providerHandler.Credit)
		})
	})

	server := &http.Server{
		Addr:         ":" + srvCfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  srvCfg.ReadTimeout,
		WriteTimeout: srvCfg.WriteTimeout,
		IdleTimeout:  srvCfg.IdleTimeout,
	}

	go func() {
		zlog.Info("server starting", zap.String("port", srvCfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zlog.Fatal("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server stopped")
}
