package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/trace"

	_ "cafebot/docs"
	"cafebot/pkg/cart"
	"cafebot/pkg/cart/memory"
	cartpg "cafebot/pkg/cart/postgres"
	"cafebot/pkg/catalog"
	"cafebot/pkg/config"
	"cafebot/pkg/logger"
	"cafebot/pkg/otel"
)

var (
	cfg         config.Config
	log         *logger.Logger
	tracer      trace.Tracer
	redisClient *redis.Client
	carts       cart.Store
	menu        *catalog.File
)

// @title Cafebot API
// @version 1.0
// @description Conversational cafe ordering backend: menu, per-user carts, cafe info
// @host localhost:8443
// @BasePath /
func main() {
	cfg = config.Load()
	log = logger.New(os.Stdout, parseLevel(cfg.LogLevel), "cafebot", otel.GetTraceID)
	ctx := context.Background()

	tp, shutdown, err := otel.InitTracing(log, otel.Config{ServiceName: "cafebot", Host: cfg.OtelHost, Probability: 1.0})
	if err != nil {
		log.Error(ctx, "init tracing", "error", err)
		os.Exit(1)
	}
	defer shutdown(context.Background())
	tracer = tp.Tracer("cafebot")

	menu = catalog.NewFile(cfg.MenuPath)

	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error(ctx, "db connect", "error", err)
			os.Exit(1)
		}
		if _, err := db.Exec(cartpg.Schema); err != nil {
			log.Error(ctx, "create tables", "error", err)
			os.Exit(1)
		}
		carts = cartpg.New(db, cfg.MaxCartItems)
		log.Info(ctx, "cart store", "backend", "postgres")
	} else {
		carts = memory.New(cfg.MaxCartItems)
		log.Info(ctx, "cart store", "backend", "memory")
	}

	redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	r := mux.NewRouter()
	r.Use(traceMiddleware)
	r.HandleFunc("/login", loginHandler).Methods(http.MethodPost)
	r.HandleFunc("/healthz", healthHandler).Methods(http.MethodGet)
	r.HandleFunc("/menu", menuHandler).Methods(http.MethodGet)
	r.HandleFunc("/menu/items/{id}", menuItemHandler).Methods(http.MethodGet)
	r.HandleFunc("/info", infoHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/cart").Subrouter()
	api.Use(authMiddleware)
	api.HandleFunc("", getCartHandler).Methods(http.MethodGet)
	api.HandleFunc("", clearCartHandler).Methods(http.MethodDelete)
	api.HandleFunc("/items", addItemHandler).Methods(http.MethodPost)
	api.HandleFunc("/items/{id}", updateItemHandler).Methods(http.MethodPut)
	api.HandleFunc("/items/{id}", removeItemHandler).Methods(http.MethodDelete)

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	log.Info(ctx, "listening", "addr", cfg.HTTPAddr)
	if err := http.ListenAndServeTLS(cfg.HTTPAddr, cfg.TLSCert, cfg.TLSKey, r); err != nil {
		log.Error(ctx, "server closed", "error", err)
	}
}

func parseLevel(lvl string) logger.Level {
	switch lvl {
	case "debug":
		return logger.LevelDebug
	case "warn":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

func traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.InjectTracing(r.Context(), tracer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
