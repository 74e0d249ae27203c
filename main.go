package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/jmac122/OSRS-Dashboard/internal/catalog"
	"github.com/jmac122/OSRS-Dashboard/internal/config"
	"github.com/jmac122/OSRS-Dashboard/internal/httpmw"
	"github.com/jmac122/OSRS-Dashboard/internal/overrides"
	"github.com/jmac122/OSRS-Dashboard/internal/prices"
	"github.com/jmac122/OSRS-Dashboard/internal/server"
	"github.com/jmac122/OSRS-Dashboard/internal/slayer"
	"github.com/jmac122/OSRS-Dashboard/internal/telemetry"

	"github.com/gorilla/mux"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("loaded environment from .env")
	}
	cfg := config.FromEnv()

	app, err := buildApp(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}

	router := mux.NewRouter()
	rr := &server.RouteRegistry{}
	server.RegisterAPIRoutes(router, rr, app)

	handler := httpmw.Chain(router,
		httpmw.WithRequestID,
		httpmw.WithRecover(nil),
		httpmw.WithAccessLog(nil),
	)
	handler = cors.New(cors.Options{
		AllowedOrigins: strings.Split(cfg.AllowOrigins, ","),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
	}).Handler(handler)

	addr := ":" + cfg.Port
	fmt.Printf("gp tracker listening on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}

func buildApp(ctx context.Context, cfg config.Tuning) (*server.App, error) {
	var cat catalog.Repo
	if cfg.CatalogDir != "" {
		repo, err := catalog.NewFileRepo(cfg.CatalogDir)
		if err != nil {
			return nil, err
		}
		log.Printf("catalog loaded from %s", cfg.CatalogDir)
		cat = repo
	} else {
		repo := catalog.NewMemoryRepo()
		if err := catalog.Seed(ctx, repo); err != nil {
			return nil, err
		}
		log.Println("catalog seeded from built-in data")
		cat = repo
	}

	oracle := prices.NewWikiClient(cfg.PriceBaseURL,
		prices.WithUserAgent(cfg.UserAgent),
		prices.WithTimeout(cfg.PriceTimeout),
		prices.WithCacheTTL(cfg.PriceCacheTTL),
	)

	var store server.OverrideStore
	if cfg.OverridesDB != "" {
		repo, err := overrides.OpenSQLite(cfg.OverridesDB)
		if err != nil {
			return nil, err
		}
		log.Printf("override store at %s", cfg.OverridesDB)
		store = repo
	} else {
		store = overrides.NewMemoryRepo()
	}

	engine := &slayer.Engine{
		Catalog: cat,
		Prices:  oracle,
		Tuning:  cfg,
	}

	return &server.App{
		Engine:    engine,
		Catalog:   cat,
		Prices:    oracle,
		Overrides: store,
		Events:    telemetry.NewMemoryRepository(),
	}, nil
}
