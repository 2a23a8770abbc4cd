// Command fakeapi serves the in-memory storefront backend over HTTP, for
// running the client and the MCP server against a local stand-in.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/usagi-tienda/storefront-go/internal/fakeapi"
	"github.com/usagi-tienda/storefront-go/internal/logging"
)

// ServeConfig holds the command line settings
type ServeConfig struct {
	Addr              string
	LogLevel          string
	Disable           []string
	RequireFieldValue bool
	Seed              bool
	AdminEmail        string
	AdminPassword     string
}

func main() {
	config := parseFlags()

	logger := logging.New(config.LogLevel, os.Stderr).Zerolog()

	api := newServer(config, logger)
	server := &http.Server{
		Addr:              config.Addr,
		Handler:           withCORS(api.Handler()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info().Str("addr", config.Addr).Strs("disabled", config.Disable).Msg("Fake backend listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
	}
	logger.Info().Int("hits", api.TotalHits()).Msg("Fake backend stopped")
}

func parseFlags() *ServeConfig {
	config := &ServeConfig{}

	flag.StringVar(&config.Addr, "addr", ":8090", "Listen address")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level")
	flag.BoolVar(&config.RequireFieldValue, "field-value", false, "Make login require field_value instead of email")
	flag.BoolVar(&config.Seed, "seed", true, "Load a small sample catalog")
	flag.StringVar(&config.AdminEmail, "admin-email", "admin@usagi.cl", "Email of the seeded admin user")
	flag.StringVar(&config.AdminPassword, "admin-password", "admin", "Password of the seeded admin user")

	// Parse disabled paths
	disable := flag.String("disable", "", "Comma-separated paths that answer 404, e.g. /cart,/order_item")

	flag.Parse()

	for _, p := range strings.Split(*disable, ",") {
		if p = strings.TrimSpace(p); p != "" {
			config.Disable = append(config.Disable, p)
		}
	}
	return config
}

// newServer builds the fake backend and applies the configured knobs
func newServer(config *ServeConfig, logger zerolog.Logger) *fakeapi.Server {
	api := fakeapi.New(fakeapi.Options{
		Logger:            logger,
		RequireFieldValue: config.RequireFieldValue,
	})
	api.Disable(config.Disable...)

	if config.Seed {
		api.AddUser(map[string]interface{}{
			"email":    config.AdminEmail,
			"password": config.AdminPassword,
			"role":     "admin",
		})
		api.AddProduct(map[string]interface{}{"name": "Mochi", "price": 1200, "stock": 20, "category": "dulces", "image": "/vault/mochi.png"})
		api.AddProduct(map[string]interface{}{"name": "Taiyaki", "price": 1500, "stock": 12, "category": "dulces"})
		api.AddProduct(map[string]interface{}{"name": "Ramen instantáneo", "price": 4500, "stock": 8, "category": "salados"})
	}
	return api
}

// withCORS lets a browser storefront on another origin call the fake
func withCORS(h http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"Retry-After"},
		MaxAge:         86400,
	})
	return c.Handler(h)
}
