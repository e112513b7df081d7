package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	fibercors "github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/seu-repo/lapeco-hr/pkg/config"
)

var (
	corsMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-ID", RequesterHeader}
	// Content-Disposition carries the report filename to browser clients.
	corsExposed = []string{"Content-Length", "Content-Disposition", "X-Request-ID"}
)

const corsMaxAge = 86400

// NewCORS builds the CORS middleware. Empty config lists fall back to the
// package defaults.
func NewCORS(cfg config.CORSConfig) fiber.Handler {
	return fibercors.New(corsConfig(cfg))
}

func corsConfig(cfg config.CORSConfig) fibercors.Config {
	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = corsMaxAge
	}
	return fibercors.Config{
		AllowOrigins:     joinOr(cfg.AllowedOrigins, []string{"*"}),
		AllowMethods:     joinOr(cfg.AllowedMethods, corsMethods),
		AllowHeaders:     joinOr(cfg.AllowedHeaders, corsHeaders),
		ExposeHeaders:    joinOr(cfg.ExposeHeaders, corsExposed),
		AllowCredentials: cfg.Credentials,
		MaxAge:           maxAge,
	}
}

func joinOr(values, fallback []string) string {
	if len(values) == 0 {
		values = fallback
	}
	return strings.Join(values, ",")
}
