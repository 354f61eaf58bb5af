// Package router provides HTTP routing, middleware configuration, and server setup for the web application
package router

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"os"
	"strings"
	"time"

	"github.com/brandscope-io/brandscope/app/dto"
	"github.com/brandscope-io/brandscope/app/handlers"
	"github.com/brandscope-io/brandscope/app/middleware"
	"github.com/brandscope-io/brandscope/config"
	_ "github.com/brandscope-io/brandscope/docs"
	"github.com/brandscope-io/brandscope/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cache"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	GetApp() *fiber.App
}

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app                   *fiber.App
	config                *config.ProductionConfig
	authHandler           handlers.AuthHandlerInterface
	brandHandler          handlers.BrandHandlerInterface
	icpHandler            handlers.ICPHandlerInterface
	marketDataHandler     handlers.MarketDataHandlerInterface
	recommendationHandler handlers.RecommendationHandlerInterface
	authMiddleware        *middleware.AuthMiddleware
}

// NewFiberRouter creates a new Fiber router
func NewFiberRouter(
	cfg *config.ProductionConfig,
	authHandler handlers.AuthHandlerInterface,
	brandHandler handlers.BrandHandlerInterface,
	icpHandler handlers.ICPHandlerInterface,
	marketDataHandler handlers.MarketDataHandlerInterface,
	recommendationHandler handlers.RecommendationHandlerInterface,
	authMiddleware *middleware.AuthMiddleware,
) Router {
	// Configure Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Brandscope API",
		ServerHeader: "Brandscope",
		ErrorHandler: errorHandler,
		BodyLimit:    cfg.Server.BodyLimit,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	return &FiberRouter{
		app:                   app,
		config:                cfg,
		authHandler:           authHandler,
		brandHandler:          brandHandler,
		icpHandler:            icpHandler,
		marketDataHandler:     marketDataHandler,
		recommendationHandler: recommendationHandler,
		authMiddleware:        authMiddleware,
	}
}

// SetupRoutes configures all application routes
func (r *FiberRouter) SetupRoutes() {
	log.Println("Setting up routes...")

	// Global middleware
	r.setupMiddleware()

	// Prometheus metrics endpoint outside the API group
	if r.config.Metrics.Enabled {
		r.app.Get(r.config.Metrics.Path, adaptor.HTTPHandler(promhttp.Handler()))
	}

	// API routes
	api := r.app.Group("/api/v1")

	// Health check route (no rate limiting)
	api.Get("/health", r.healthCheck)

	// API documentation routes (development only)
	if r.config.Deployment.Environment == "development" || r.config.Deployment.Environment == "local" {
		api.Get("/docs", r.getAPIDocumentation)
		api.Get("/swagger.json", r.serveSwaggerJSON)
		// Serve Swagger UI
		r.app.Get("/swagger", r.serveSwaggerUI)
		log.Println("API documentation enabled for development")
	}

	// Apply general rate limiting to all API routes
	api.Use(limiter.New(limiter.Config{
		Max:        r.config.Security.GlobalRateLimit,
		Expiration: r.config.Security.RateLimitWindow,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP() // Rate limit by IP
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.APIResponse{
				Success: false,
				Message: "Too many requests. Please try again later.",
				Error: dto.ErrorDetail{
					Code: "RATE_LIMIT_EXCEEDED",
				},
			})
		},
		Next: func(c fiber.Ctx) bool {
			// Skip rate limiting for health checks
			return c.Path() == "/api/v1/health"
		},
	}))

	// Auth routes with stricter rate limiting
	auth := api.Group("/auth")

	auth.Use(limiter.New(limiter.Config{
		Max:        r.config.Security.AuthRateLimit,
		Expiration: r.config.Security.RateLimitWindow,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP() // Rate limit by IP
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.APIResponse{
				Success: false,
				Message: "Too many requests. Please try again later.",
				Error: dto.ErrorDetail{
					Code: "RATE_LIMIT_EXCEEDED",
				},
			})
		},
	}))

	// Auth endpoints
	auth.Post("/captcha", r.authHandler.InitCaptcha)
	auth.Post("/login", r.authHandler.Login)
	auth.Post("/refresh", r.authHandler.RefreshToken)

	authenticated := r.authMiddleware.Authenticate()

	// Brand configuration endpoints
	brand := api.Group("/brand", authenticated)
	brand.Get("/", r.brandHandler.GetBrand)
	brand.Put("/", r.brandHandler.SaveBrand)
	brand.Post("/describe", r.brandHandler.DescribeBrand)

	// ICP persona endpoints
	icps := api.Group("/icps", authenticated)
	icps.Get("/", r.icpHandler.ListICPs)
	icps.Post("/", r.icpHandler.CreateICP)
	icps.Post("/suggest", r.icpHandler.SuggestICPs)
	icps.Put("/:name", r.icpHandler.UpdateICP)
	icps.Delete("/:name", r.icpHandler.DeleteICP)
	icps.Delete("/", r.icpHandler.DeleteAllICPs)

	// Market data endpoints
	marketData := api.Group("/market-data", authenticated)
	marketData.Get("/status", r.marketDataHandler.GetStatus)
	marketData.Post("/domains/import", r.marketDataHandler.ImportDomains)
	marketData.Post("/chats/import", r.marketDataHandler.ImportChats)
	marketData.Get("/domains", r.marketDataHandler.ListDomains)
	marketData.Get("/chats", r.marketDataHandler.ListChats)
	marketData.Delete("/domains", r.marketDataHandler.ClearDomains)
	marketData.Delete("/chats", r.marketDataHandler.ClearChats)

	// Recommendation pipeline endpoints
	recommendations := api.Group("/recommendations", authenticated)
	recommendations.Post("/generate", r.recommendationHandler.Generate)
	recommendations.Get("/latest", r.recommendationHandler.GetLatest)
	recommendations.Get("/sessions", r.recommendationHandler.ListSessions)
	recommendations.Get("/sessions/:id", r.recommendationHandler.GetSession)
	recommendations.Get("/sessions/:id/export", r.recommendationHandler.ExportSession)
	recommendations.Get("/debug/logs", r.recommendationHandler.GetDebugLogs)
	recommendations.Delete("/debug/logs", r.recommendationHandler.ClearDebugLogs)

	// Not found handler
	r.app.Use(r.notFoundHandler)

	log.Println("Routes configured successfully")
}

// SetupMiddleware configures global middleware
func (r *FiberRouter) setupMiddleware() {
	// Request ID middleware - must be first
	r.app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return generateRequestID()
		},
	}))

	// Security headers middleware
	r.app.Use(helmet.New(helmet.Config{
		XSSProtection:         r.config.Security.XSSProtection,
		ContentTypeNosniff:    r.config.Security.XContentTypeOptions,
		XFrameOptions:         r.config.Security.XFrameOptions,
		HSTSMaxAge:            r.config.Security.HSTSMaxAge,
		HSTSExcludeSubdomains: !r.config.Security.HSTSIncludeSubDoms,
		ContentSecurityPolicy: r.config.Security.CSPPolicy,
		ReferrerPolicy:        r.config.Security.ReferrerPolicy,
		XDNSPrefetchControl:   "off",
		XDownloadOptions:      "noopen",
		XPermittedCrossDomain: "none",
	}))

	// CORS middleware
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: r.config.Security.AllowedOrigins,
		AllowMethods: r.config.Security.AllowedMethods,
		AllowHeaders: r.config.Security.AllowedHeaders,
		ExposeHeaders: []string{
			"X-Request-ID",
			"X-Response-Time",
			"Content-Disposition",
		},
		AllowCredentials: r.config.Security.AllowCredentials,
		MaxAge:           r.config.Security.CORSMaxAge,
	}))

	// Compression middleware for performance
	if r.config.Server.EnableCompression {
		r.app.Use(compress.New(compress.Config{
			Level: compress.LevelBestSpeed,
			Next: func(c fiber.Ctx) bool {
				// XLSX exports are already deflate-compressed
				return strings.HasSuffix(c.Path(), "/export")
			},
		}))
	}

	// Cache middleware for the dev documentation endpoints
	r.app.Use(cache.New(cache.Config{
		Next: func(c fiber.Ctx) bool {
			return c.Method() != "GET" ||
				!contains(c.Path(), "/docs") &&
					!contains(c.Path(), "/swagger")
		},
		Expiration:   30 * time.Minute,
		CacheControl: true,
	}))

	// Structured request logging
	r.app.Use(logger.New(logger.Config{
		Format:     `{"time":"${time}","pid":"${pid}","request_id":"${locals:requestid}","level":"info","method":"${method}","path":"${path}","protocol":"${protocol}","ip":"${ip}","user_agent":"${ua}","status":${status},"latency":"${latency}","bytes_in":${bytesReceived},"bytes_out":${bytesSent},"referer":"${referer}"}` + "\n",
		TimeFormat: time.RFC3339,
		TimeZone:   "UTC",
		Next: func(c fiber.Ctx) bool {
			// Skip logging for health checks
			return c.Path() == "/api/v1/health"
		},
	}))

	// Prometheus request metrics
	if r.config.Metrics.Enabled {
		r.app.Use(middleware.Metrics())
	}

	// Response metadata headers
	r.app.Use(r.securityMiddleware)

	// Recovery middleware with custom error handling
	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			// Log panic with request context
			log.Printf(`{"time":"%s","level":"error","request_id":"%s","event":"panic","error":"%v","path":"%s","method":"%s","ip":"%s"}`,
				utils.UTCNow().Format(time.RFC3339),
				c.Locals("requestid"),
				e,
				c.Path(),
				c.Method(),
				c.IP(),
			)
		},
	}))
}

// securityMiddleware stamps response metadata headers
func (r *FiberRouter) securityMiddleware(c fiber.Ctx) error {
	c.Set("X-Response-Time", utils.UTCNow().Format(time.RFC3339))
	c.Set("Server", "Brandscope")

	return c.Next()
}

// Start starts the HTTP server
func (r *FiberRouter) Start(address string) error {
	log.Printf("Starting server on %s", address)
	return r.app.Listen(address)
}

// GetApp returns the Fiber app instance
func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}

// Health check endpoint
func (r *FiberRouter) healthCheck(c fiber.Ctx) error {
	return c.JSON(dto.APIResponse{
		Success: true,
		Message: "Service is healthy",
		Data: fiber.Map{
			"status":    "ok",
			"timestamp": utils.UTCNow().Unix(),
			"version":   r.config.Deployment.Version,
			"service":   "brandscope-api",
		},
	})
}

// API documentation endpoint
func (r *FiberRouter) getAPIDocumentation(c fiber.Ctx) error {
	docs := GetRouteDocumentation()
	return c.JSON(dto.APIResponse{
		Success: true,
		Message: "API documentation retrieved successfully",
		Data: fiber.Map{
			"title":       "Brandscope API Documentation",
			"version":     r.config.Deployment.Version,
			"description": "Brand marketing assistant API",
			"endpoints":   docs,
		},
	})
}

// Serve Swagger UI HTML page
func (r *FiberRouter) serveSwaggerUI(c fiber.Ctx) error {
	htmlContent := `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Brandscope API - Swagger UI</title>
    <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui.css" />
    <style>
        html {
            box-sizing: border-box;
            overflow: -moz-scrollbars-vertical;
            overflow-y: scroll;
        }
        *, *:before, *:after {
            box-sizing: inherit;
        }
        body {
            margin:0;
            background: #fafafa;
        }
    </style>
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui-bundle.js"></script>
    <script src="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui-standalone-preset.js"></script>
    <script>
        window.onload = function() {
            const ui = SwaggerUIBundle({
                url: '/api/v1/swagger.json',
                dom_id: '#swagger-ui',
                deepLinking: true,
                presets: [
                    SwaggerUIBundle.presets.apis,
                    SwaggerUIStandalonePreset
                ],
                plugins: [
                    SwaggerUIBundle.plugins.DownloadUrl
                ],
                layout: "StandaloneLayout",
                validatorUrl: null
            });
        };
    </script>
</body>
</html>`

	c.Set("Content-Type", "text/html")
	return c.SendString(htmlContent)
}

// Serve Swagger JSON specification
func (r *FiberRouter) serveSwaggerJSON(c fiber.Ctx) error {
	// Read the generated swagger.json file
	swaggerData, err := os.ReadFile("docs/swagger.json")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.APIResponse{
			Success: false,
			Message: "Failed to load Swagger documentation",
			Error: dto.ErrorDetail{
				Code: "SWAGGER_LOAD_ERROR",
			},
		})
	}

	c.Set("Content-Type", "application/json")
	return c.Send(swaggerData)
}

// Not found handler
func (r *FiberRouter) notFoundHandler(c fiber.Ctx) error {
	requestID := c.Locals("requestid")

	return c.Status(fiber.StatusNotFound).JSON(dto.APIResponse{
		Success: false,
		Message: "The requested resource was not found",
		Error: dto.ErrorDetail{
			Code: "NOT_FOUND",
			Details: fiber.Map{
				"path":       c.Path(),
				"method":     c.Method(),
				"request_id": requestID,
			},
		},
	})
}

// Global error handler
func errorHandler(c fiber.Ctx, err error) error {
	// Default error code
	code := fiber.StatusInternalServerError

	// Retrieve the custom status code if it's a fiber.*Error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	// Log the error
	log.Printf("Error %d: %v", code, err)

	// Get RequestID for tracing
	requestID := c.Locals("requestid")

	// Return JSON error response
	return c.Status(code).JSON(dto.APIResponse{
		Success: false,
		Message: "An internal server error occurred",
		Error: dto.ErrorDetail{
			Code: "INTERNAL_ERROR",
			Details: fiber.Map{
				"timestamp":  utils.UTCNow().Unix(),
				"request_id": requestID,
			},
		},
	})
}

// Helper functions

// generateRequestID creates a unique request ID
func generateRequestID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// contains checks if a string contains a substring
func contains(str, substr string) bool {
	return strings.Contains(str, substr)
}

// GetRouteDocumentation returns API documentation
func GetRouteDocumentation() []map[string]any {
	return []map[string]any{
		{
			"method":      "POST",
			"path":        "/api/v1/auth/captcha",
			"description": "Generate a rotate-captcha challenge for operator login",
			"parameters":  map[string]any{},
		},
		{
			"method":      "POST",
			"path":        "/api/v1/auth/login",
			"description": "Authenticate the operator with password and captcha answer",
			"parameters": map[string]any{
				"password":     "string (required) - Operator password",
				"challenge_id": "string (required) - Captcha challenge ID from /auth/captcha",
				"rotate_angle": "number (required) - Rotation angle submitted by the user",
			},
		},
		{
			"method":      "POST",
			"path":        "/api/v1/auth/refresh",
			"description": "Exchange a refresh token for a new token pair",
			"parameters": map[string]any{
				"refresh_token": "string (required) - Refresh token from login",
			},
		},
		{
			"method":      "GET",
			"path":        "/api/v1/brand",
			"description": "Retrieve the configured brand profile",
			"parameters":  map[string]any{},
		},
		{
			"method":      "PUT",
			"path":        "/api/v1/brand",
			"description": "Save the brand name and website URL",
			"parameters": map[string]any{
				"name":        "string (required) - Brand name",
				"website_url": "string (required) - Website URL starting with http:// or https://",
			},
		},
		{
			"method":      "POST",
			"path":        "/api/v1/brand/describe",
			"description": "Scrape the brand website and generate a description",
			"parameters": map[string]any{
				"name":        "string (required) - Brand name",
				"website_url": "string (required) - Website URL starting with http:// or https://",
			},
		},
		{
			"method":      "GET",
			"path":        "/api/v1/icps",
			"description": "List all ICP personas",
			"parameters":  map[string]any{},
		},
		{
			"method":      "POST",
			"path":        "/api/v1/icps",
			"description": "Create an ICP persona",
			"parameters": map[string]any{
				"name":       "string (required) - Persona name (unique)",
				"role":       "string (required) - Persona role",
				"goals":      "string (required) - Persona goals",
				"challenges": "string (required) - Persona challenges",
			},
		},
		{
			"method":      "POST",
			"path":        "/api/v1/icps/suggest",
			"description": "Generate persona drafts via the completion API",
			"parameters": map[string]any{
				"count": "number (optional) - Suggestions to generate (1-5, default 3)",
			},
		},
		{
			"method":      "GET",
			"path":        "/api/v1/market-data/status",
			"description": "Summarize stored market data",
			"parameters":  map[string]any{},
		},
		{
			"method":      "POST",
			"path":        "/api/v1/market-data/domains/import",
			"description": "Import a cited-domain spreadsheet (.csv or .xlsx)",
			"parameters": map[string]any{
				"file": "file (required) - Columns: Domain, Type, Used, Avg. Citations",
			},
		},
		{
			"method":      "POST",
			"path":        "/api/v1/market-data/chats/import",
			"description": "Import a chat-sample spreadsheet (.csv or .xlsx)",
			"parameters": map[string]any{
				"file": "file (required) - Columns: id, model, user, assistant",
			},
		},
		{
			"method":      "POST",
			"path":        "/api/v1/recommendations/generate",
			"description": "Run the two-stage recommendation pipeline",
			"parameters":  map[string]any{},
		},
		{
			"method":      "GET",
			"path":        "/api/v1/recommendations/latest",
			"description": "Retrieve the most recent recommendation session",
			"parameters":  map[string]any{},
		},
		{
			"method":      "GET",
			"path":        "/api/v1/recommendations/sessions/{id}/export",
			"description": "Download a session as an XLSX workbook",
			"parameters": map[string]any{
				"id": "number (required) - Session ID in URL path",
			},
		},
		{
			"method":      "GET",
			"path":        "/api/v1/health",
			"description": "Health check endpoint",
			"parameters":  map[string]any{},
		},
	}
}
