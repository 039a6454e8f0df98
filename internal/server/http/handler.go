// FILE: internal/server/http/handler.go
package http

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/AbhishekSingh2002/Gaming-Leaderboard/internal/server/core"
	"github.com/AbhishekSingh2002/Gaming-Leaderboard/internal/server/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const rateLimitRate = 50 // req/sec

// HTTPHandler handles HTTP requests and routes them to the service
type HTTPHandler struct {
	svc         *service.Service
	defaultTopN int64
}

func NewHTTPHandler(svc *service.Service, defaultTopN int64) *HTTPHandler {
	return &HTTPHandler{svc: svc, defaultTopN: defaultTopN}
}

func NewFiberApp(svc *service.Service, defaultTopN int64, devMode bool) *fiber.App {
	// Create handler
	h := NewHTTPHandler(svc, defaultTopN)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	// Global middleware (order matters)
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	app.Use(requestID)

	// Health check (no rate limit)
	app.Get("/health", h.Health)

	// Leaderboard routes
	api := app.Group("/api/leaderboard")

	maxReq := rateLimitRate
	if devMode {
		maxReq = rateLimitRate * 2
	}
	api.Use(limiter.New(limiter.Config{
		Max:        maxReq,
		Expiration: 1 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			if xff := c.Get("X-Forwarded-For"); xff != "" {
				if idx := strings.Index(xff, ","); idx != -1 {
					return strings.TrimSpace(xff[:idx])
				}
				return xff
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(core.ErrorResponse{
				Error:   "rate limit exceeded",
				Code:    core.ErrCodeRateLimitExceeded,
				Details: fmt.Sprintf("%d requests per second allowed", maxReq),
			})
		},
	}))

	// Content-Type validation for POST requests
	api.Use(contentTypeValidator)

	// Middleware validation for request bodies
	api.Use(validationMiddleware)

	api.Post("/submit", h.SubmitScore)
	api.Get("/top", h.GetTop)
	api.Get("/rank/:competitorId", h.GetRank)
	api.Post("/competitors", h.CreateCompetitor)

	return app
}

// customErrorHandler provides consistent error responses
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	response := core.ErrorResponse{
		Error: "internal server error",
		Code:  core.ErrCodeInternalError,
	}

	// Check if it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		response.Error = e.Message

		// Map HTTP status to error codes
		switch code {
		case fiber.StatusNotFound:
			response.Code = core.ErrCodeCompetitorNotFound
		case fiber.StatusBadRequest:
			response.Code = core.ErrCodeInvalidRequest
		case fiber.StatusTooManyRequests:
			response.Code = core.ErrCodeRateLimitExceeded
		}
	}

	return c.Status(code).JSON(response)
}

// serviceError maps service errors to HTTP responses
func serviceError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrCompetitorNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, core.ErrCompetitorExists):
		status = fiber.StatusConflict
	case errors.Is(err, core.ErrInvalidScore), errors.Is(err, core.ErrInvalidLimit):
		status = fiber.StatusBadRequest
	case errors.Is(err, core.ErrStoreUnavailable):
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(core.ErrorResponse{
		Error: err.Error(),
		Code:  core.CodeFor(err),
	})
}

// Health check endpoint with storage status
func (h *HTTPHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"time":    time.Now().Unix(),
		"storage": h.svc.GetStorageHealth(),
	})
}

// SubmitScore accepts one score submission for a registered competitor
func (h *HTTPHandler) SubmitScore(c *fiber.Ctx) error {
	req, ok := validatedBody[*core.SubmitScoreRequest](c)
	if !ok {
		return validationMissing(c)
	}

	result, err := h.svc.Submit(c.UserContext(), req.CompetitorID, req.Score, req.Mode)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"data":   result,
		"source": core.OriginStore,
	})
}

// GetTop returns the current top-N ranked view
func (h *HTTPHandler) GetTop(c *fiber.Ctx) error {
	limit := h.defaultTopN
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
				Error:   "invalid limit",
				Code:    core.ErrCodeInvalidLimit,
				Details: "limit must be an integer",
			})
		}
		limit = parsed
	}

	entries, origin, err := h.svc.TopN(c.UserContext(), limit)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"data":   entries,
		"source": origin,
	})
}

// GetRank returns one competitor's rank, provisioning unknown competitors
func (h *HTTPHandler) GetRank(c *fiber.Ctx) error {
	competitorID := c.Params("competitorId")
	if competitorID == "" || len(competitorID) > 64 {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid competitor id",
			Code:    core.ErrCodeInvalidRequest,
			Details: "competitor id must be 1-64 characters",
		})
	}

	entry, origin, err := h.svc.RankOf(c.UserContext(), competitorID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"data":   entry,
		"source": origin,
	})
}

// CreateCompetitor registers a competitor
func (h *HTTPHandler) CreateCompetitor(c *fiber.Ctx) error {
	req, ok := validatedBody[*core.CreateCompetitorRequest](c)
	if !ok {
		return validationMissing(c)
	}

	competitor, err := h.svc.RegisterCompetitor(c.UserContext(), req.CompetitorID, req.DisplayName)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": competitor,
	})
}
