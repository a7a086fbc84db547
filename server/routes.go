package main

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/meikuraledutech/pipecheck"
	"github.com/meikuraledutech/pipecheck/internal/config"
	"github.com/meikuraledutech/pipecheck/internal/logger"
	"github.com/meikuraledutech/pipecheck/internal/metrics"
)

// formField is the form field the editor posts the serialized pipeline in.
const formField = "pipeline"

type handler struct {
	limits  pipecheck.Limits
	metrics *metrics.Recorder
}

// newApp wires middleware and routes. gatherer backs GET /metrics.
func newApp(cfg config.Config, rec *metrics.Recorder, gatherer prometheus.Gatherer) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "pipecheck",
		BodyLimit: cfg.BodyLimit,
	})

	app.Use(recoverer.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodOptions},
	}))

	h := &handler{
		limits:  limitsFrom(cfg),
		metrics: rec,
	}

	// ── Plumbing ──────────────────────────────────────────────────────
	app.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"Ping": "Pong"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// ── Pipelines ─────────────────────────────────────────────────────
	app.Post("/pipelines/parse", h.analyze("parse", false))
	app.Post("/pipelines/validate", h.analyze("validate", true))

	return app
}

func limitsFrom(cfg config.Config) pipecheck.Limits {
	return pipecheck.Limits{MaxNodes: cfg.MaxNodes, MaxEdges: cfg.MaxEdges}
}

func (h *handler) analyze(operation string, extended bool) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		reqID := requestid.FromContext(c)

		raw, err := payload(c)
		if err != nil {
			return h.reject(c, operation, reqID, err)
		}
		g, err := pipecheck.Parse(raw, h.limits)
		if err != nil {
			return h.reject(c, operation, reqID, err)
		}

		res := pipecheck.Analyze(g, extended)
		elapsed := time.Since(start)
		h.metrics.Accepted(operation, elapsed, res.NumNodes, res.NumEdges)
		logger.Debug("pipeline analysed",
			"request_id", reqID,
			"operation", operation,
			"nodes", res.NumNodes,
			"edges", res.NumEdges,
			"is_dag", res.IsDAG,
			"elapsed", elapsed,
		)
		return c.JSON(res)
	}
}

// payload returns the pipeline JSON from a raw JSON body or the form field.
func payload(c fiber.Ctx) ([]byte, error) {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		return c.Body(), nil
	}
	raw := c.FormValue(formField)
	if raw == "" {
		return nil, &pipecheck.InputError{
			Err:    pipecheck.ErrMalformedInput,
			Field:  formField,
			Detail: "missing form field",
		}
	}
	return []byte(raw), nil
}

func (h *handler) reject(c fiber.Ctx, operation, reqID string, err error) error {
	var ie *pipecheck.InputError
	if !errors.As(err, &ie) {
		return err
	}
	h.metrics.Rejected(operation)
	logger.Info("pipeline rejected", "request_id", reqID, "operation", operation, "err", err)

	body := fiber.Map{"error": ie.Kind(), "message": ie.Error()}
	if ie.Field != "" {
		body["field"] = ie.Field
	}
	if ie.ID != "" {
		body["id"] = ie.ID
	}
	return c.Status(statusFor(err)).JSON(body)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, pipecheck.ErrTooLarge):
		return fiber.StatusRequestEntityTooLarge
	case errors.Is(err, pipecheck.ErrDuplicateNodeID), errors.Is(err, pipecheck.ErrUnknownNodeReference):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusBadRequest
	}
}
