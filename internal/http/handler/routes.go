package handler

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docverify/internal/http/middleware"
	"docverify/internal/service"
	"docverify/internal/verification"
)

// DocumentIDHeader carries the id assigned to a verification, for log correlation.
const DocumentIDHeader = "X-Document-ID"

// RouteOptions carries the values the routes need from startup.
type RouteOptions struct {
	// APIKey is the key clients must send in X-API-Key. Empty means the
	// server is misconfigured and /verify answers 500.
	APIKey         string
	ServiceName    string
	ServiceVersion string
	// Gatherer backs GET /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, svc service.VerificationService, opts RouteOptions) {
	app.Get("/", ServiceInfo(opts.ServiceName, opts.ServiceVersion))
	app.Get("/health", HealthCheck())

	if opts.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	app.Post("/verify", middleware.APIKey(opts.APIKey, denyAPIKey), VerifyDocument(svc))
}

// ServiceInfo godoc
// @Summary Service information
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func ServiceInfo(name, version string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": name,
			"version": version,
			"status":  "operational",
		})
	}
}

// HealthCheck godoc
// @Summary Liveness probe
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func HealthCheck() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	}
}

// VerifyDocument godoc
// @Summary Verify an uploaded document
// @Tags verification
// @Accept multipart/form-data
// @Produce json
// @Param X-API-Key header string true "API key"
// @Param file formData file true "Document (application/pdf, image/jpeg or image/png, at most 10 MiB)"
// @Success 200 {object} model.VerificationVerdict
// @Failure 400 {object} errorPayload
// @Failure 401 {object} errorPayload
// @Failure 413 {object} errorPayload
// @Failure 415 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /verify [post]
func VerifyDocument(svc service.VerificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		// One byte past the ceiling is enough for the pipeline to report the file as too large.
		content, err := io.ReadAll(io.LimitReader(f, verification.MaxSizeBytes+1))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_READ_ERROR", "cannot read uploaded file")
		}

		res, err := svc.Verify(c.UserContext(), content, fh.Filename, fh.Header.Get("Content-Type"))
		if err != nil {
			return writeVerificationError(c, err)
		}

		c.Set(DocumentIDHeader, res.DocumentID)
		return c.JSON(res.Verdict)
	}
}
