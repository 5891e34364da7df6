package http

import (
	"crypto/subtle"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"

	"github.com/jhoicas/inventory-service/internal/application/dto"
	"github.com/jhoicas/inventory-service/pkg/logger"
)

// Headers y Locals usados por los middlewares.
const (
	HeaderAPIKey    = "X-API-KEY"
	HeaderRequestID = "X-Request-ID"
	LocalRequestID  = "request_id"
)

// APIKeyMiddleware exige X-API-KEY igual a apiKey. Con apiKey vacía no valida nada.
func APIKeyMiddleware(apiKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if apiKey == "" {
			return c.Next()
		}
		got := c.Get(HeaderAPIKey)
		if got == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_API_KEY", Message: HeaderAPIKey + " requerido"})
		}
		if subtle.ConstantTimeCompare([]byte(got), []byte(apiKey)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_API_KEY", Message: "api key inválida"})
		}
		return c.Next()
	}
}

// UseBaseMiddlewares registra RequestLogger y luego recover, así un panic queda en el log como 500.
func UseBaseMiddlewares(app *fiber.App, log *logger.Logger) {
	app.Use(RequestLogger(log))
	app.Use(recover.New())
}

// RequestLogger asigna X-Request-ID (lo respeta si viene del cliente) y escribe una línea de log por request.
func RequestLogger(log *logger.Logger) fiber.Handler {
	httpLog := log.Named("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := c.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Locals(LocalRequestID, requestID)
		c.Set(HeaderRequestID, requestID)

		chainErr := c.Next()
		if chainErr != nil {
			// Deja que el ErrorHandler de Fiber escriba la respuesta antes de leer el status
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		event := httpLog.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			event = httpLog.Error()
		case status >= fiber.StatusBadRequest:
			event = httpLog.Warn()
		}
		if err, ok := c.Locals(LocalError).(error); ok {
			event = event.Err(err)
		} else if chainErr != nil {
			event = event.Err(chainErr)
		}
		event.
			Str("requestId", requestID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
		return nil
	}
}

// GetRequestID devuelve el request id asignado por RequestLogger.
func GetRequestID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRequestID).(string)
	return s
}
