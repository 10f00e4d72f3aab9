package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog/log"

	"github.com/dernier-metro/dernier-metro/pkg/apilog"
	"github.com/dernier-metro/dernier-metro/pkg/metrics"
)

// NewLogger logs every request through zerolog, feeds the request metrics and
// optionally persists an api_logs entry.
func NewLogger(recorder apilog.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		startTime := time.Now()
		err = c.Next()

		msg := "HTTP Request"
		if err != nil {
			msg = err.Error()
		}

		code := c.Response().StatusCode()
		latency := time.Since(startTime)

		requestLogger := log.With().
			Int("status", code).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("ip", c.IP()).
			Str("latency", latency.String()).
			Str("user-agent", c.Get(fiber.HeaderUserAgent)).
			Logger()

		switch {
		case code >= fiber.StatusBadRequest && code < fiber.StatusInternalServerError:
			requestLogger.Warn().Msg(msg)
		case code >= http.StatusInternalServerError:
			requestLogger.Error().Msg(msg)
		default:
			requestLogger.Info().Msg(msg)
		}

		// Unmatched paths collapse into the catch-all route, keeping the
		// label set bounded
		metrics.ObserveRequest(c.Method(), c.Route().Path, code, latency)

		if recorder != nil {
			// Every string taken from the context aliases a fasthttp buffer
			// that is recycled once the handler returns, so everything handed
			// to the goroutine must be deep copied first
			entry := apilog.Entry{
				Method:      utils.CopyString(c.Method()),
				Path:        utils.CopyString(c.Path()),
				StatusCode:  code,
				DurationMS:  latency.Milliseconds(),
				UserAgent:   utils.CopyString(c.Get(fiber.HeaderUserAgent)),
				IPAddress:   utils.CopyString(c.IP()),
				QueryParams: map[string]string{},
			}
			for key, value := range c.Queries() {
				entry.QueryParams[utils.CopyString(key)] = utils.CopyString(value)
			}
			if code >= fiber.StatusBadRequest {
				entry.Response = append([]byte(nil), c.Response().Body()...)
			}

			// Fire and forget so a slow insert never delays a response
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				if err := recorder.Record(ctx, entry); err != nil {
					log.Error().Err(err).Msg("Failed to record API request")
				}
			}()
		}

		return nil
	}
}
