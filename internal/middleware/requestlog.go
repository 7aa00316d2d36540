package middleware

import (
	"time" // request latency

	"github.com/labstack/echo/v4"    // Echo middleware types
	log "github.com/sirupsen/logrus" // one structured line per request
)

// RequestLogger writes one structured line per request.  Server errors are
// logged at error level, client errors at warn level.
func RequestLogger(logger log.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// let echo write the response so the status below is final
				c.Error(err)
			}

			req, res := c.Request(), c.Response()
			entry := logger.WithFields(log.Fields{
				"request_id": res.Header().Get(echo.HeaderXRequestID),
				"method":     req.Method,
				"path":       c.Path(),
				"uri":        req.RequestURI,
				"status":     res.Status,
				"latency_ms": time.Since(start).Milliseconds(),
				"operator":   Operator(c),
			})
			switch {
			case res.Status >= 500:
				entry.WithError(err).Error("request failed")
			case res.Status >= 400:
				entry.Warn("request rejected")
			default:
				entry.Info("request")
			}
			return nil
		}
	}
}
