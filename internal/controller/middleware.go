package controller

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo"
)

// requestLogger tags each request with an id and logs it when done. Handler
// errors, which respondError only returns for internal failures, are logged at
// Error.
func requestLogger(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqId := c.Request().Header.Get(echo.HeaderXRequestID)
			if reqId == "" {
				reqId = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, reqId)

			err := next(c)

			attrs := []any{
				slog.String("request_id", reqId),
				slog.String("method", c.Request().Method),
				slog.String("path", c.Path()),
				slog.Int("status", c.Response().Status),
				slog.Duration("latency", time.Since(start)),
			}
			if err != nil {
				log.Error("request failed", append(attrs, slog.Any("error", err))...)
				return err
			}

			log.Info("request", attrs...)
			return nil
		}
	}
}

func recoverPanic(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Error("panic recovered", slog.Any("panic", r), slog.String("path", c.Path()))
					if !c.Response().Committed {
						_ = c.JSON(http.StatusInternalServerError, errorResponse{"Internal error"})
					}
					err = fmt.Errorf("panic: %v", r)
				}
			}()

			return next(c)
		}
	}
}
