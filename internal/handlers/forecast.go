package handlers

import (
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/namefreezers/forecast-qr-api/internal/forecast"
)

// RandFunc supplies the random source for one request.
type RandFunc func() *rand.Rand

// ForecastHandler returns a Gin handler for GET /weatherforecast.
// Each request draws from its own generator, so concurrent requests share no state.
func ForecastHandler(now func() time.Time, newRand RandFunc) gin.HandlerFunc {
	tracer := otel.Tracer("forecast-qr-api/forecast")
	return func(c *gin.Context) {
		_, span := tracer.Start(c.Request.Context(), "forecast.generate")
		entries := forecast.Generate(newRand(), now(), forecast.DefaultDays)
		span.SetAttributes(attribute.Int("forecast.days", len(entries)))
		span.End()

		// 200 Successful operation
		c.JSON(http.StatusOK, entries)
	}
}
