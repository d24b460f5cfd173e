package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/namefreezers/forecast-qr-api/internal/config"
	"github.com/namefreezers/forecast-qr-api/internal/forecast"
	"github.com/namefreezers/forecast-qr-api/internal/middleware"
	"github.com/namefreezers/forecast-qr-api/internal/qrcode"
)

// APITitle and APIVersion label the generated OpenAPI document.
const (
	APITitle   = "Forecast & QR API"
	APIVersion = "v1"
)

// Deps are the collaborators the router wires into its handlers.
// Now and Rand default to time.Now and forecast.NewRand.
type Deps struct {
	Config    *config.Config
	Logger    *zap.Logger
	Generator qrcode.Generator
	Now       func() time.Time
	Rand      RandFunc
}

// NewRouter builds the Gin engine with its middleware chain and routes.
// The HTTPS redirect runs after logging and tracing.
func NewRouter(d Deps) (*gin.Engine, error) {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Rand == nil {
		d.Rand = forecast.NewRand
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(d.Logger),
		middleware.Tracing(d.Config.ServiceName),
	)
	if d.Config.HTTPSPort != "" {
		router.Use(middleware.HTTPSRedirect(d.Config.HTTPSPort))
	}

	router.GET("/weatherforecast", ForecastHandler(d.Now, d.Rand))
	router.GET("/GenerateQRCode", QRCodeHandler(d.Generator, d.Logger))
	router.GET("/health", HealthHandler)

	if d.Config.DocsEnabled() {
		if err := RegisterDocs(router, APITitle, APIVersion); err != nil {
			return nil, err
		}
	}
	return router, nil
}
