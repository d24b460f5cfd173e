package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/namefreezers/forecast-qr-api/internal/middleware"
	"github.com/namefreezers/forecast-qr-api/internal/qrcode"
)

// qrCodeRequest defines the query parameters for GET /GenerateQRCode
type qrCodeRequest struct {
	Text string `form:"text" binding:"required"`
	Size int    `form:"size" binding:"omitempty,min=21,max=4096"`
}

// QRCodeHandler returns a Gin handler for GET /GenerateQRCode.
// The body is a JSON string holding a PNG data URI.
func QRCodeHandler(gen qrcode.Generator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1) Bind and validate the query parameters
		var req qrCodeRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			// 400 Invalid request
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// 2) Render the PNG
		png, err := gen.Generate(c.Request.Context(), req.Text)
		if err == nil && req.Size > 0 {
			png, err = qrcode.Resize(png, req.Size)
		}
		if err != nil {
			logger.Error("qr generation failed",
				zap.Int("textLength", len(req.Text)),
				zap.Int("size", req.Size),
				zap.String("requestID", middleware.GetRequestID(c)),
				zap.Error(err))
			_ = c.Error(err)
			// 500 Encoding failed (e.g. text over QR capacity)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate QR code"})
			return
		}

		// 3) 200 Successful operation
		c.JSON(http.StatusOK, qrcode.DataURI(png))
	}
}
