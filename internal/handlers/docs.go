package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/namefreezers/forecast-qr-api/internal/docs"
)

const (
	specJSONPath = "/swagger/v1/swagger.json"
	specYAMLPath = "/swagger/v1/swagger.yaml"
	docsUIPath   = "/swagger/index.html"
)

// RegisterDocs mounts the OpenAPI document and the Swagger UI page on r.
// Everything is rendered once up front.
func RegisterDocs(r gin.IRoutes, title, version string) error {
	doc, err := docs.Build(title, version)
	if err != nil {
		return fmt.Errorf("build openapi document: %w", err)
	}
	specJSON, err := doc.JSON()
	if err != nil {
		return fmt.Errorf("render openapi json: %w", err)
	}
	specYAML, err := doc.YAML()
	if err != nil {
		return fmt.Errorf("render openapi yaml: %w", err)
	}
	page, err := docs.UIPage(title, specJSONPath)
	if err != nil {
		return fmt.Errorf("render swagger ui: %w", err)
	}

	r.GET(specJSONPath, func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", specJSON)
	})
	r.GET(specYAMLPath, func(c *gin.Context) {
		c.Data(http.StatusOK, "application/yaml; charset=utf-8", specYAML)
	})
	r.GET(docsUIPath, func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	})
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, docsUIPath)
	})
	return nil
}

// HealthHandler handles GET /health
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
