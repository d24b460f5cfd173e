package handlers

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/makiuchi-d/gozxing"
	zxingqr "github.com/makiuchi-d/gozxing/qrcode"
	"go.uber.org/zap"

	"github.com/namefreezers/forecast-qr-api/internal/config"
	"github.com/namefreezers/forecast-qr-api/internal/forecast"
	"github.com/namefreezers/forecast-qr-api/internal/qrcode"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var fixedNow = time.Date(2025, time.December, 29, 10, 30, 0, 0, time.UTC)

func setupRouter(t *testing.T, cfg *config.Config, gen qrcode.Generator) *gin.Engine {
	t.Helper()
	if cfg.ServiceName == "" {
		cfg.ServiceName = "test"
	}
	if gen == nil {
		gen = qrcode.NewSkipGenerator(qrcode.DefaultPixelsPerModule)
	}
	r, err := NewRouter(Deps{
		Config:    cfg,
		Logger:    zap.NewNop(),
		Generator: gen,
		Now:       func() time.Time { return fixedNow },
		Rand:      func() *rand.Rand { return forecast.NewSeededRand(1) },
	})
	if err != nil {
		t.Fatalf("NewRouter() unexpected error: %v", err)
	}
	return r
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

type forecastJSON struct {
	Date         string `json:"date"`
	TemperatureC int    `json:"temperatureC"`
	TemperatureF int    `json:"temperatureF"`
	Summary      string `json:"summary"`
}

func checkForecastBody(t *testing.T, body []byte, now time.Time) {
	t.Helper()
	var got []forecastJSON
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("response is not a forecast array: %v\n%s", err, body)
	}
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	day := forecast.DateOf(now)
	for i, e := range got {
		day = day.AddDays(1)
		if e.Date != day.String() {
			t.Errorf("entry %d date = %s, want %s", i, e.Date, day)
		}
		if e.TemperatureC < -20 || e.TemperatureC >= 55 {
			t.Errorf("entry %d temperatureC = %d out of range", i, e.TemperatureC)
		}
		if want := (forecast.Entry{TemperatureC: e.TemperatureC}).TemperatureF(); e.TemperatureF != want {
			t.Errorf("entry %d temperatureF = %d, want %d", i, e.TemperatureF, want)
		}
		if !forecast.IsSummary(e.Summary) {
			t.Errorf("entry %d summary = %q not in table", i, e.Summary)
		}
	}
}

func TestForecastHandler(t *testing.T) {
	r := setupRouter(t, &config.Config{Env: config.EnvProduction}, nil)
	w := get(r, "/weatherforecast")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q", ct)
	}
	checkForecastBody(t, w.Body.Bytes(), fixedNow)

	// Dates roll over the year boundary.
	var got []forecastJSON
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got[0].Date != "2025-12-30" || got[4].Date != "2026-01-03" {
		t.Errorf("dates = %s..%s, want 2025-12-30..2026-01-03", got[0].Date, got[4].Date)
	}

	// Equal seeds yield equal bodies.
	if w2 := get(r, "/weatherforecast"); w2.Body.String() != w.Body.String() {
		t.Errorf("seeded responses differ:\n%s\n%s", w.Body, w2.Body)
	}
}

func TestForecastHandler_Concurrent(t *testing.T) {
	now := time.Now()
	r, err := NewRouter(Deps{
		Config:    &config.Config{Env: config.EnvProduction, ServiceName: "test"},
		Logger:    zap.NewNop(),
		Generator: qrcode.NewSkipGenerator(qrcode.DefaultPixelsPerModule),
		Now:       func() time.Time { return now },
	})
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	bodies := make([][]byte, 32)
	codes := make([]int, len(bodies))
	for i := range bodies {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := get(r, "/weatherforecast")
			codes[i], bodies[i] = w.Code, w.Body.Bytes()
		}(i)
	}
	wg.Wait()

	for i := range bodies {
		if codes[i] != http.StatusOK {
			t.Fatalf("request %d status = %d", i, codes[i])
		}
		checkForecastBody(t, bodies[i], now)
	}
}

func scanDataURI(t *testing.T, body []byte) (string, image.Rectangle) {
	t.Helper()
	var uri string
	if err := json.Unmarshal(body, &uri); err != nil {
		t.Fatalf("response is not a JSON string: %v\n%s", err, body)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Fatalf("response = %.40q, want PNG data URI", uri)
	}
	raw, err := qrcode.ParseDataURI(uri)
	if err != nil {
		t.Fatalf("ParseDataURI: %v", err)
	}
	if !bytes.HasPrefix(raw, []byte{0x89, 0x50, 0x4E, 0x47}) {
		t.Fatalf("payload is not PNG: %v", raw[:8])
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		t.Fatalf("NewBinaryBitmapFromImage: %v", err)
	}
	res, err := zxingqr.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		t.Fatalf("QR decode: %v", err)
	}
	return res.GetText(), img.Bounds()
}

func TestQRCodeHandler_Hello(t *testing.T) {
	r := setupRouter(t, &config.Config{Env: config.EnvProduction}, nil)
	w := get(r, "/GenerateQRCode?text=hello")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body)
	}
	got, bounds := scanDataURI(t, w.Body.Bytes())
	if got != "hello" {
		t.Errorf("decoded = %q, want hello", got)
	}
	if bounds.Dx() != 29*qrcode.DefaultPixelsPerModule {
		t.Errorf("width = %d, want %d", bounds.Dx(), 29*qrcode.DefaultPixelsPerModule)
	}
}

func TestQRCodeHandler_RoundTrip(t *testing.T) {
	r := setupRouter(t, &config.Config{Env: config.EnvProduction}, nil)
	for _, text := range []string{"a", "Hello, World!", "https://example.com/?a=1&b=two", strings.Repeat("0123456789", 30)} {
		w := get(r, "/GenerateQRCode?text="+url.QueryEscape(text))
		if w.Code != http.StatusOK {
			t.Fatalf("text %q status = %d", text, w.Code)
		}
		if got, _ := scanDataURI(t, w.Body.Bytes()); got != text {
			t.Errorf("decoded = %q, want %q", got, text)
		}
	}
}

func TestQRCodeHandler_Size(t *testing.T) {
	r := setupRouter(t, &config.Config{Env: config.EnvProduction}, nil)
	w := get(r, "/GenerateQRCode?text=hello&size=290")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body)
	}
	got, bounds := scanDataURI(t, w.Body.Bytes())
	if got != "hello" || bounds.Dx() != 290 {
		t.Errorf("decoded = %q at %dpx, want hello at 290px", got, bounds.Dx())
	}
}

func TestQRCodeHandler_BadRequest(t *testing.T) {
	r := setupRouter(t, &config.Config{Env: config.EnvProduction}, nil)
	for _, target := range []string{
		"/GenerateQRCode",
		"/GenerateQRCode?text=",
		"/GenerateQRCode?text=hello&size=abc",
		"/GenerateQRCode?text=hello&size=5",
		"/GenerateQRCode?text=hello&size=100000",
	} {
		w := get(r, target)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s status = %d, want 400", target, w.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body["error"] == "" {
			t.Errorf("%s body = %s, want error object", target, w.Body)
		}
	}
}

func TestQRCodeHandler_TooLong(t *testing.T) {
	r := setupRouter(t, &config.Config{Env: config.EnvProduction}, nil)
	w := get(r, "/GenerateQRCode?text="+strings.Repeat("x", 3000))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "data:image/png") {
		t.Errorf("error response carries an image: %s", w.Body)
	}
}

type failingGenerator struct{}

func (failingGenerator) Generate(context.Context, string) ([]byte, error) {
	return nil, errors.New("boom")
}

func TestQRCodeHandler_GeneratorError(t *testing.T) {
	r := setupRouter(t, &config.Config{Env: config.EnvProduction}, failingGenerator{})
	w := get(r, "/GenerateQRCode?text=hello")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "boom") {
		t.Errorf("internal error leaked to client: %s", w.Body)
	}
}

func TestHealthHandler(t *testing.T) {
	r := setupRouter(t, &config.Config{Env: config.EnvProduction}, nil)
	w := get(r, "/health")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("GET /health = %d %s", w.Code, w.Body)
	}
}

func TestDocs_EnvironmentGate(t *testing.T) {
	paths := []string{specJSONPath, specYAMLPath, docsUIPath}

	dev := setupRouter(t, &config.Config{Env: config.EnvDevelopment}, nil)
	for _, p := range paths {
		if w := get(dev, p); w.Code != http.StatusOK {
			t.Errorf("development GET %s = %d, want 200", p, w.Code)
		}
	}
	if w := get(dev, "/swagger"); w.Code != http.StatusMovedPermanently || w.Header().Get("Location") != docsUIPath {
		t.Errorf("GET /swagger = %d -> %q", w.Code, w.Header().Get("Location"))
	}
	var spec map[string]any
	if err := json.Unmarshal(get(dev, specJSONPath).Body.Bytes(), &spec); err != nil {
		t.Errorf("spec JSON does not parse: %v", err)
	}

	prod := setupRouter(t, &config.Config{Env: config.EnvProduction}, nil)
	for _, p := range paths {
		if w := get(prod, p); w.Code != http.StatusNotFound {
			t.Errorf("production GET %s = %d, want 404", p, w.Code)
		}
	}
}

func TestRouter_HTTPSRedirect(t *testing.T) {
	r := setupRouter(t, &config.Config{Env: config.EnvProduction, HTTPSPort: "8443"}, nil)
	req := httptest.NewRequest(http.MethodGet, "/weatherforecast", nil)
	req.Host = "localhost:8080"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want 307", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "https://localhost:8443/weatherforecast" {
		t.Errorf("Location = %q", loc)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("redirect response missing X-Request-ID")
	}
}
