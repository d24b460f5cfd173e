package docs

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/namefreezers/forecast-qr-api/internal/forecast"
)

// Document is the subset of OpenAPI 3.0 this service describes itself with.
type Document struct {
	OpenAPI    string              `json:"openapi" yaml:"openapi"`
	Info       Info                `json:"info" yaml:"info"`
	Paths      map[string]PathItem `json:"paths" yaml:"paths"`
	Components Components          `json:"components" yaml:"components"`
}

type Info struct {
	Title   string `json:"title" yaml:"title"`
	Version string `json:"version" yaml:"version"`
}

type PathItem struct {
	Get *Operation `json:"get,omitempty" yaml:"get,omitempty"`
}

type Operation struct {
	OperationID string              `json:"operationId" yaml:"operationId"`
	Summary     string              `json:"summary,omitempty" yaml:"summary,omitempty"`
	Tags        []string            `json:"tags,omitempty" yaml:"tags,omitempty"`
	Parameters  []Parameter         `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Responses   map[string]Response `json:"responses" yaml:"responses"`
}

type Parameter struct {
	Name        string     `json:"name" yaml:"name"`
	In          string     `json:"in" yaml:"in"`
	Required    bool       `json:"required" yaml:"required"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Schema      *SchemaRef `json:"schema" yaml:"schema"`
}

type Response struct {
	Description string               `json:"description" yaml:"description"`
	Content     map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

type MediaType struct {
	Schema *SchemaRef `json:"schema" yaml:"schema"`
}

// SchemaRef is an inline schema or a $ref into components.
type SchemaRef struct {
	Ref      string     `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Type     string     `json:"type,omitempty" yaml:"type,omitempty"`
	Format   string     `json:"format,omitempty" yaml:"format,omitempty"`
	Pattern  string     `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Minimum  *int       `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum  *int       `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	Items    *SchemaRef `json:"items,omitempty" yaml:"items,omitempty"`
	MinItems *int       `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems *int       `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`
}

type Components struct {
	Schemas map[string]any `json:"schemas" yaml:"schemas"`
}

// ErrorBody is the JSON body of every 4xx/5xx response.
type ErrorBody struct {
	Error string `json:"error" jsonschema:"title=Error"`
}

func intPtr(v int) *int { return &v }

func ref(name string) *SchemaRef {
	return &SchemaRef{Ref: "#/components/schemas/" + name}
}

func errorResponse(description string) Response {
	return Response{
		Description: description,
		Content:     map[string]MediaType{"application/json": {Schema: ref("Error")}},
	}
}

// Build assembles the document describing GET /weatherforecast and GET /GenerateQRCode.
func Build(title, version string) (*Document, error) {
	schemas := map[string]any{}
	for name, v := range map[string]any{
		"WeatherForecast": &forecast.Entry{},
		"Error":           &ErrorBody{},
	} {
		s, err := reflectSchema(v)
		if err != nil {
			return nil, fmt.Errorf("schema %s: %w", name, err)
		}
		schemas[name] = s
	}

	days := forecast.DefaultDays
	return &Document{
		OpenAPI: "3.0.3",
		Info:    Info{Title: title, Version: version},
		Paths: map[string]PathItem{
			"/weatherforecast": {Get: &Operation{
				OperationID: "GetWeatherForecast",
				Summary:     "Random forecast for the next five days",
				Tags:        []string{"forecast"},
				Responses: map[string]Response{
					"200": {
						Description: "Success",
						Content: map[string]MediaType{"application/json": {Schema: &SchemaRef{
							Type:     "array",
							Items:    ref("WeatherForecast"),
							MinItems: &days,
							MaxItems: &days,
						}}},
					},
				},
			}},
			"/GenerateQRCode": {Get: &Operation{
				OperationID: "GenerateQRCode",
				Summary:     "Encode text as a PNG QR code data URI",
				Tags:        []string{"qrcode"},
				Parameters: []Parameter{
					{Name: "text", In: "query", Required: true, Description: "Text to encode", Schema: &SchemaRef{Type: "string"}},
					{Name: "size", In: "query", Description: "Optional output width/height in pixels", Schema: &SchemaRef{Type: "integer", Minimum: intPtr(21), Maximum: intPtr(4096)}},
				},
				Responses: map[string]Response{
					"200": {
						Description: "Success",
						Content: map[string]MediaType{"application/json": {Schema: &SchemaRef{
							Type:    "string",
							Pattern: "^data:image/png;base64,",
						}}},
					},
					"400": errorResponse("Missing or invalid parameter"),
					"500": errorResponse("Text could not be encoded"),
				},
			}},
		},
		Components: Components{Schemas: schemas},
	}, nil
}

// reflectSchema converts a Go type to a plain JSON value so both encoders
// render it identically.
func reflectSchema(v any) (map[string]any, error) {
	r := jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
	}
	s := r.Reflect(v)
	s.Version = ""

	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// JSON renders the document as JSON.
func (d *Document) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// YAML renders the document as YAML.
func (d *Document) YAML() ([]byte, error) {
	return yaml.Marshal(d)
}
