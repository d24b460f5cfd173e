package forecast

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
)

const (
	// DefaultDays is the number of entries served by GET /weatherforecast.
	DefaultDays = 5

	MinTemperatureC = -20
	MaxTemperatureC = 55 // exclusive
)

// Summaries is the fixed table every forecast summary is drawn from.
var Summaries = [...]string{
	"Freezing", "Bracing", "Chilly", "Cool", "Mild",
	"Warm", "Balmy", "Hot", "Sweltering", "Scorching",
}

const dateLayout = "2006-01-02"

// Date is a calendar date without a time of day. It is serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, t.Location())}
}

// AddDays returns the date n calendar days after d.
func (d Date) AddDays(n int) Date {
	return DateOf(d.AddDate(0, 0, n))
}

func (d Date) String() string { return d.Format(dateLayout) }

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("forecast: invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

func (Date) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Format: "date"}
}

// Entry is a single day of the synthetic forecast.
type Entry struct {
	Date         Date   `json:"date"`
	TemperatureC int    `json:"temperatureC"`
	Summary      string `json:"summary"`
}

// TemperatureF converts TemperatureC the way the public API always has:
// 32 + C/0.5556, truncated toward zero.
func (e Entry) TemperatureF() int {
	return 32 + int(float64(e.TemperatureC)/0.5556)
}

type entryJSON struct {
	Date         Date   `json:"date"`
	TemperatureC int    `json:"temperatureC"`
	TemperatureF int    `json:"temperatureF"`
	Summary      string `json:"summary"`
}

func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{
		Date:         e.Date,
		TemperatureC: e.TemperatureC,
		TemperatureF: e.TemperatureF(),
		Summary:      e.Summary,
	})
}

func (e *Entry) UnmarshalJSON(b []byte) error {
	var raw entryJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*e = Entry{Date: raw.Date, TemperatureC: raw.TemperatureC, Summary: raw.Summary}
	return nil
}

// JSONSchemaExtend adds the derived temperatureF property to the reflected schema.
func (Entry) JSONSchemaExtend(s *jsonschema.Schema) {
	s.Properties.Set("temperatureF", &jsonschema.Schema{
		Type:        "integer",
		Description: "32 + temperatureC / 0.5556, truncated",
	})
	s.Required = append(s.Required, "temperatureF")
}

// Generate builds days entries dated the day after now onward, drawing
// temperatures and summaries from rng. The result depends only on its arguments.
func Generate(rng *rand.Rand, now time.Time, days int) []Entry {
	if days <= 0 {
		return []Entry{}
	}
	today := DateOf(now)
	out := make([]Entry, 0, days)
	for i := 1; i <= days; i++ {
		out = append(out, Entry{
			Date:         today.AddDays(i),
			TemperatureC: MinTemperatureC + rng.IntN(MaxTemperatureC-MinTemperatureC),
			Summary:      Summaries[rng.IntN(len(Summaries))],
		})
	}
	return out
}

// NewRand returns a generator seeded from the process-wide source.
// *rand.Rand is not safe for concurrent use; callers take one per request.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSeededRand returns a reproducible generator.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// IsSummary reports whether s belongs to Summaries.
func IsSummary(s string) bool {
	for _, v := range Summaries {
		if v == s {
			return true
		}
	}
	return false
}
