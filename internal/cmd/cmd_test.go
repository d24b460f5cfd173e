package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/namefreezers/forecast-qr-api/internal/forecast"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestQRCmd_DataURI(t *testing.T) {
	out, err := run(t, "qr", "hello", "--scale", "4")
	if err != nil {
		t.Fatalf("qr: %v", err)
	}
	if !strings.HasPrefix(out, "data:image/png;base64,") {
		t.Errorf("output = %.40q, want data URI", out)
	}
}

func TestQRCmd_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.png")
	if _, err := run(t, "qr", "hello", "-o", path, "--size", "200"); err != nil {
		t.Fatalf("qr -o: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b, []byte{0x89, 'P', 'N', 'G'}) {
		t.Errorf("file is not a PNG")
	}
}

func TestQRCmd_Errors(t *testing.T) {
	if _, err := run(t, "qr"); err == nil {
		t.Error("expected error without TEXT")
	}
	if _, err := run(t, "qr", "hello", "--size", "10"); err == nil {
		t.Error("expected error for --size 10")
	}
	if _, err := run(t, "qr", strings.Repeat("x", 3000)); err == nil {
		t.Error("expected error for oversized text")
	}
}

func TestForecastCmd_Seeded(t *testing.T) {
	a, err := run(t, "forecast", "--seed", "9")
	if err != nil {
		t.Fatalf("forecast: %v", err)
	}
	b, err := run(t, "forecast", "--seed", "9")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("seeded runs differ:\n%s\n%s", a, b)
	}

	var entries []forecast.Entry
	if err := json.Unmarshal([]byte(a), &entries); err != nil {
		t.Fatalf("output is not a forecast: %v", err)
	}
	if len(entries) != forecast.DefaultDays {
		t.Errorf("len = %d, want %d", len(entries), forecast.DefaultDays)
	}
}

func TestForecastCmd_Days(t *testing.T) {
	out, err := run(t, "forecast", "--days", "3")
	if err != nil {
		t.Fatal(err)
	}
	var entries []forecast.Entry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("len = %d, want 3", len(entries))
	}
}
