package calendar

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"
)

var testDefaults = Defaults{CalendarID: "33", Timezone: "Asia/Tokyo"}

// now fijo: 2025-10-31 23:00 UTC = 2025-11-01 08:00 en Asia/Tokyo.
// Sirve para verificar que el default se resuelve en la zona configurada.
var testNow = time.Date(2025, 10, 31, 23, 0, 0, 0, time.UTC)

func parseTestRequest(t *testing.T, target string) (RequestOptions, error) {
	t.Helper()
	return ParseRequest(httptest.NewRequest("GET", target, nil), testDefaults, testNow)
}

func TestParseRequest_DefaultsToCurrentMonthInTimezone(t *testing.T) {
	opts, err := parseTestRequest(t, "/events")
	if err != nil {
		t.Fatalf("ParseRequest error: %v", err)
	}
	if opts.Year != 2025 || opts.Month != 11 {
		t.Fatalf("expected 2025-11 (Tokyo), got %d-%d", opts.Year, opts.Month)
	}
	if opts.Format != FormatJSON || opts.Bypass {
		t.Fatalf("unexpected defaults %+v", opts)
	}
	if opts.CalendarID != "33" || opts.Timezone != "Asia/Tokyo" {
		t.Fatalf("deployment defaults not applied: %+v", opts)
	}
}

func TestParseRequest_ExplicitYearMonth(t *testing.T) {
	opts, err := parseTestRequest(t, "/events?year=2025&month=3")
	if err != nil {
		t.Fatalf("ParseRequest error: %v", err)
	}
	if opts.Year != 2025 || opts.Month != 3 {
		t.Fatalf("unexpected %d-%d", opts.Year, opts.Month)
	}
}

func TestParseRequest_DateOverridesYearMonth(t *testing.T) {
	opts, err := parseTestRequest(t, "/events?year=2020&month=1&date=2025-10-12")
	if err != nil {
		t.Fatalf("ParseRequest error: %v", err)
	}
	if opts.Year != 2025 || opts.Month != 10 {
		t.Fatalf("date must determine year/month, got %d-%d", opts.Year, opts.Month)
	}
	if opts.Date == nil || opts.Date.ISO != "2025-10-12" || opts.Date.Day != 12 {
		t.Fatalf("unexpected date selection %+v", opts.Date)
	}
}

func TestParseRequest_Bounds(t *testing.T) {
	cases := []string{
		"/events?year=1999",
		"/events?year=2101",
		"/events?year=abc",
		"/events?month=0",
		"/events?month=13",
		"/events?month=xyz",
		"/events?date=2025-13-01",
		"/events?date=2025-02-30",
		"/events?date=2025/10/12",
		"/events?date=20251012",
	}

	for _, target := range cases {
		_, err := parseTestRequest(t, target)
		var reqErr *RequestError
		if !errors.As(err, &reqErr) {
			t.Fatalf("%s: expected RequestError, got %v", target, err)
		}
		if reqErr.Status != 400 {
			t.Fatalf("%s: expected 400, got %d", target, reqErr.Status)
		}
	}
}

func TestParseRequest_FormatAndBypass(t *testing.T) {
	opts, err := parseTestRequest(t, "/events?format=html&skipCache=1")
	if err != nil {
		t.Fatalf("ParseRequest error: %v", err)
	}
	if opts.Format != FormatHTML || !opts.Bypass {
		t.Fatalf("unexpected %+v", opts)
	}

	opts, err = parseTestRequest(t, "/events?format=xml&skipCache=true")
	if err != nil {
		t.Fatalf("ParseRequest error: %v", err)
	}
	// format desconocido cae a json; skipCache=true también cuenta
	if opts.Format != FormatJSON || !opts.Bypass {
		t.Fatalf("unexpected %+v", opts)
	}

	opts, err = parseTestRequest(t, "/events?skipCache=0")
	if err != nil {
		t.Fatalf("ParseRequest error: %v", err)
	}
	if opts.Bypass {
		t.Fatalf("skipCache=0 must not bypass")
	}
}
