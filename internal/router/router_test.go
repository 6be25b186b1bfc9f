package router_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nw3q/toshin-chieria-calender-api/internal/config"
	"github.com/nw3q/toshin-chieria-calender-api/internal/domain/calendar"
	"github.com/nw3q/toshin-chieria-calender-api/internal/router"
)

const upstreamHTML = `
<div class="simcal-calendar">
  <span class="simcal-current-month">10月</span>
  <span class="simcal-current-year">2025</span>
  <table><tbody><tr>
    <td class="simcal-day">
      <span class="simcal-day-number">1</span>
      <ul><li class="simcal-event">
        <span class="simcal-event-title">開校日14：00-21：45</span>
        <div class="simcal-event-details">
          <span itemprop="startDate" content="2025-09-29T00:00:59+09:00" data-event-start="1759071659">9月29日</span>
          <span itemprop="endDate" content="2025-10-03T23:59:01+09:00" data-event-end="1759503541">10月3日</span>
        </div>
      </li></ul>
    </td>
    <td class="simcal-day">
      <span class="simcal-day-number">12</span>
      <ul><li class="simcal-event">
        <span class="simcal-event-title">休校日</span>
      </li></ul>
    </td>
  </tr></tbody></table>
</div>`

type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	resp, err := f(r)
	if resp != nil && resp.Request == nil {
		resp.Request = r
	}
	return resp, err
}

func upstreamFake() rtFunc {
	return func(r *http.Request) (*http.Response, error) {
		if strings.Contains(r.URL.Path, "calendar") {
			return &http.Response{
				StatusCode: 200,
				Body:       io.NopCloser(strings.NewReader(upstreamHTML)),
				Header:     http.Header{"Content-Type": []string{"text/html"}},
			}, nil
		}
		return &http.Response{
			StatusCode: 404,
			Body:       io.NopCloser(strings.NewReader("Not Found")),
			Header:     http.Header{},
		}, nil
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.Default()
	cfg.SourceBaseURL = "https://example.com/chieria/calendar/"
	cfg.SourcePageID = "12"
	cfg.UserAgent = "test/0.1"

	ts := httptest.NewServer(router.NewRouter(router.Options{
		Config:    cfg,
		Transport: upstreamFake(),
	}))
	t.Cleanup(ts.Close)
	return ts
}

func getBody(t *testing.T, url string) (int, http.Header, []byte) {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("http get: %v", err)
	}
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	return res.StatusCode, res.Header, body
}

func TestHTTP_EventsJSON(t *testing.T) {
	ts := newTestServer(t)

	st, headers, body := getBody(t, ts.URL+"/events?year=2025&month=10")
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", st, string(body))
	}
	if got := headers.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected CORS header, got %q", got)
	}
	if headers.Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header")
	}

	var resp calendar.ResponseBody
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("invalid json: %v body=%s", err, string(body))
	}
	if resp.Meta.Year != 2025 || resp.Meta.Month != 10 || resp.Meta.CalendarID != "33" {
		t.Fatalf("unexpected meta %+v", resp.Meta)
	}
	if len(resp.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(resp.Events))
	}

	first := resp.Events[0]
	if first.Title != "開校日14：00-21：45" || first.Date != "2025-10-01" || first.Weekday != 3 {
		t.Fatalf("unexpected first event %+v", first)
	}
	if first.IsAllDay || !first.IsMultiDay {
		t.Fatalf("unexpected inference %+v", first)
	}
}

func TestHTTP_EventsDateFilter(t *testing.T) {
	ts := newTestServer(t)

	st, _, body := getBody(t, ts.URL+"/events?date=2025-10-12")
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", st, string(body))
	}

	var resp calendar.ResponseBody
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Meta.Date == nil || *resp.Meta.Date != "2025-10-12" {
		t.Fatalf("meta must echo date, got %+v", resp.Meta.Date)
	}
	if len(resp.Events) == 0 {
		t.Fatalf("expected at least one event")
	}
	for _, e := range resp.Events {
		if e.Date != "2025-10-12" {
			t.Fatalf("filter leak: %+v", e)
		}
	}
}

func TestHTTP_EventsHTMLFormat(t *testing.T) {
	ts := newTestServer(t)

	st, headers, body := getBody(t, ts.URL+"/events?year=2025&month=10&format=html")
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d", st)
	}
	if ct := headers.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html content type, got %q", ct)
	}
	if !strings.Contains(string(body), "simcal-calendar") {
		t.Fatalf("expected raw markup passthrough")
	}
}

func TestHTTP_EventsSecondCallServedFromCache(t *testing.T) {
	calls := 0
	cfg := config.Default()
	cfg.SourceBaseURL = "https://example.com/chieria/calendar/"
	cfg.UserAgent = "test/0.1"

	fake := upstreamFake()
	ts := httptest.NewServer(router.NewRouter(router.Options{
		Config: cfg,
		Transport: rtFunc(func(r *http.Request) (*http.Response, error) {
			calls++
			return fake(r)
		}),
	}))
	t.Cleanup(ts.Close)

	for i := 0; i < 2; i++ {
		st, _, body := getBody(t, ts.URL+"/events?year=2025&month=10")
		if st != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", st, string(body))
		}
	}
	if calls != 1 {
		t.Fatalf("second call must come from cache, upstream saw %d calls", calls)
	}
}

func TestHTTP_InvalidParams(t *testing.T) {
	ts := newTestServer(t)

	for _, target := range []string{"/events?year=1999", "/events?month=13", "/events?date=2025-02-30"} {
		st, _, body := getBody(t, ts.URL+target)
		if st != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, st)
		}
		var e struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(body, &e); err != nil || e.Error == "" {
			t.Fatalf("%s: expected json error body, got %s", target, string(body))
		}
	}
}

func TestHTTP_UpstreamDownYields502(t *testing.T) {
	cfg := config.Default()
	cfg.SourceBaseURL = "https://example.com/chieria/calendar/"
	cfg.UserAgent = "test/0.1"

	ts := httptest.NewServer(router.NewRouter(router.Options{
		Config: cfg,
		Transport: rtFunc(func(r *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: 404,
				Body:       io.NopCloser(strings.NewReader("Not Found")),
				Header:     http.Header{},
			}, nil
		}),
	}))
	t.Cleanup(ts.Close)

	st, _, body := getBody(t, ts.URL+"/events?year=2025&month=10")
	if st != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d body=%s", st, string(body))
	}
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err != nil || e.Error != "Failed to fetch calendar data" {
		t.Fatalf("unexpected error body %s", string(body))
	}
}

func TestHTTP_Healthz(t *testing.T) {
	ts := newTestServer(t)

	st, _, body := getBody(t, ts.URL+"/healthz")
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d", st)
	}
	var resp map[string]string
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != "ok" || resp["timestamp"] == "" {
		t.Fatalf("unexpected health body %s", string(body))
	}
}

func TestHTTP_MethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)

	res, err := http.Post(ts.URL+"/events", "application/json", nil)
	if err != nil {
		t.Fatalf("http post: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", res.StatusCode)
	}
}
