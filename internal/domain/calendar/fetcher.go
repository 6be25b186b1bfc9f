package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/nw3q/toshin-chieria-calender-api/internal/platform/httpclient"
	"github.com/nw3q/toshin-chieria-calender-api/internal/platform/logger"
)

// Acquired es el resultado de la adquisición de markup.
type Acquired struct {
	Markup string
	// SourceURL es la URL real que reportó la respuesta exitosa (puede
	// diferir de la construida, por redirects), o el link del fallback.
	SourceURL string
}

// AcquireError significa que se agotaron todos los caminos configurados
// sin obtener markup. Carga el último status observado del upstream.
type AcquireError struct {
	Status int
	URL    string
}

func (e *AcquireError) Error() string {
	return fmt.Sprintf("failed to fetch calendar markup: status=%d url=%s", e.Status, e.URL)
}

// FetcherConfig es la configuración de adquisición.
type FetcherConfig struct {
	// BaseURL es la página del calendario; obligatoria.
	BaseURL string
	// PageID habilita el fallback wp-json si no está vacío.
	PageID string
	// UserAgent identifica al servicio ante el upstream; obligatorio.
	UserAgent string
}

// Fetcher resuelve un mes objetivo contra la página upstream, con
// fallback de protocolo (https<->http) y, si está configurado, fallback
// a la content-API de WordPress. Sin estado entre invocaciones.
type Fetcher struct {
	client *httpclient.Client
	cfg    FetcherConfig
	log    logger.Logger
}

func NewFetcher(client *httpclient.Client, cfg FetcherConfig, log logger.Logger) *Fetcher {
	return &Fetcher{client: client, cfg: cfg, log: log}
}

// ObtainMarkup trae el markup del mes pedido.
//
// Orden de intentos, estrictamente secuencial (nunca concurrente, un solo
// request en vuelo a la vez):
//  1. página del calendario con ?simcal_month=YYYY-MM, protocolo declarado
//  2. misma URL con el protocolo opuesto
//  3. content-API wp-json (si hay PageID), con el mismo fallback de protocolo
//
// Sin reintentos más allá del único salto de fallback por nivel.
func (f *Fetcher) ObtainMarkup(ctx context.Context, year, month int) (Acquired, error) {
	if f.cfg.BaseURL == "" {
		return Acquired{}, errors.New("configuration error: SOURCE_BASE_URL is missing")
	}
	if f.cfg.UserAgent == "" {
		return Acquired{}, errors.New("configuration error: USER_AGENT is missing")
	}

	calendarURL, err := url.Parse(f.cfg.BaseURL)
	if err != nil {
		return Acquired{}, fmt.Errorf("configuration error: invalid SOURCE_BASE_URL: %w", err)
	}
	q := calendarURL.Query()
	q.Set("simcal_month", fmt.Sprintf("%04d-%02d", year, month))
	calendarURL.RawQuery = q.Encode()

	htmlHeaders := map[string]string{
		"User-Agent": f.cfg.UserAgent,
		"Accept":     "text/html,application/xhtml+xml",
	}

	resp, err := f.fetchWithFallback(ctx, calendarURL, htmlHeaders)
	if err != nil {
		return Acquired{}, err
	}

	if is2xx(resp.StatusCode) {
		sourceURL := resp.FinalURL
		if sourceURL == "" {
			sourceURL = calendarURL.String()
		}
		return Acquired{Markup: string(resp.Body), SourceURL: sourceURL}, nil
	}

	f.log.Warn("calendar page fetch failed", map[string]any{
		"status": resp.StatusCode,
		"url":    calendarURL.String(),
	})

	if f.cfg.PageID != "" {
		acquired, ok, err := f.fetchFromContentAPI(ctx, calendarURL)
		if err != nil {
			return Acquired{}, err
		}
		if ok {
			return acquired, nil
		}
	}

	return Acquired{}, &AcquireError{Status: resp.StatusCode, URL: calendarURL.String()}
}

// fetchFromContentAPI intenta la página-como-recurso-REST. ok=false cuando
// la rama no produjo markup (status no exitoso o campo rendered vacío);
// eso no es fatal por sí solo, el caller decide.
func (f *Fetcher) fetchFromContentAPI(ctx context.Context, calendarURL *url.URL) (Acquired, bool, error) {
	restURL := deriveRestEndpoint(calendarURL, f.cfg.PageID)

	jsonHeaders := map[string]string{
		"User-Agent": f.cfg.UserAgent,
		"Accept":     "application/json",
	}

	resp, err := f.fetchWithFallback(ctx, restURL, jsonHeaders)
	if err != nil {
		return Acquired{}, false, err
	}
	if !is2xx(resp.StatusCode) {
		return Acquired{}, false, nil
	}

	var payload struct {
		Content struct {
			Rendered string `json:"rendered"`
		} `json:"content"`
		Link string `json:"link"`
	}
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return Acquired{}, false, fmt.Errorf("content api: invalid json: %w", err)
	}
	if payload.Content.Rendered == "" {
		return Acquired{}, false, nil
	}

	sourceURL := payload.Link
	if sourceURL == "" {
		sourceURL = calendarURL.String()
	}

	f.log.Info("markup obtained via content api", map[string]any{"url": restURL.String()})

	return Acquired{Markup: payload.Content.Rendered, SourceURL: sourceURL}, true, nil
}

type attemptResult struct {
	resp *httpclient.RawResponse // nil si el intento lanzó
	err  error
}

// fetchWithFallback ejecuta la cascada de protocolo como lista ordenada de
// intentos con un reductor único:
//   - el primer 2xx corta la cascada de inmediato
//   - si ninguno es 2xx, se devuelve la primera respuesta real obtenida
//     (aunque traiga status de fallo: el caller la observa por status)
//   - si todos lanzaron, se propaga el último error
func (f *Fetcher) fetchWithFallback(ctx context.Context, u *url.URL, headers map[string]string) (*httpclient.RawResponse, error) {
	attempts := protocolCascade(u)
	results := make([]attemptResult, 0, len(attempts))

	for _, attemptURL := range attempts {
		resp, err := f.client.GetRaw(ctx, attemptURL, headers)
		if err == nil && is2xx(resp.StatusCode) {
			return resp, nil
		}
		if err != nil {
			f.log.Warn("fetch attempt failed", map[string]any{"url": attemptURL, "err": err.Error()})
		}
		results = append(results, attemptResult{resp: resp, err: err})
	}

	for _, r := range results {
		if r.resp != nil {
			return r.resp, nil
		}
	}
	return nil, results[len(results)-1].err
}

// protocolCascade devuelve las URLs a intentar en orden: la declarada y,
// si el esquema es http(s), la misma con el esquema opuesto. Para otros
// esquemas no hay alternativa.
func protocolCascade(u *url.URL) []string {
	attempts := []string{u.String()}

	var alternate string
	switch u.Scheme {
	case "https":
		alternate = "http"
	case "http":
		alternate = "https"
	default:
		return attempts
	}

	alt := *u
	alt.Scheme = alternate
	return append(attempts, alt.String())
}

// deriveRestEndpoint quita el último segmento del path del calendario y
// apunta a la página como recurso wp-json:
// <origin>/<path-sin-último-segmento>/wp-json/wp/v2/pages/<id>
func deriveRestEndpoint(calendarURL *url.URL, pageID string) *url.URL {
	segments := make([]string, 0, 4)
	for _, seg := range strings.Split(calendarURL.Path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) > 0 {
		segments = segments[:len(segments)-1]
	}

	restPath := ""
	if len(segments) > 0 {
		restPath = "/" + strings.Join(segments, "/")
	}

	rest := &url.URL{
		Scheme: calendarURL.Scheme,
		Host:   calendarURL.Host,
		Path:   restPath + "/wp-json/wp/v2/pages/" + pageID,
	}

	q := url.Values{}
	q.Set("_fields", "content.rendered,link")
	rest.RawQuery = q.Encode()

	return rest
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}
