package calendar

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"time"
)

// RequestOptions es la tupla validada que sale del normalizador. El core
// (fetcher/parser) confía en ella sin revalidar.
type RequestOptions struct {
	Year       int
	Month      int
	CalendarID string
	Timezone   string
	Format     string // "json" | "html"
	Bypass     bool
	Date       *DateSelection
}

// DateSelection es el filtro opcional de un solo día.
type DateSelection struct {
	ISO string // YYYY-MM-DD
	Day int
}

const (
	FormatJSON = "json"
	FormatHTML = "html"
)

// RequestError es un fallo de validación del cliente; se mapea antes de
// que corra el pipeline.
type RequestError struct {
	Message string
	Status  int
}

func (e *RequestError) Error() string { return e.Message }

var dateParamRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Defaults son los valores del deployment que completan parámetros ausentes.
type Defaults struct {
	CalendarID string
	Timezone   string
}

// ParseRequest resuelve los query params de /events en opciones validadas.
//
// year/month por defecto son el año/mes actual en la zona configurada.
// date (YYYY-MM-DD), si viene, manda: year/month se derivan de él.
// Límites: año 2000-2100, mes 1-12; fuera de rango => RequestError 400.
func ParseRequest(r *http.Request, d Defaults, now time.Time) (RequestOptions, error) {
	q := r.URL.Query()

	currentYear, currentMonth := currentYearMonth(d.Timezone, now)

	year := currentYear
	if v := q.Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return RequestOptions{}, &RequestError{Message: "Invalid year parameter", Status: http.StatusBadRequest}
		}
		year = n
	}

	month := currentMonth
	if v := q.Get("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return RequestOptions{}, &RequestError{Message: "Invalid month parameter", Status: http.StatusBadRequest}
		}
		month = n
	}

	var date *DateSelection
	if v := q.Get("date"); v != "" {
		sel, ok := parseDateParam(v)
		if !ok {
			return RequestOptions{}, &RequestError{Message: "Invalid date parameter", Status: http.StatusBadRequest}
		}
		date = sel
		// El día pedido fija el mes a consultar
		year, _ = strconv.Atoi(sel.ISO[0:4])
		month, _ = strconv.Atoi(sel.ISO[5:7])
	}

	if year < 2000 || year > 2100 {
		return RequestOptions{}, &RequestError{Message: "Invalid year parameter", Status: http.StatusBadRequest}
	}
	if month < 1 || month > 12 {
		return RequestOptions{}, &RequestError{Message: "Invalid month parameter", Status: http.StatusBadRequest}
	}

	format := FormatJSON
	if q.Get("format") == FormatHTML {
		format = FormatHTML
	}

	bypass := q.Get("skipCache") == "1" || q.Get("skipCache") == "true"

	return RequestOptions{
		Year:       year,
		Month:      month,
		CalendarID: d.CalendarID,
		Timezone:   d.Timezone,
		Format:     format,
		Bypass:     bypass,
		Date:       date,
	}, nil
}

// parseDateParam valida YYYY-MM-DD y que sea una fecha real del calendario
// (2025-02-30 no pasa).
func parseDateParam(v string) (*DateSelection, bool) {
	if !dateParamRE.MatchString(v) {
		return nil, false
	}

	year, _ := strconv.Atoi(v[0:4])
	month, _ := strconv.Atoi(v[5:7])
	day, _ := strconv.Atoi(v[8:10])

	if month < 1 || month > 12 {
		return nil, false
	}
	if day < 1 || day > 31 {
		return nil, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return nil, false
	}

	return &DateSelection{
		ISO: fmt.Sprintf("%04d-%02d-%02d", year, month, day),
		Day: day,
	}, true
}

// currentYearMonth resuelve el año/mes de now en la zona configurada;
// si la zona no carga, se usa UTC.
func currentYearMonth(tz string, now time.Time) (int, int) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	t := now.In(loc)
	return t.Year(), int(t.Month())
}

// CacheKey es determinista en (year, month, format, date); skipCache no
// participa.
func (o RequestOptions) CacheKey() string {
	key := fmt.Sprintf("events:%04d-%02d:%s", o.Year, o.Month, o.Format)
	if o.Date != nil {
		key += ":" + o.Date.ISO
	}
	return key
}
