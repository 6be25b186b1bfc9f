package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ParseCalendar convierte markup crudo en la lista ordenada de eventos.
// Nunca falla por markup malformado: contenedor ausente => lista vacía,
// celdas o eventos incompletos => se omiten. El orden es el del documento
// (día, y dentro del día, orden de aparición).
func ParseCalendar(markup string, pctx ParseContext) []CalendarEvent {
	events := make([]CalendarEvent, 0)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return events
	}

	cal := doc.Find(".simcal-calendar").First()
	if cal.Length() == 0 {
		return events
	}

	year, month := effectiveYearMonth(cal, pctx)

	cal.Find(".simcal-day").Each(func(_ int, dayCell *goquery.Selection) {
		// Las celdas void son relleno del mes adyacente
		if dayCell.HasClass("simcal-day-void") {
			return
		}

		dayNumber, ok := parseLeadingInt(dayCell.Find(".simcal-day-number").First().Text())
		if !ok {
			return
		}

		date := buildISODate(year, month, int(dayNumber))
		weekday := calcWeekday(year, month, int(dayNumber))

		dayCell.Find(".simcal-event").Each(func(_ int, eventNode *goquery.Selection) {
			title := strings.TrimSpace(eventNode.Find(".simcal-event-title").First().Text())
			if title == "" {
				// Un nodo sin título no es un evento real
				return
			}

			details := eventNode.Find(".simcal-event-details").First()
			startSpan := detailSpan(details, `[itemprop="startDate"]`, ".simcal-event-start-date")
			endSpan := detailSpan(details, `[itemprop="endDate"]`, ".simcal-event-end-date")

			startISO := isoContent(startSpan)
			endISO := isoContent(endSpan)

			startTS := epochAttr(startSpan, "data-event-start")
			endTS := epochAttr(endSpan, "data-event-end")
			if endTS == nil {
				// El plugin a veces solo pone data-event-start en el span de fin
				endTS = epochAttr(endSpan, "data-event-start")
			}

			events = append(events, CalendarEvent{
				Title:          title,
				Day:            int(dayNumber),
				Date:           date,
				Start:          startISO,
				End:            endISO,
				StartTimestamp: startTS,
				EndTimestamp:   endTS,
				IsAllDay:       estimateAllDay(title, startISO, endISO),
				IsMultiDay:     isMultiDay(startISO, endISO),
				Weekday:        weekday,
				Raw: RawInfo{
					StartText: spanText(startSpan),
					EndText:   spanText(endSpan),
				},
				Source: SourceInfo{
					CalendarID: pctx.CalendarID,
					Href:       pctx.SourceURL,
				},
			})
		})
	})

	return events
}

// effectiveYearMonth lee el año/mes auto-reportado por el widget. Tiene
// precedencia sobre lo pedido por el caller porque el upstream puede haber
// redirigido a un mes adyacente. Si alguna etiqueta no parsea, se usa el
// valor del contexto.
func effectiveYearMonth(cal *goquery.Selection, pctx ParseContext) (int, int) {
	year := pctx.Year
	if y, ok := parseLeadingInt(cal.Find(".simcal-current-year").First().Text()); ok {
		year = int(y)
	}

	month := pctx.Month
	// La etiqueta de mes puede traer relleno no numérico ("10月", " 10 ")
	monthDigits := keepDigits(cal.Find(".simcal-current-month").First().Text())
	if m, ok := parseLeadingInt(monthDigits); ok {
		month = int(m)
	}

	return year, month
}

// detailSpan devuelve el span de detalle, prefiriendo la convención de
// microdata y cayendo a la clase del plugin. nil si no hay ninguno.
func detailSpan(details *goquery.Selection, microdataSel, classSel string) *goquery.Selection {
	if sel := details.Find(microdataSel).First(); sel.Length() > 0 {
		return sel
	}
	if sel := details.Find(classSel).First(); sel.Length() > 0 {
		return sel
	}
	return nil
}

// isoContent extrae el atributo content del span; vacío cuenta como ausente.
func isoContent(span *goquery.Selection) *string {
	if span == nil {
		return nil
	}
	v, ok := span.Attr("content")
	if !ok {
		return nil
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func epochAttr(span *goquery.Selection, attr string) *int64 {
	if span == nil {
		return nil
	}
	v, ok := span.Attr(attr)
	if !ok {
		return nil
	}
	n, ok := parseLeadingInt(v)
	if !ok {
		return nil
	}
	return &n
}

// spanText conserva el texto humano del span tal cual (recortado), incluso
// vacío; nil solo cuando el span no existe.
func spanText(span *goquery.Selection) *string {
	if span == nil {
		return nil
	}
	v := strings.TrimSpace(span.Text())
	return &v
}

func isMultiDay(startISO, endISO *string) bool {
	if startISO == nil || endISO == nil {
		return false
	}
	start, err := time.Parse(time.RFC3339, *startISO)
	if err != nil {
		return false
	}
	end, err := time.Parse(time.RFC3339, *endISO)
	if err != nil {
		return false
	}
	// Margen de un milisegundo para bordes de día completo
	return end.Sub(start) >= 24*time.Hour-time.Millisecond
}

func buildISODate(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// calcWeekday: 0=domingo ... 6=sábado. Se calcula en UTC porque la fecha
// es una etiqueta de calendario, no un instante; la zona del contexto no
// participa.
func calcWeekday(year, month, day int) int {
	return int(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday())
}

// parseLeadingInt imita el parseInt del plugin original: ignora espacios
// alrededor, acepta signo, y descarta cualquier cola no numérica
// ("2025年" => 2025). Falla solo si no hay ni un dígito inicial.
func parseLeadingInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	i := 0
	neg := false
	if s[0] == '+' || s[0] == '-' {
		neg = s[0] == '-'
		i++
	}

	var (
		n    int64
		seen bool
	)
	for ; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int64(c-'0')
		seen = true
	}
	if !seen {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
