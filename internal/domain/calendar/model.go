package calendar

// CalendarEvent es un evento normalizado extraído del markup del widget.
// Los campos opcionales son punteros: null en JSON cuando el markup no
// trae el dato. Ningún evento se muta después de construido.
type CalendarEvent struct {
	Title string `json:"title"`

	// Day es el día del mes (1-31) bajo cuya celda apareció el evento.
	Day int `json:"day"`

	// Date es la fecha canónica YYYY-MM-DD, derivada del año/mes efectivo.
	Date string `json:"date"`

	// Start / End son timestamps ISO-8601 con offset, tal como vienen en
	// el atributo content del markup.
	Start *string `json:"start"`
	End   *string `json:"end"`

	// StartTimestamp / EndTimestamp son epoch en segundos leídos de los
	// atributos data-event-*. Independientes de Start/End: no se valida
	// que coincidan.
	StartTimestamp *int64 `json:"startTimestamp"`
	EndTimestamp   *int64 `json:"endTimestamp"`

	// IsAllDay se infiere con la cadena de reglas de allday.go.
	IsAllDay bool `json:"isAllDay"`

	// IsMultiDay es true si End queda al menos un día calendario después
	// de Start.
	IsMultiDay bool `json:"isMultiDay"`

	// Weekday: 0=domingo ... 6=sábado, calculado desde Date.
	Weekday int `json:"weekday"`

	Raw    RawInfo    `json:"raw"`
	Source SourceInfo `json:"source"`
}

// RawInfo conserva los textos humanos de los spans de detalle, para
// auditoría. Nunca se parsean.
type RawInfo struct {
	StartText *string `json:"startText"`
	EndText   *string `json:"endText"`
}

// SourceInfo es la procedencia, idéntica en todos los eventos de una
// misma respuesta.
type SourceInfo struct {
	CalendarID string `json:"calendarId"`
	Href       string `json:"href"`
}

// CalendarMeta acompaña a la lista de eventos en la respuesta JSON.
type CalendarMeta struct {
	SourceURL  string  `json:"sourceUrl"`
	CalendarID string  `json:"calendarId"`
	Timezone   string  `json:"timezone"`
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	Date       *string `json:"date"`
	FetchedAt  string  `json:"fetchedAt"`
}

// ResponseBody es el cuerpo completo de la respuesta JSON.
type ResponseBody struct {
	Meta   CalendarMeta    `json:"meta"`
	Events []CalendarEvent `json:"events"`
}

// ParseContext es el contexto de pista para el parser: el año/mes
// solicitados (fallback si el markup no se auto-reporta), el id del
// calendario y la URL resuelta. Inmutable, uno por request.
type ParseContext struct {
	Year       int
	Month      int
	CalendarID string
	SourceURL  string
	Timezone   string
}
