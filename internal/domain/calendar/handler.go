package calendar

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/events", eventsHandler(svc))
}

// errorResponse es el cuerpo JSON de cualquier fallo del endpoint.
type errorResponse struct {
	Error string `json:"error"`
}

// eventsHandler godoc
// @Summary Feed de eventos del calendario
// @Description Devuelve los eventos del mes pedido, extraídos del calendario publicado upstream. Sin year/month se usa el mes actual en la zona configurada. Con date=YYYY-MM-DD se filtra a un solo día (y ese día determina el mes consultado). format=html devuelve el markup crudo tal cual. skipCache=1 salta la cache compartida.
// @Tags calendar
// @Produce json
// @Param year query int false "Año (2000-2100)"
// @Param month query int false "Mes (1-12)"
// @Param date query string false "Día único YYYY-MM-DD; tiene precedencia sobre year/month"
// @Param format query string false "json (default) o html"
// @Param skipCache query string false "1 o true para saltar la cache"
// @Success 200 {object} ResponseBody
// @Failure 400 {object} errorResponse "Parámetros inválidos"
// @Failure 502 {object} errorResponse "No se pudo obtener el calendario upstream"
// @Router /events [get]
func eventsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := ParseRequest(r, svc.Defaults(), svc.Now())
		if err != nil {
			var reqErr *RequestError
			if errors.As(err, &reqErr) {
				writeError(w, reqErr.Status, reqErr.Message)
				return
			}
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		res, err := svc.Handle(r.Context(), opts)
		if err != nil {
			// Cualquier fallo de adquisición (incluido AcquireError con el
			// último status upstream) se reporta como 502 genérico; el
			// detalle queda en logs.
			svc.log.Error("failed to process calendar request", map[string]any{"err": err.Error()})
			writeError(w, http.StatusBadGateway, "Failed to fetch calendar data")
			return
		}

		w.Header().Set("Content-Type", res.ContentType)
		w.Header().Set("Cache-Control", "public, max-age=300")
		if opts.Format == FormatJSON {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(res.Body)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})
}
