package calendar

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nw3q/toshin-chieria-calender-api/internal/platform/logger"
	"github.com/nw3q/toshin-chieria-calender-api/internal/ports/cache"
)

// Acquirer es lo único que el orquestador sabe de la adquisición.
type Acquirer interface {
	ObtainMarkup(ctx context.Context, year, month int) (Acquired, error)
}

// Result es la respuesta ya codificada, lista para escribir.
type Result struct {
	Body        []byte
	ContentType string
	FromCache   bool
}

// Service secuencia el pipeline: cache -> adquisición -> parseo ->
// filtro de día -> codificación -> cache. Nada persiste entre requests
// salvo la cache compartida, que es de otro.
type Service struct {
	acquirer Acquirer
	cache    cache.Store
	log      logger.Logger
	cacheTTL time.Duration
	defaults Defaults
	now      func() time.Time
}

func NewService(acquirer Acquirer, store cache.Store, log logger.Logger, d Defaults, cacheTTL time.Duration) *Service {
	return &Service{
		acquirer: acquirer,
		cache:    store,
		log:      log,
		cacheTTL: cacheTTL,
		defaults: d,
		now:      time.Now,
	}
}

func (s *Service) Defaults() Defaults { return s.defaults }

func (s *Service) Now() time.Time { return s.now() }

const (
	contentTypeJSON = "application/json; charset=utf-8"
	contentTypeHTML = "text/html; charset=utf-8"
)

// Handle atiende una request ya normalizada.
// Los fallos de cache no cortan el pipeline: se loguean y se sigue como
// si hubiera sido un miss.
func (s *Service) Handle(ctx context.Context, opts RequestOptions) (Result, error) {
	key := opts.CacheKey()

	if !opts.Bypass {
		if e, ok, err := s.cache.Get(ctx, key); err != nil {
			s.log.Warn("cache get failed", map[string]any{"key": key, "err": err.Error()})
		} else if ok {
			return Result{Body: e.Body, ContentType: e.ContentType, FromCache: true}, nil
		}
	}

	acquired, err := s.acquirer.ObtainMarkup(ctx, opts.Year, opts.Month)
	if err != nil {
		return Result{}, err
	}

	var res Result
	if opts.Format == FormatHTML {
		res = Result{Body: []byte(acquired.Markup), ContentType: contentTypeHTML}
	} else {
		body, err := s.buildJSONBody(acquired, opts)
		if err != nil {
			return Result{}, err
		}
		res = Result{Body: body, ContentType: contentTypeJSON}
	}

	if !opts.Bypass {
		if err := s.cache.Set(ctx, key, cache.Entry{Body: res.Body, ContentType: res.ContentType}, s.cacheTTL); err != nil {
			s.log.Warn("cache set failed", map[string]any{"key": key, "err": err.Error()})
		}
	}

	return res, nil
}

func (s *Service) buildJSONBody(acquired Acquired, opts RequestOptions) ([]byte, error) {
	events := ParseCalendar(acquired.Markup, ParseContext{
		Year:       opts.Year,
		Month:      opts.Month,
		CalendarID: opts.CalendarID,
		SourceURL:  acquired.SourceURL,
		Timezone:   opts.Timezone,
	})

	var dateFilter *string
	if opts.Date != nil {
		iso := opts.Date.ISO
		dateFilter = &iso

		filtered := make([]CalendarEvent, 0, len(events))
		for _, e := range events {
			if e.Date == iso {
				filtered = append(filtered, e)
			}
		}
		events = filtered
	}

	body := ResponseBody{
		Meta: CalendarMeta{
			SourceURL:  acquired.SourceURL,
			CalendarID: opts.CalendarID,
			Timezone:   opts.Timezone,
			Year:       opts.Year,
			Month:      opts.Month,
			Date:       dateFilter,
			FetchedAt:  s.now().UTC().Format(time.RFC3339),
		},
		Events: events,
	}

	return json.Marshal(body)
}
