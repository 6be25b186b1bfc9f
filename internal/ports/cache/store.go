package cache

import (
	"context"
	"time"
)

// Entry es una respuesta ya codificada lista para servir tal cual.
type Entry struct {
	Body        []byte
	ContentType string
}

// Store es la cache compartida de respuestas. Para el core es un
// key-value opaco: put/match y nada más.
type Store interface {
	// Get devuelve la entrada vigente para key, si existe.
	Get(ctx context.Context, key string) (Entry, bool, error)

	// Set guarda la entrada con la vigencia indicada.
	Set(ctx context.Context, key string, e Entry, ttl time.Duration) error
}
