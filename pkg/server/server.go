package server

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/matst80/skill-finder/pkg/skills"
	"github.com/matst80/skill-finder/pkg/tracking"
	"github.com/matst80/skill-finder/pkg/urlstate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var (
	name   = "skill-finder-server"
	tracer = otel.Tracer(name)

	noSearches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skillfinder_searches_total",
		Help: "The total number of processed searches",
	})
	noSuggests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skillfinder_suggest_total",
		Help: "The total number of processed suggestions",
	})
	noCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skillfinder_cache_hits_total",
		Help: "The total number of searches answered from cache",
	})
	noReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillfinder_reloads_total",
		Help: "The total number of catalogue reloads",
	}, []string{"result"})
	noItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "skillfinder_items_total",
		Help: "The number of skills in the served catalogue",
	})
	resultSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "skillfinder_result_size",
		Help:    "Number of skills returned per search",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})
)

var ErrNoLoader = errors.New("no catalogue loader configured")

// Loader builds a fresh catalogue, typically from the data folder.
type Loader func() (*skills.Catalogue, error)

type WebServer struct {
	catalogue  atomic.Pointer[skills.Catalogue]
	generation atomic.Uint64
	reloadMu   sync.Mutex

	Loader    Loader
	Codec     urlstate.Codec
	Cache     *Cache
	CacheTime time.Duration
	Tracking  tracking.Tracking
	Origin    string
}

// NewWebServer loads the first catalogue; the server is not usable without one.
func NewWebServer(loader Loader) (*WebServer, error) {
	ws := &WebServer{
		Loader:    loader,
		Codec:     urlstate.Default,
		CacheTime: 5 * time.Minute,
	}
	if err := ws.Reload(); err != nil {
		return nil, err
	}
	return ws, nil
}

// NewWebServerWithCatalogue serves a fixed catalogue. Reload fails unless a
// Loader is set afterwards.
func NewWebServerWithCatalogue(c *skills.Catalogue) *WebServer {
	ws := &WebServer{
		Codec:     urlstate.Default,
		CacheTime: 5 * time.Minute,
	}
	ws.Swap(c)
	return ws
}

func (ws *WebServer) Catalogue() *skills.Catalogue {
	return ws.catalogue.Load()
}

// Generation increases with every swapped catalogue and is part of the
// cache keys, so stale responses are never served after a reload.
func (ws *WebServer) Generation() uint64 {
	return ws.generation.Load()
}

func (ws *WebServer) Swap(c *skills.Catalogue) {
	ws.catalogue.Store(c)
	ws.generation.Add(1)
	noItems.Set(float64(c.Len()))
	if ws.Cache != nil {
		ws.Cache.Clear()
	}
}

// Reload replaces the catalogue with a freshly loaded one. On failure the
// current catalogue stays in place.
func (ws *WebServer) Reload() error {
	if ws.Loader == nil {
		return ErrNoLoader
	}
	ws.reloadMu.Lock()
	defer ws.reloadMu.Unlock()

	start := time.Now()
	c, err := ws.Loader()
	if err != nil {
		noReloads.WithLabelValues("error").Inc()
		return fmt.Errorf("reload catalogue: %w", err)
	}
	ws.Swap(c)
	noReloads.WithLabelValues("ok").Inc()
	log.Printf("Loaded %d skills in %v (generation %d)", c.Len(), time.Since(start), ws.Generation())
	return nil
}

func cacheKey(generation uint64, canonical string) string {
	return fmt.Sprintf("skills:%d:%s", generation, canonical)
}
