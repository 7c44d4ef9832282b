package server

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/matst80/skill-finder/pkg/common"
	"github.com/matst80/skill-finder/pkg/filter"
	"github.com/matst80/skill-finder/pkg/skills"
	"github.com/matst80/skill-finder/pkg/tracking"
	"github.com/matst80/skill-finder/pkg/urlstate"
	"go.opentelemetry.io/otel/attribute"
)

var json = sonic.ConfigDefault

const suggestionLimit = 5

type SkillsResponse struct {
	filter.Result[skills.Skill]
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type SuggestResponse struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

type UrlResponse struct {
	Query   string              `json:"query"`
	Text    string              `json:"text"`
	Checked map[string][]string `json:"checked"`
}

type ReloadResponse struct {
	Generation uint64 `json:"generation"`
	Items      int    `json:"items"`
}

func publicHeaders(w http.ResponseWriter, maxAge int) {
	w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(maxAge))
	w.Header().Set("Age", "0")
}

// snapshot reads the generation before the catalogue, a key never outlives
// the catalogue it was computed from.
func (ws *WebServer) snapshot() (uint64, *skills.Catalogue) {
	gen := ws.Generation()
	return gen, ws.Catalogue()
}

func (ws *WebServer) GetSchema(w http.ResponseWriter, r *http.Request, enc common.Encoder) error {
	_, c := ws.snapshot()
	publicHeaders(w, 300)
	w.WriteHeader(http.StatusOK)
	return enc.Encode(c.Schema().Categories())
}

// Search decodes the filter state from the query string and returns the
// matching skills with facet counts. The canonical query is the cache key.
func (ws *WebServer) Search(w http.ResponseWriter, r *http.Request, _ common.Encoder) error {
	ctx, span := tracer.Start(r.Context(), "search")
	defer span.End()
	noSearches.Inc()

	gen, c := ws.snapshot()
	state := ws.Codec.DecodeValues(c.Schema(), r.URL.Query())
	canonical := ws.Codec.Encode(state)
	key := cacheKey(gen, canonical)
	span.SetAttributes(attribute.String("query", canonical))

	publicHeaders(w, 60)
	if ws.Cache != nil {
		if data, err := ws.Cache.GetRaw(ctx, key); err == nil {
			noCacheHits.Inc()
			w.Header().Set("X-Cache", "HIT")
			w.WriteHeader(http.StatusOK)
			_, err = w.Write(data)
			return err
		}
	}

	res := SkillsResponse{
		Result: c.Search(state),
		Query:  canonical,
	}
	if res.Total == 0 && state.Query != "" {
		res.Suggestions = c.Suggest(state.Query, suggestionLimit)
	}
	resultSize.Observe(float64(res.Total))
	span.SetAttributes(attribute.Int("total", res.Total))
	if ws.Tracking != nil {
		go ws.Tracking.TrackSearch(tracking.Describe(tracking.SearchEvent{
			Query:           canonical,
			Text:            state.Query,
			NumberOfResults: res.Total,
		}, r))
	}

	data, err := json.Marshal(res)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return err
	}
	if ws.Cache != nil {
		go func() {
			if err := ws.Cache.SetRaw(context.Background(), key, data, ws.CacheTime); err != nil {
				log.Printf("Failed to cache %s: %v", key, err)
			}
		}()
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(data)
	return err
}

// Suggest lists skill names close to q regardless of the checkboxes.
func (ws *WebServer) Suggest(w http.ResponseWriter, r *http.Request, enc common.Encoder) error {
	noSuggests.Inc()
	_, c := ws.snapshot()
	q := r.URL.Query().Get(urlstate.TextKey)
	suggestions := c.Suggest(q, suggestionLimit)
	if suggestions == nil {
		suggestions = []string{}
	}
	publicHeaders(w, 300)
	w.WriteHeader(http.StatusOK)
	return enc.Encode(SuggestResponse{Query: q, Suggestions: suggestions})
}

// Url normalizes a filter query string, dropping everything the schema
// does not know.
func (ws *WebServer) Url(w http.ResponseWriter, r *http.Request, enc common.Encoder) error {
	_, c := ws.snapshot()
	schema := c.Schema()
	state := ws.Codec.DecodeValues(schema, r.URL.Query())
	checked := map[string][]string{}
	for _, category := range schema.Names() {
		if active := state.Checkboxes.Active(category, schema); len(active) > 0 {
			checked[category] = active
		}
	}
	w.WriteHeader(http.StatusOK)
	return enc.Encode(UrlResponse{
		Query:   ws.Codec.Encode(state),
		Text:    state.Query,
		Checked: checked,
	})
}

func (ws *WebServer) HandleReload(w http.ResponseWriter, r *http.Request, enc common.Encoder) error {
	if err := ws.Reload(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return err
	}
	gen, c := ws.snapshot()
	w.WriteHeader(http.StatusOK)
	return enc.Encode(ReloadResponse{
		Generation: gen,
		Items:      c.Len(),
	})
}

func (ws *WebServer) Handle() *http.ServeMux {
	srv := http.NewServeMux()
	srv.HandleFunc("/skills", common.JsonHandler(ws.Origin, ws.Search))
	srv.HandleFunc("/schema", common.JsonHandler(ws.Origin, ws.GetSchema))
	srv.HandleFunc("/suggest", common.JsonHandler(ws.Origin, ws.Suggest))
	srv.HandleFunc("/url", common.JsonHandler(ws.Origin, ws.Url))
	srv.HandleFunc("POST /reload", common.JsonHandler(ws.Origin, ws.HandleReload))
	srv.HandleFunc("OPTIONS /reload", common.JsonHandler(ws.Origin, ws.HandleReload))
	return srv
}
