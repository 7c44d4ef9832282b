package common

import (
	"log"
	"net/http"

	"github.com/bytedance/sonic"
)

var json = sonic.ConfigDefault

// Encoder is the JSON encoder handed to handlers.
type Encoder = sonic.Encoder

// JsonHandler answers preflight requests, sets the JSON headers and logs
// handler errors. Handlers write their own status on failure.
func JsonHandler(origin string, fn func(w http.ResponseWriter, r *http.Request, enc Encoder) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			RespondToOptions(w, r, origin)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		setOrigin(w, r, origin)

		err := fn(w, r, json.NewEncoder(w))
		if err != nil {
			log.Printf("Error handling request %s: %v", r.URL.Path, err)
		}
	}
}

func setOrigin(w http.ResponseWriter, r *http.Request, origin string) {
	if origin == "" {
		origin = r.Header.Get("Origin")
	}
	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
	}
}

func RespondToOptions(w http.ResponseWriter, r *http.Request, origin string) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if r.Header.Get("Origin") != "" {
		setOrigin(w, r, origin)
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
	}
	w.Header().Set("Age", "0")
	w.WriteHeader(http.StatusAccepted)
}
