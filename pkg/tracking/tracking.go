package tracking

import "net/http"

// Tracking receives search events from the api. Events are described with
// Describe before the request ends.
type Tracking interface {
	TrackSearch(event SearchEvent)
	Close() error
}

type SearchEvent struct {
	Query           string `json:"query"`
	Text            string `json:"text,omitempty"`
	NumberOfResults int    `json:"noi"`
	Referer         string `json:"referer,omitempty"`
	Ip              string `json:"ip,omitempty"`
	UserAgent       string `json:"user_agent,omitempty"`
}

func clientIp(r *http.Request) string {
	ip := r.Header.Get("X-Real-Ip")
	if ip == "" {
		ip = r.Header.Get("X-Forwarded-For")
	}
	if ip == "" {
		ip = r.RemoteAddr
	}
	return ip
}

// Describe fills the request fields of a search event.
func Describe(event SearchEvent, r *http.Request) SearchEvent {
	event.Referer = r.Header.Get("Referer")
	event.Ip = clientIp(r)
	event.UserAgent = r.UserAgent()
	return event
}
