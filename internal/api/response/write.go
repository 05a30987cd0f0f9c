package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// JSON writes a JSON response. Stats and sessions change with every game,
// so responses are marked uncacheable.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Cache-Control", "no-store")
	write(w, status, data)
}

// CachedJSON writes a JSON response clients may reuse for maxAge
func CachedJSON(w http.ResponseWriter, status int, data any, maxAge time.Duration) {
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(maxAge.Seconds())))
	write(w, status, data)
}

func write(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// NoContent writes a 204 No Content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
