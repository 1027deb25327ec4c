package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

var startedAt = time.Now()

func Healthcheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"uptime":  time.Since(startedAt).Seconds(),
		"now":     time.Now().UTC().Format(time.RFC3339),
	})
}
