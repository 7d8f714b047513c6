// internal/controller/time_controller.go
package controller

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/unclebandit/customer-bootstrap/internal/service"
)

type TimeController struct {
	TimeService *service.TimeService
}

// GetTime renders the current time as JSON or HTML depending on Accept.
func (c *TimeController) GetTime(w http.ResponseWriter, r *http.Request) {
	mediaType := negotiate(r.Header.Get("Accept"))
	if mediaType == "" {
		http.Error(w, "not acceptable", http.StatusNotAcceptable)
		return
	}

	now := c.TimeService.GetTime()

	if mediaType == "text/html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(service.RenderTemplate(service.TimeTemplate, map[string]string{"time": now})))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"time": now})
}

// negotiate picks application/json or text/html from an Accept header,
// honouring q-values and, for ties, header order. JSON wins for a missing
// header and for wildcards. It returns "" when neither is acceptable.
func negotiate(accept string) string {
	if strings.TrimSpace(accept) == "" {
		return "application/json"
	}

	best, bestQ := "", 0.0
	for _, part := range strings.Split(accept, ",") {
		mediaType, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		q := 1.0
		if v, ok := params["q"]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				q = parsed
			}
		}
		if q <= 0 {
			continue
		}

		var candidate string
		switch mediaType {
		case "application/json", "application/*", "*/*":
			candidate = "application/json"
		case "text/html", "text/*":
			candidate = "text/html"
		default:
			continue
		}
		if q > bestQ {
			best, bestQ = candidate, q
		}
	}
	return best
}
