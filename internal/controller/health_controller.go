// internal/controller/health_controller.go
package controller

import (
	"net/http"
	"os"

	"github.com/rs/zerolog/log"
)

// HealthController reports whether the customer CSV source is available.
type HealthController struct {
	CSVPath string
}

// Health returns 200 when the CSV path is a regular file and 400 otherwise.
// The body is always an empty JSON object.
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	info, err := os.Stat(c.CSVPath)
	exists := err == nil
	isFile := exists && info.Mode().IsRegular()

	log.Debug().Str("path", c.CSVPath).Bool("exists", exists).Bool("is_file", isFile).Msg("health check")

	w.Header().Set("Content-Type", "application/json")
	if !isFile {
		w.WriteHeader(http.StatusBadRequest)
	}
	w.Write([]byte("{}"))
}
