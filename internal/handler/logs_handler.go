package handler

import (
	"encoding/json"
	"net/http"
	"path/filepath"

	"github.com/evyataryagoni/aqi2cigarette/internal/models"
)

// LogsHandler serves the application log file for download
type LogsHandler struct {
	path string
}

// NewLogsHandler creates a handler for the log file at path.
// An empty path means logging goes to stdout only.
func NewLogsHandler(path string) *LogsHandler {
	return &LogsHandler{path: path}
}

// Download handles GET /logs/downloads
// @Summary      Download application logs
// @Description  Returns the JSON log file written by the server, if LOG_FILE is configured
// @Tags         Operations
// @Produce      octet-stream
// @Success      200  {file}    file
// @Failure      404  {object}  models.ErrorResponse  "No log file configured"
// @Router       /logs/downloads [get]
func (h *LogsHandler) Download(w http.ResponseWriter, r *http.Request) {
	if h.path == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(models.NewErrorResponse(http.StatusNotFound, "no log file configured"))
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="`+filepath.Base(h.path)+`"`)
	http.ServeFile(w, r, h.path)
}
