package handlers

import (
	"net/http"

	"github.com/minhobin/mtt/internal/mttlist"
	"github.com/minhobin/mtt/pkg/logger"
)

// ListHandler handles the daily MTT all-pass list endpoints
type ListHandler struct {
	service *mttlist.Service
	logger  *logger.Logger
}

// NewListHandler creates a new list handler
func NewListHandler(service *mttlist.Service, log *logger.Logger) *ListHandler {
	return &ListHandler{
		service: service,
		logger:  log,
	}
}

// GetLatest returns the latest all-pass list snapshot. The scheduler
// keeps the cache warm; a cold cache triggers an on-demand refresh.
// GET /api/mtt/latest
func (h *ListHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := h.service.Latest()
	if !ok {
		refreshed, err := h.service.Refresh(r.Context())
		if err != nil {
			h.logger.WithError(err).Error("On-demand MTT list refresh failed")
			respondFailure(w, err)
			return
		}
		snapshot = refreshed
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    snapshot,
	})
}
