package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/cloudmgr/internal/domain/alert"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/utils"
)

type AlertHandler struct {
	service alert.Service
	logger  *logger.Logger
}

func NewAlertHandler(service alert.Service, log *logger.Logger) *AlertHandler {
	return &AlertHandler{service: service, logger: log}
}

// List returns alerts derived from resource statuses
// @Summary List alerts
// @Description One warning per resource that is neither Running nor Stopped. Statuses are not refreshed.
// @Tags Alerts
// @Produce json
// @Success 200 {array} alert.Alert "List of alerts"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /alerts [get]
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.service.List(r.Context())
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to list alerts")
		utils.WriteErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, alerts)
}
