package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/cloudmgr/internal/domain/metric"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/utils"
)

type MetricHandler struct {
	service metric.Service
	logger  *logger.Logger
}

func NewMetricHandler(service metric.Service, log *logger.Logger) *MetricHandler {
	return &MetricHandler{service: service, logger: log}
}

// ForResource returns the utilisation series of a resource
// @Summary Resource metrics
// @Description Recent CPU, memory and network utilisation. Measured for AWS VMs when CloudWatch is reachable, synthetic otherwise.
// @Tags Metrics
// @Produce json
// @Param id path int true "Resource ID"
// @Success 200 {array} metric.Point "Utilisation series"
// @Failure 400 {object} utils.ErrorResponse "Invalid resource ID"
// @Failure 404 {object} utils.ErrorResponse "Resource not found"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /resources/{id}/metrics [get]
func (h *MetricHandler) ForResource(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		utils.WriteErr(w, err)
		return
	}

	points, err := h.service.ForResource(r.Context(), id)
	if err != nil {
		if !errors.IsNotFound(err) {
			h.logger.ErrorWithErr(err, "Failed to get resource metrics")
		}
		utils.WriteErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, points)
}
