package handlers

import (
	"net/http"
	"strconv"

	"github.com/pratik-mahalle/cloudmgr/internal/api/dto"
	"github.com/pratik-mahalle/cloudmgr/internal/domain/audit"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/utils"
)

type LogHandler struct {
	service audit.Service
	logger  *logger.Logger
}

func NewLogHandler(service audit.Service, log *logger.Logger) *LogHandler {
	return &LogHandler{service: service, logger: log}
}

// List returns the action log
// @Summary List action logs
// @Description Action log entries, newest first
// @Tags Logs
// @Produce json
// @Param limit query int false "Maximum number of entries (default: all)"
// @Success 200 {array} dto.LogEntryDTO "Action log"
// @Failure 400 {object} utils.ErrorResponse "Invalid limit"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /logs [get]
func (h *LogHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			utils.WriteError(w, errors.BadRequest("Invalid limit"))
			return
		}
		limit = n
	}

	entries, err := h.service.List(r.Context(), limit)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to list action logs")
		utils.WriteErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, toLogDTOs(entries))
}

// ForResource returns the history of one resource
// @Summary List resource history
// @Description Action log entries of one resource, oldest first
// @Tags Logs
// @Produce json
// @Param id path int true "Resource ID"
// @Success 200 {array} dto.LogEntryDTO "Resource history"
// @Failure 400 {object} utils.ErrorResponse "Invalid resource ID"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /resources/{id}/logs [get]
func (h *LogHandler) ForResource(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		utils.WriteErr(w, err)
		return
	}

	entries, err := h.service.ForResource(r.Context(), id)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to list resource history")
		utils.WriteErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, toLogDTOs(entries))
}

func toLogDTOs(entries []*audit.Entry) []dto.LogEntryDTO {
	dtos := make([]dto.LogEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = dto.NewLogEntryDTO(e)
	}
	return dtos
}
