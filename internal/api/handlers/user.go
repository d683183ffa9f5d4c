package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/cloudmgr/internal/api/dto"
	"github.com/pratik-mahalle/cloudmgr/internal/domain/user"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/utils"
)

type UserHandler struct {
	service user.Service
	logger  *logger.Logger
}

func NewUserHandler(service user.Service, log *logger.Logger) *UserHandler {
	return &UserHandler{service: service, logger: log}
}

// List returns all users
// @Summary List users
// @Description List users. The default admin is created on first use.
// @Tags Users
// @Produce json
// @Success 200 {array} dto.UserDTO "List of users"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /users [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to list users")
		utils.WriteErr(w, err)
		return
	}

	dtos := make([]dto.UserDTO, len(users))
	for i, u := range users {
		dtos[i] = dto.NewUserDTO(u)
	}

	utils.WriteJSON(w, http.StatusOK, dtos)
}
