package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pratik-mahalle/cloudmgr/internal/api/dto"
	"github.com/pratik-mahalle/cloudmgr/internal/domain/resource"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/utils"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/validator"
)

type ResourceHandler struct {
	service   resource.Service
	logger    *logger.Logger
	validator *validator.Validator
}

func NewResourceHandler(service resource.Service, log *logger.Logger, val *validator.Validator) *ResourceHandler {
	return &ResourceHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// List returns all resources with refreshed statuses
// @Summary List resources
// @Description List managed resources. Live AWS statuses are refreshed before responding.
// @Tags Resources
// @Produce json
// @Param provider query string false "Filter by provider (AWS, GCP, Azure)"
// @Param type query string false "Filter by resource type"
// @Param region query string false "Filter by region"
// @Param status query string false "Filter by status"
// @Success 200 {array} resource.Resource "List of resources"
// @Failure 400 {object} utils.ErrorResponse "Invalid filter"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /resources [get]
func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		utils.WriteErr(w, err)
		return
	}

	resources, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to list resources")
		utils.WriteErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, resources)
}

func parseFilter(r *http.Request) (resource.Filter, error) {
	q := r.URL.Query()
	var filter resource.Filter
	invalid := map[string]string{}

	if v := q.Get("provider"); v != "" {
		p, ok := resource.ParseProvider(v)
		if !ok {
			invalid["provider"] = v
		}
		filter.Provider = p
	}
	if v := q.Get("type"); v != "" {
		t, ok := resource.ParseType(v)
		if !ok {
			invalid["type"] = v
		}
		filter.Type = t
	}
	if v := q.Get("status"); v != "" {
		s, ok := resource.ParseStatus(v)
		if !ok {
			invalid["status"] = v
		}
		filter.Status = s
	}
	filter.Region = q.Get("region")

	if len(invalid) > 0 {
		return resource.Filter{}, errors.ValidationError("Invalid filter", invalid)
	}
	return filter, nil
}

// Get returns a single resource
// @Summary Get resource by ID
// @Description Get one resource. Its live status is refreshed first.
// @Tags Resources
// @Produce json
// @Param id path int true "Resource ID"
// @Success 200 {object} resource.Resource "Resource details"
// @Failure 400 {object} utils.ErrorResponse "Invalid resource ID"
// @Failure 404 {object} utils.ErrorResponse "Resource not found"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /resources/{id} [get]
func (h *ResourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		utils.WriteErr(w, err)
		return
	}

	res, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if !errors.IsNotFound(err) {
			h.logger.ErrorWithErr(err, "Failed to get resource")
		}
		utils.WriteErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, res)
}

// Create provisions a new resource
// @Summary Create resource
// @Description Provision a resource through its provider. Provider failures yield a Failed resource, not an error.
// @Tags Resources
// @Accept json
// @Produce json
// @Param request body dto.CreateResourceRequest true "Resource details"
// @Success 201 {object} resource.Resource "Created resource"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /resources [post]
func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	res, err := h.service.Create(r.Context(), req.ToInput())
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to create resource")
		utils.WriteErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, res)
}

// Update applies a partial update to a resource
// @Summary Update resource
// @Description Update name, region, status or tags. The provider is not called.
// @Tags Resources
// @Accept json
// @Produce json
// @Param id path int true "Resource ID"
// @Param request body dto.UpdateResourceRequest true "Fields to update"
// @Success 200 {object} resource.Resource "Updated resource"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 404 {object} utils.ErrorResponse "Resource not found"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /resources/{id} [put]
func (h *ResourceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		utils.WriteErr(w, err)
		return
	}

	var req dto.UpdateResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	res, err := h.service.Update(r.Context(), id, req.ToPatch())
	if err != nil {
		if !errors.IsNotFound(err) {
			h.logger.ErrorWithErr(err, "Failed to update resource")
		}
		utils.WriteErr(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, res)
}

// Delete terminates and removes a resource
// @Summary Delete resource
// @Description Terminate the resource in its provider (best effort) and remove it with its history
// @Tags Resources
// @Produce json
// @Param id path int true "Resource ID"
// @Success 200 {object} utils.MessageResponse "Resource deleted"
// @Failure 400 {object} utils.ErrorResponse "Invalid resource ID"
// @Failure 404 {object} utils.ErrorResponse "Resource not found"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /resources/{id} [delete]
func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		utils.WriteErr(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if !errors.IsNotFound(err) {
			h.logger.ErrorWithErr(err, "Failed to delete resource")
		}
		utils.WriteErr(w, err)
		return
	}

	utils.WriteMessage(w, http.StatusOK, "Deleted")
}

// parseID reads the {id} URL parameter
func parseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, errors.BadRequest("Invalid resource ID")
	}
	return id, nil
}
