package handler

import (
	"net/http"
	"strings"

	"nexus-service/internal/model"
	"nexus-service/pkg/logger"
	"nexus-service/pkg/optional"
	"nexus-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ResourceRequest is the body of POST /api/resources
type ResourceRequest struct {
	Title        string                 `json:"title"`
	URL          string                 `json:"url"`
	ResourceType optional.Value[string] `json:"resource_type"`
	Tags         []string               `json:"tags"`
}

func (h *Handler) CreateResource(c echo.Context) error {
	log := logger.FromContext(c)

	var req ResourceRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid resource payload", zap.Error(err))
		return badRequest(c, "Invalid request data")
	}
	if strings.TrimSpace(req.Title) == "" {
		return badRequest(c, "title is required")
	}

	resource := model.Resource{
		Title:        req.Title,
		URL:          req.URL,
		ResourceType: req.ResourceType.OrElse(model.DefaultResourceType),
		Tags:         req.Tags,
	}
	if err := h.stores.Resources.Create(c.Request().Context(), ownerID(c), &resource); err != nil {
		return fail(c, err, "Resource")
	}

	prometheus.RecordEntityOperation("resource", "create")
	log.Info("Resource saved", zap.String("resource_id", resource.ID), zap.Strings("tags", resource.Tags))
	return c.JSON(http.StatusOK, resource)
}

// ListResources lists the caller's resources filtered by ?resource_type and ?tag
func (h *Handler) ListResources(c echo.Context) error {
	resources, err := h.stores.Resources.List(c.Request().Context(), ownerID(c),
		c.QueryParam("resource_type"), c.QueryParam("tag"))
	if err != nil {
		return fail(c, err, "Resource")
	}
	return c.JSON(http.StatusOK, resources)
}

func (h *Handler) DeleteResource(c echo.Context) error {
	id := c.Param("id")
	if err := h.stores.Resources.Delete(c.Request().Context(), id, ownerID(c)); err != nil {
		return fail(c, err, "Resource")
	}

	prometheus.RecordEntityOperation("resource", "delete")
	return success(c)
}
