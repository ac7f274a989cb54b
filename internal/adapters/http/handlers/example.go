package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/juaoantonio/clean-arch-ddd-template/internal/adapters/http/dto"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/app"
)

// ExampleHandler handles the example resource.
type ExampleHandler struct {
	service *app.ExampleService
}

// NewExampleHandler creates a new example handler.
func NewExampleHandler(service *app.ExampleService) *ExampleHandler {
	return &ExampleHandler{
		service: service,
	}
}

// Create handles POST /api/v1/examples.
//
// @Summary Create an example
// @Tags examples
// @Accept json
// @Produce json
// @Param body body dto.CreateExampleRequest true "Example"
// @Success 201 {object} dto.ExampleResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /api/v1/examples [post]
func (h *ExampleHandler) Create(c *gin.Context) {
	var req dto.CreateExampleRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithRequestError(c, err)
		return
	}

	created, err := h.service.CreateExample(c.Request.Context(), app.CreateExampleInput{
		Name: *req.Name,
		Age:  *req.Age,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromExample(created))
}

// List handles GET /api/v1/examples. Items come in insertion order and are
// paged with an opaque cursor.
//
// @Summary List examples
// @Tags examples
// @Produce json
// @Param cursor query string false "Cursor of the previous page"
// @Param limit query int false "Page size (1-100)"
// @Success 200 {object} dto.PaginatedResponse[dto.ExampleResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/examples [get]
func (h *ExampleHandler) List(c *gin.Context) {
	var req dto.PaginationRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		dto.RespondWithRequestError(c, err)
		return
	}

	items, err := h.service.ListExamples(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	page, err := dto.Paginate(dto.FromExamples(items), &req, func(r dto.ExampleResponse) string { return r.ID })
	if errors.Is(err, dto.ErrInvalidCursor) {
		dto.AbortWithCode(c, dto.ErrorCodeBadRequest, err.Error())
		return
	}

	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// Get handles GET /api/v1/examples/:id.
//
// @Summary Get an example
// @Tags examples
// @Produce json
// @Param id path string true "Example ID"
// @Success 200 {object} dto.ExampleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/examples/{id} [get]
func (h *ExampleHandler) Get(c *gin.Context) {
	found, err := h.service.GetExample(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromExample(found))
}

// Change handles PATCH /api/v1/examples/:id. Omitted fields keep their value.
//
// @Summary Change an example
// @Tags examples
// @Accept json
// @Produce json
// @Param id path string true "Example ID"
// @Param body body dto.ChangeExampleRequest true "Changes"
// @Success 200 {object} dto.ExampleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /api/v1/examples/{id} [patch]
func (h *ExampleHandler) Change(c *gin.Context) {
	var req dto.ChangeExampleRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithRequestError(c, err)
		return
	}

	changed, err := h.service.ChangeExample(c.Request.Context(), c.Param("id"), app.ChangeExampleInput{
		Name: req.Name,
		Age:  req.Age,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromExample(changed))
}

// Delete handles DELETE /api/v1/examples/:id.
//
// @Summary Delete an example
// @Tags examples
// @Param id path string true "Example ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/examples/{id} [delete]
func (h *ExampleHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteExample(c.Request.Context(), c.Param("id")); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteMany handles POST /api/v1/examples/delete. Nothing is removed unless
// every identifier is stored.
//
// @Summary Delete several examples
// @Tags examples
// @Accept json
// @Param body body dto.IDsRequest true "Identifiers"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/examples/delete [post]
func (h *ExampleHandler) DeleteMany(c *gin.Context) {
	var req dto.IDsRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithRequestError(c, err)
		return
	}

	if err := h.service.DeleteExamples(c.Request.Context(), req.IDs); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Search handles POST /api/v1/examples/search. Only stored examples are
// returned, in insertion order; unknown identifiers are skipped.
//
// @Summary Get several examples by identifier
// @Tags examples
// @Accept json
// @Produce json
// @Param body body dto.IDsRequest true "Identifiers"
// @Success 200 {object} dto.ExamplesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/examples/search [post]
func (h *ExampleHandler) Search(c *gin.Context) {
	var req dto.IDsRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithRequestError(c, err)
		return
	}

	items, err := h.service.GetExamples(c.Request.Context(), req.IDs)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ExamplesResponse{Items: dto.FromExamples(items)})
}

// Exists handles POST /api/v1/examples/exists.
//
// @Summary Check which examples are stored
// @Tags examples
// @Accept json
// @Produce json
// @Param body body dto.IDsRequest true "Identifiers"
// @Success 200 {object} dto.ExistsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/examples/exists [post]
func (h *ExampleHandler) Exists(c *gin.Context) {
	var req dto.IDsRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithRequestError(c, err)
		return
	}

	result, err := h.service.CheckExamples(c.Request.Context(), req.IDs)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromExistsResult(result))
}

// RegisterExampleRoutes registers the example routes on rg. writeMiddleware
// guards the routes that change state.
func (h *ExampleHandler) RegisterExampleRoutes(rg *gin.RouterGroup, writeMiddleware ...gin.HandlerFunc) {
	examples := rg.Group("/examples")
	examples.GET("", h.List)
	examples.GET("/:id", h.Get)
	examples.POST("/exists", h.Exists)
	examples.POST("/search", h.Search)

	writes := examples.Group("", writeMiddleware...)
	writes.POST("", h.Create)
	writes.PATCH("/:id", h.Change)
	writes.DELETE("/:id", h.Delete)
	writes.POST("/delete", h.DeleteMany)
}
