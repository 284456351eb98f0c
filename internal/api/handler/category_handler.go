package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xplog/xp-tracker/internal/core/domain"
	"github.com/xplog/xp-tracker/internal/core/ports"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service ports.CategoryService
}

func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// List handles GET /categories.
//
// With ?id= it returns that category or null. Otherwise it lists the
// caller's categories.
//
// @Summary      List categories or get one by id
// @Tags         categories
// @Produce      json
// @Param        owner-id  header    string  false  "Owner id when no bearer token is sent"
// @Param        id        query     string  false  "Category id"
// @Success      200       {array}   categoryResponse
// @Failure      401       {object}  errorResponse
// @Router       /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	if id := c.QueryParam("id"); id != "" {
		cat := h.service.GetCategoryByID(ctx, id)
		if cat == nil {
			return c.JSON(http.StatusOK, nil)
		}
		return c.JSON(http.StatusOK, toCategoryResponse(*cat))
	}

	owner, err := ctxOwner(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCategoryResponses(h.service.GetCategoriesByOwnerID(ctx, owner)))
}

// Create handles POST /categories.
//
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        owner-id  header    string                 false  "Owner id when no bearer token is sent"
// @Param        body      body      createCategoryRequest  true   "Category"
// @Success      201       {object}  categoryResponse
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Failure      503       {object}  errorResponse
// @Router       /categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	owner, err := ctxOwner(c)
	if err != nil {
		return err
	}

	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.AddCategory(c.Request().Context(), domain.Category{
		Title:       req.Title,
		Description: req.Description,
		Color:       req.Color,
		OwnerID:     owner,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCategoryResponse(created))
}

// Update handles PUT /categories?id=.
//
// @Summary      Edit a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id    query     string               true  "Category id"
// @Param        body  body      editCategoryRequest  true  "Fields to change"
// @Success      200   {object}  categoryResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /categories [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := requiredQuery(c, "id")
	if err != nil {
		return err
	}

	var req editCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.service.EditCategory(c.Request().Context(), id, req.toPatch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCategoryResponse(updated))
}

// Delete handles DELETE /categories?id=. Deleting an absent id succeeds.
//
// @Summary      Delete a category
// @Tags         categories
// @Produce      json
// @Param        id   query     string  true  "Category id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  errorResponse
// @Router       /categories [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := requiredQuery(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.RemoveCategory(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{})
}
