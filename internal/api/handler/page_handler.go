package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pagehub/pages-api/internal/core/domain"
	"github.com/pagehub/pages-api/internal/core/ports"
)

type PageHandler struct {
	pageService ports.PageService
}

func NewPageHandler(pageService ports.PageService) *PageHandler {
	return &PageHandler{pageService: pageService}
}

type pageRequest struct {
	ID     int    `json:"id"     validate:"required,gte=1"`
	Title  string `json:"title"  validate:"required"`
	Author string `json:"author" validate:"required"`
	Body   string `json:"body"   validate:"required"`
}

type pageResponse struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Create stores a new page under the client-assigned identifier.
//
// @Summary      Create a page
// @Tags         pages
// @Accept       json
// @Produce      json
// @Param        body  body      pageRequest  true  "Page to create"
// @Success      201   {object}  pageResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/pages/new [post]
func (h *PageHandler) Create(c echo.Context) error {
	var req pageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	page, err := h.pageService.Create(c.Request().Context(), ports.PageInput{
		ID:     req.ID,
		Title:  req.Title,
		Author: req.Author,
		Body:   req.Body,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toPageResponse(page))
}

// Get returns a single page by its identifier.
//
// @Summary      Get a page
// @Tags         pages
// @Produce      json
// @Param        id   path      int  true  "Page ID"
// @Success      200  {object}  pageResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/pages/{id} [get]
func (h *PageHandler) Get(c echo.Context) error {
	id, err := pageID(c)
	if err != nil {
		return err
	}

	page, err := h.pageService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page))
}

// List returns every stored page.
//
// @Summary      List pages
// @Tags         pages
// @Produce      json
// @Success      200  {array}  pageResponse
// @Router       /api/pages [get]
func (h *PageHandler) List(c echo.Context) error {
	pages, err := h.pageService.List(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]pageResponse, 0, len(pages))
	for _, p := range pages {
		out = append(out, toPageResponse(p))
	}
	return c.JSON(http.StatusOK, out)
}

// Update replaces the content of an existing page.
//
// @Summary      Update a page
// @Tags         pages
// @Accept       json
// @Produce      json
// @Param        id    path      int          true  "Page ID"
// @Param        body  body      pageRequest  true  "New page content"
// @Success      200   {object}  pageResponse
// @Failure      404   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/pages/{id} [put]
func (h *PageHandler) Update(c echo.Context) error {
	id, err := pageID(c)
	if err != nil {
		return err
	}

	var req pageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	// the path parameter wins over whatever the body claims
	req.ID = id
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	page, err := h.pageService.Update(c.Request().Context(), ports.PageInput{
		ID:     req.ID,
		Title:  req.Title,
		Author: req.Author,
		Body:   req.Body,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page))
}

// Delete removes a page.
//
// @Summary      Delete a page
// @Tags         pages
// @Param        id  path  int  true  "Page ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/pages/{id} [delete]
func (h *PageHandler) Delete(c echo.Context) error {
	id, err := pageID(c)
	if err != nil {
		return err
	}

	if err := h.pageService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func pageID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid page id")
	}
	return id, nil
}

func toPageResponse(p *domain.Page) pageResponse {
	resp := pageResponse{
		ID:        p.ID,
		Title:     p.Title,
		Author:    p.Author,
		Body:      p.Body,
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
	}
	if !p.UpdatedAt.IsZero() {
		resp.UpdatedAt = p.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
