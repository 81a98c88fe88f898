package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"packquote/internal/domain"
	"packquote/internal/infrastructure/http/v1/dto"
)

// CatalogService is the service surface shared by all catalogs.
type CatalogService[T any] interface {
	Create(ctx context.Context, item *T) (*T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	Update(ctx context.Context, item *T) (*T, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter domain.ListFilter) (*domain.ListResult[T], error)
}

// CatalogHandler serves generic catalog CRUD. Create and Update
// requests are mapped through the supplied functions so each catalog
// keeps its own DTO shapes.
type CatalogHandler[T any, C any, U any] struct {
	BaseHandler

	service   CatalogService[T]
	mapCreate func(C) *T
	applyPut  func(U, *T)
}

// NewCatalogHandler wires a catalog endpoint set.
func NewCatalogHandler[T any, C any, U any](
	service CatalogService[T],
	mapCreate func(C) *T,
	applyPut func(U, *T),
) *CatalogHandler[T, C, U] {
	return &CatalogHandler[T, C, U]{
		service:   service,
		mapCreate: mapCreate,
		applyPut:  applyPut,
	}
}

// Register mounts the standard CRUD routes under rg.
func (h *CatalogHandler[T, C, U]) Register(rg *gin.RouterGroup, path string) {
	group := rg.Group(path)
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/:id", h.GetByID)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}

func (h *CatalogHandler[T, C, U]) Create(c *gin.Context) {
	var req C
	if !h.BindJSON(c, &req) {
		return
	}
	item, err := h.service.Create(c.Request.Context(), h.mapCreate(req))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, item)
}

func (h *CatalogHandler[T, C, U]) GetByID(c *gin.Context) {
	item, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, item)
}

func (h *CatalogHandler[T, C, U]) Update(c *gin.Context) {
	var req U
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.applyPut(req, item)

	updated, err := h.service.Update(c.Request.Context(), item)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, updated)
}

func (h *CatalogHandler[T, C, U]) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

func (h *CatalogHandler[T, C, U]) List(c *gin.Context) {
	var query dto.ListQuery
	if !h.BindQuery(c, &query) {
		return
	}
	page, err := h.service.List(c.Request.Context(), query.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, page)
}
