package handlers

import (
	"github.com/gin-gonic/gin"

	"packquote/internal/domain/freight"
	"packquote/internal/domain/quotation"
	"packquote/internal/infrastructure/http/v1/dto"
)

// QuotationHandler serves the quotation lifecycle endpoints.
type QuotationHandler struct {
	BaseHandler

	service *quotation.Service
	freight *freight.Service
}

// NewQuotationHandler wires the quotation endpoints. freightSvc may be
// nil when no carrier API is configured; the freight-options route is
// then not mounted.
func NewQuotationHandler(service *quotation.Service, freightSvc *freight.Service) *QuotationHandler {
	return &QuotationHandler{service: service, freight: freightSvc}
}

// Register mounts the lifecycle routes under rg.
func (h *QuotationHandler) Register(rg *gin.RouterGroup) {
	group := rg.Group("/quotations")
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/stats/by-status", h.StatsByStatus)
	group.GET("/:id", h.GetByID)
	group.PATCH("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
	group.POST("/:id/finalize", h.Finalize)
	group.PATCH("/:id/status", h.UpdateStatus)
	if h.freight != nil {
		group.POST("/:id/freight-options", h.FreightOptions)
	}
}

func (h *QuotationHandler) Create(c *gin.Context) {
	var req dto.CreateQuotationRequest
	if !h.BindJSON(c, &req) {
		return
	}
	q, err := h.service.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, q)
}

func (h *QuotationHandler) GetByID(c *gin.Context) {
	q, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, q)
}

func (h *QuotationHandler) List(c *gin.Context) {
	var query dto.QuotationListQuery
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

func (h *QuotationHandler) Finalize(c *gin.Context) {
	var req dto.FinalizeQuotationRequest
	if !h.BindJSON(c, &req) {
		return
	}
	q, err := h.service.Finalize(c.Request.Context(), c.Param("id"), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, q)
}

func (h *QuotationHandler) Update(c *gin.Context) {
	var req dto.UpdateQuotationRequest
	if !h.BindJSON(c, &req) {
		return
	}
	q, err := h.service.Apply(c.Request.Context(), c.Param("id"), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, q)
}

func (h *QuotationHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}
	q, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), quotation.Status(req.Status))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, q)
}

func (h *QuotationHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

func (h *QuotationHandler) StatsByStatus(c *gin.Context) {
	var query dto.StatsQuery
	if !h.BindQuery(c, &query) {
		return
	}
	counts, err := h.service.CountByStatus(c.Request.Context(), query.DateFrom, query.DateTo)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"counts": counts})
}

// FreightOptions quotes carriers for an existing quotation. The caller
// picks one option and passes it to the finalize endpoint.
func (h *QuotationHandler) FreightOptions(c *gin.Context) {
	q, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	result, err := h.freight.OptionsFor(c.Request.Context(), q)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}
