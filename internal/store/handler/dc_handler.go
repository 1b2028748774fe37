package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Srinu-likitha/store-management-mvp/internal/middleware"
	"github.com/Srinu-likitha/store-management-mvp/internal/store/service"
)

type DcHandler struct {
	svc   *service.DcService
	stats *service.StatsService
}

func NewDcHandler(svc *service.DcService, stats *service.StatsService) *DcHandler {
	return &DcHandler{svc: svc, stats: stats}
}

// Create registers a delivery challan entry.
// POST /api/v1/user/create/dc-entry
func (h *DcHandler) Create(c *gin.Context) {
	var input service.DcEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "Invalid request body")
		return
	}
	entry, err := h.svc.Create(c.Request.Context(), c.GetString(middleware.ContextUserID), &input)
	if err != nil {
		Fail(c, nil, err)
		return
	}
	h.stats.Invalidate(c.Request.Context())
	Created(c, "DC Entry created successfully", entry)
}

// Get returns a single DC entry.
// GET /api/v1/user/get/dc-entry/:id
func (h *DcHandler) Get(c *gin.Context) {
	entry, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, nil, err)
		return
	}
	OK(c, "", entry)
}

// List returns all DC entries, newest first.
// GET /api/v1/user/list/dc-entries
func (h *DcHandler) List(c *gin.Context) {
	entries, err := h.svc.List(c.Request.Context())
	if err != nil {
		Fail(c, nil, err)
		return
	}
	OK(c, "", entries)
}

// Approve sets the DC entry approval flag.
// POST /api/v1/user/approve/dc-entry
func (h *DcHandler) Approve(c *gin.Context) {
	var req approvalRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		BadRequest(c, "DC entry id is required")
		return
	}
	entry, err := h.svc.Approve(c.Request.Context(), req.ID, req.Approved)
	if err != nil {
		Fail(c, nil, err)
		return
	}
	h.stats.Invalidate(c.Request.Context())
	OK(c, "DC Entry approval updated", entry)
}
