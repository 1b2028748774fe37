package handler

import (
	"encoding/base64"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Srinu-likitha/store-management-mvp/internal/middleware"
	"github.com/Srinu-likitha/store-management-mvp/internal/store/service"
)

type InvoiceHandler struct {
	svc    *service.InvoiceService
	stats  *service.StatsService
	logger *zap.Logger
}

func NewInvoiceHandler(svc *service.InvoiceService, stats *service.StatsService, logger *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{svc: svc, stats: stats, logger: logger}
}

// invoiceRequest is the create/update payload. The attachment travels as
// base64 alongside the invoice fields and is uploaded before the insert.
type invoiceRequest struct {
	service.MaterialInvoiceInput
	AttachmentBase64 string `json:"invoiceAttachmentBase64"`
	AttachmentName   string `json:"invoiceAttachmentName"`
	AttachmentType   string `json:"invoiceAttachmentType"`
}

// resolveAttachment uploads the base64 attachment, if any, and rewrites
// the input to carry the stored object URL.
func (h *InvoiceHandler) resolveAttachment(c *gin.Context, req *invoiceRequest) bool {
	if req.AttachmentBase64 == "" {
		return true
	}
	content, err := base64.StdEncoding.DecodeString(req.AttachmentBase64)
	if err != nil {
		BadRequest(c, "Invoice attachment is not valid base64")
		return false
	}
	url, err := h.svc.UploadAttachment(c.Request.Context(), content, req.AttachmentName, req.AttachmentType)
	if err != nil {
		Fail(c, h.logger, err)
		return false
	}
	req.InvoiceAttachment = url
	return true
}

// Create registers a new material invoice.
// POST /api/v1/user/create/material-invoice
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body")
		return
	}
	if !h.resolveAttachment(c, &req) {
		return
	}
	invoice, err := h.svc.Create(c.Request.Context(), c.GetString(middleware.ContextUserID), &req.MaterialInvoiceInput)
	if err != nil {
		Fail(c, h.logger, err)
		return
	}
	h.stats.Invalidate(c.Request.Context())
	Created(c, "Material Invoice created successfully", invoice)
}

// Update replaces an unapproved invoice and its items.
// POST /api/v1/user/update/material-invoice/:id
func (h *InvoiceHandler) Update(c *gin.Context) {
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body")
		return
	}
	if !h.resolveAttachment(c, &req) {
		return
	}
	invoice, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req.MaterialInvoiceInput)
	if err != nil {
		Fail(c, h.logger, err)
		return
	}
	h.stats.Invalidate(c.Request.Context())
	OK(c, "Material Invoice updated successfully", invoice)
}

// Delete removes an unapproved invoice.
// DELETE /api/v1/user/delete/material-invoice/:id
func (h *InvoiceHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		Fail(c, h.logger, err)
		return
	}
	h.stats.Invalidate(c.Request.Context())
	OK(c, "Material Invoice deleted successfully", nil)
}

// Get returns a single invoice with its items.
// GET /api/v1/user/get/material-invoice/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	invoice, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, h.logger, err)
		return
	}
	OK(c, "", invoice)
}

// List returns all invoices, newest first.
// GET /api/v1/user/list/material-invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	invoices, err := h.svc.List(c.Request.Context())
	if err != nil {
		Fail(c, h.logger, err)
		return
	}
	OK(c, "", invoices)
}

type approvalRequest struct {
	ID       string `json:"id"`
	Approved bool   `json:"approved"`
}

// Approve sets the invoice approval flag.
// POST /api/v1/user/approve/material-invoice
func (h *InvoiceHandler) Approve(c *gin.Context) {
	var req approvalRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		BadRequest(c, "Invoice id is required")
		return
	}
	invoice, err := h.svc.Approve(c.Request.Context(), req.ID, req.Approved)
	if err != nil {
		Fail(c, h.logger, err)
		return
	}
	h.stats.Invalidate(c.Request.Context())
	OK(c, "Material Invoice approval updated", invoice)
}

// ApprovePayment marks an approved invoice as paid.
// POST /api/v1/user/approve/invoice-payment
func (h *InvoiceHandler) ApprovePayment(c *gin.Context) {
	var req approvalRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		BadRequest(c, "Invoice id is required")
		return
	}
	invoice, err := h.svc.ApprovePayment(c.Request.Context(), req.ID, req.Approved)
	if err != nil {
		Fail(c, h.logger, err)
		return
	}
	h.stats.Invalidate(c.Request.Context())
	OK(c, "Invoice payment updated", invoice)
}
