package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Srinu-likitha/store-management-mvp/internal/store/service"
)

type ExportHandler struct {
	svc    *service.ExportService
	logger *zap.Logger
}

func NewExportHandler(svc *service.ExportService, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{svc: svc, logger: logger}
}

// MaterialInvoices streams the invoice register as an xlsx workbook.
// GET /api/v1/user/export/material-invoices
func (h *ExportHandler) MaterialInvoices(c *gin.Context) {
	file, filename, err := h.svc.InvoiceRegister(c.Request.Context())
	if err != nil {
		Fail(c, h.logger, err)
		return
	}
	defer file.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)
	if err := file.Write(c.Writer); err != nil {
		h.logger.Error("writing export stream", zap.Error(err))
	}
}
