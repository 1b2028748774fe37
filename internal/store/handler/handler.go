package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Srinu-likitha/store-management-mvp/internal/store/apperr"
	"github.com/Srinu-likitha/store-management-mvp/internal/store/service"
)

// Handlers collects all HTTP handlers.
type Handlers struct {
	Auth    *AuthHandler
	Invoice *InvoiceHandler
	Dc      *DcHandler
	Export  *ExportHandler
	Stats   *StatsHandler
}

func NewHandlers(svc *service.Services, logger *zap.Logger) *Handlers {
	return &Handlers{
		Auth:    NewAuthHandler(svc.Auth),
		Invoice: NewInvoiceHandler(svc.Invoice, svc.Stats, logger),
		Dc:      NewDcHandler(svc.Dc, svc.Stats),
		Export:  NewExportHandler(svc.Export, logger),
		Stats:   NewStatsHandler(svc.Stats),
	}
}

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

// Fail maps service errors onto the envelope. AppError carries its own
// status; anything else is logged and answered as a 500.
func Fail(c *gin.Context, logger *zap.Logger, err error) {
	if ae, ok := apperr.From(err); ok {
		c.JSON(ae.Status, Response{Success: false, Message: ae.Message})
		return
	}
	if logger != nil {
		logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.JSON(http.StatusInternalServerError, Response{Success: false, Message: "Internal Server Error"})
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Message: message})
}
