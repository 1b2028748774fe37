package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Srinu-likitha/store-management-mvp/internal/config"
	"github.com/Srinu-likitha/store-management-mvp/internal/middleware"
	"github.com/Srinu-likitha/store-management-mvp/internal/store/entity"
	"github.com/Srinu-likitha/store-management-mvp/internal/store/repository"
)

// RegisterRoutes wires the API. Every /user route sits behind JWT auth plus
// a per-request role check against the users table.
func RegisterRoutes(r *gin.Engine, h *Handlers, repos *repository.Repositories, cfg *config.Config) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.GET("/me", middleware.JWTAuth(cfg.JWT.Secret), h.Auth.Me)
	}

	user := v1.Group("/user")
	user.Use(middleware.JWTAuth(cfg.JWT.Secret))
	{
		requires := func(action entity.Action) gin.HandlerFunc {
			return middleware.RequireAction(repos.User, action)
		}
		any := middleware.VerifyUser(repos.User, entity.RoleAny)

		user.POST("/create/material-invoice", requires(entity.ActionCreateInvoice), h.Invoice.Create)
		user.POST("/update/material-invoice/:id", requires(entity.ActionUpdateInvoice), h.Invoice.Update)
		user.DELETE("/delete/material-invoice/:id", requires(entity.ActionDeleteInvoice), h.Invoice.Delete)
		user.GET("/get/material-invoice/:id", any, h.Invoice.Get)
		user.GET("/list/material-invoices", any, h.Invoice.List)
		user.POST("/approve/material-invoice", requires(entity.ActionApproveInvoice), h.Invoice.Approve)
		user.POST("/approve/invoice-payment", requires(entity.ActionApprovePayment), h.Invoice.ApprovePayment)

		user.POST("/create/dc-entry", requires(entity.ActionCreateDc), h.Dc.Create)
		user.GET("/get/dc-entry/:id", any, h.Dc.Get)
		user.GET("/list/dc-entries", any, h.Dc.List)
		user.POST("/approve/dc-entry", requires(entity.ActionApproveDc), h.Dc.Approve)

		user.GET("/export/material-invoices", any, h.Export.MaterialInvoices)
		user.GET("/stats/summary", any, h.Stats.Summary)
	}
}
