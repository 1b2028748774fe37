package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Srinu-likitha/store-management-mvp/internal/store/service"
)

type StatsHandler struct {
	svc *service.StatsService
}

func NewStatsHandler(svc *service.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// Summary returns procurement totals, cached for a few minutes.
// GET /api/v1/user/stats/summary
func (h *StatsHandler) Summary(c *gin.Context) {
	summary, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		Fail(c, nil, err)
		return
	}
	OK(c, "", summary)
}
