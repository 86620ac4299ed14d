package handlers

import (
	"context"
	"net/http"

	"gymflow/models"

	"github.com/gin-gonic/gin"
)

// ReportService is satisfied by *report.Aggregator.
type ReportService interface {
	GetMemberReport(ctx context.Context, memberID string) (*models.MemberReport, error)
}

type ReportHandler struct {
	ReportService ReportService
}

func NewReportHandler(svc ReportService) *ReportHandler {
	return &ReportHandler{ReportService: svc}
}

// MemberReportHandler handles GET /api/reports/members/:memberId.
func (h *ReportHandler) MemberReportHandler(c *gin.Context) {
	report, err := h.ReportService.GetMemberReport(c.Request.Context(), c.Param("memberId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
