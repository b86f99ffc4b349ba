package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/vitalplan-backend/internal/logger"
	"github.com/yungbote/vitalplan-backend/internal/services"
)

type PlanHandler struct {
	log         *logger.Logger
	planService services.PlanService
}

func NewPlanHandler(baseLog *logger.Logger, planService services.PlanService) *PlanHandler {
	return &PlanHandler{log: baseLog.With("handler", "PlanHandler"), planService: planService}
}

// GeneratePlan scores the submitted answers, builds the 28-day action plan
// and returns both documents.
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	var req services.GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	planDoc, reportDoc, err := h.planService.GeneratePlan(c.Request.Context(), req)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "plan_generation_failed", err)
		return
	}
	RespondOK(c, gin.H{"actionPlan": planDoc, "healthReport": reportDoc})
}

func (h *PlanHandler) GetLatestPlan(c *gin.Context) {
	accountID := c.Param("accountId")
	record, err := h.planService.LatestPlan(c.Request.Context(), accountID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "plan_lookup_failed", err)
		return
	}
	if record == nil {
		RespondError(c, http.StatusNotFound, "plan_not_found", fmt.Errorf("no plan for account %s", accountID))
		return
	}
	RespondOK(c, gin.H{"plan": record})
}

func (h *PlanHandler) GetLatestReport(c *gin.Context) {
	accountID := c.Param("accountId")
	record, err := h.planService.LatestReport(c.Request.Context(), accountID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "report_lookup_failed", err)
		return
	}
	if record == nil {
		RespondError(c, http.StatusNotFound, "report_not_found", fmt.Errorf("no health report for account %s", accountID))
		return
	}
	RespondOK(c, gin.H{"healthReport": record})
}
