// Package issue exposes the issue lifecycle over HTTP.
package issue

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"civicgrid/internal/application/issue/usecases"
	"civicgrid/internal/interfaces/http/middleware"
	"civicgrid/internal/shared/constants"
	"civicgrid/internal/shared/errors"
	"civicgrid/internal/shared/logger"
	"civicgrid/internal/shared/utils"
)

type IssueHandler struct {
	createIssueUC   usecases.CreateIssueExecutor
	updateStatusUC  usecases.UpdateStatusExecutor
	addAfterMediaUC usecases.AddAfterMediaExecutor
	reassignUC      usecases.ReassignIssueExecutor
	verifyUC        usecases.VerifyResolutionExecutor
	reopenUC        usecases.ReopenIssueExecutor
	getIssueUC      usecases.GetIssueExecutor
	listIssuesUC    usecases.ListIssuesExecutor
	getStatsUC      usecases.GetIssueStatsExecutor
	logger          logger.Interface
}

func NewIssueHandler(
	createIssueUC usecases.CreateIssueExecutor,
	updateStatusUC usecases.UpdateStatusExecutor,
	addAfterMediaUC usecases.AddAfterMediaExecutor,
	reassignUC usecases.ReassignIssueExecutor,
	verifyUC usecases.VerifyResolutionExecutor,
	reopenUC usecases.ReopenIssueExecutor,
	getIssueUC usecases.GetIssueExecutor,
	listIssuesUC usecases.ListIssuesExecutor,
	getStatsUC usecases.GetIssueStatsExecutor,
) *IssueHandler {
	return &IssueHandler{
		createIssueUC:   createIssueUC,
		updateStatusUC:  updateStatusUC,
		addAfterMediaUC: addAfterMediaUC,
		reassignUC:      reassignUC,
		verifyUC:        verifyUC,
		reopenUC:        reopenUC,
		getIssueUC:      getIssueUC,
		listIssuesUC:    listIssuesUC,
		getStatsUC:      getStatsUC,
		logger:          logger.NewLogger(),
	}
}

// CreateIssue handles POST /issues
func (h *IssueHandler) CreateIssue(c *gin.Context) {
	var req CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create issue", "error", err)
		utils.ErrorResponseWithError(c, utils.FormatBindingError(err))
		return
	}

	result, err := h.createIssueUC.Execute(c.Request.Context(), req.ToCommand(middleware.ActorID(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Issue reported successfully")
}

// GetIssue handles GET /issues/:id. The id segment accepts either a numeric
// issue ID or a full ticket number.
func (h *IssueHandler) GetIssue(c *gin.Context) {
	query := usecases.GetIssueQuery{}
	raw := c.Param("id")
	if strings.HasPrefix(raw, constants.TicketPrefix+"-") {
		query.TicketNumber = raw
	} else {
		id, err := parseIssueID(c)
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
		query.IssueID = id
	}

	result, err := h.getIssueUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListIssues handles GET /issues
func (h *IssueHandler) ListIssues(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	query := usecases.ListIssuesQuery{
		Status:    c.Query("status"),
		Priority:  c.Query("priority"),
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}
	query.CategoryID = uintQuery(c, "category_id")
	query.WardID = uintQuery(c, "ward_id")
	query.ZoneID = uintQuery(c, "zone_id")
	query.ReporterID = uintQuery(c, "reporter_id")
	query.AssigneeID = uintQuery(c, "assignee_id")
	if raw := c.Query("breached"); raw != "" {
		breached := raw == "true" || raw == "1"
		query.Breached = &breached
	}

	result, err := h.listIssuesUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Issues, result.Total, result.Page, result.PageSize)
}

// UpdateStatus handles PATCH /issues/:id/status
func (h *IssueHandler) UpdateStatus(c *gin.Context) {
	issueID, err := parseIssueID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.FormatBindingError(err))
		return
	}

	result, err := h.updateStatusUC.Execute(
		c.Request.Context(),
		req.ToCommand(issueID, middleware.ActorID(c), middleware.ActorRole(c)),
	)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Status updated", result)
}

// AddAfterMedia handles POST /issues/:id/media/after
func (h *IssueHandler) AddAfterMedia(c *gin.Context) {
	issueID, err := parseIssueID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddAfterMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.FormatBindingError(err))
		return
	}

	result, err := h.addAfterMediaUC.Execute(
		c.Request.Context(),
		req.ToCommand(issueID, middleware.ActorID(c), middleware.ActorRole(c)),
	)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Media attached", result)
}

// Reassign handles PATCH /issues/:id/assignee
func (h *IssueHandler) Reassign(c *gin.Context) {
	issueID, err := parseIssueID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ReassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.FormatBindingError(err))
		return
	}

	result, err := h.reassignUC.Execute(
		c.Request.Context(),
		req.ToCommand(issueID, middleware.ActorID(c), middleware.ActorRole(c)),
	)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Issue reassigned", result)
}

// VerifyResolution handles POST /issues/:id/verification
func (h *IssueHandler) VerifyResolution(c *gin.Context) {
	issueID, err := parseIssueID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.FormatBindingError(err))
		return
	}

	result, err := h.verifyUC.Execute(
		c.Request.Context(),
		req.ToCommand(issueID, middleware.ActorID(c), middleware.ActorRole(c)),
	)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Resolution reviewed", result)
}

// Reopen handles POST /issues/:id/reopen
func (h *IssueHandler) Reopen(c *gin.Context) {
	issueID, err := parseIssueID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ReopenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.FormatBindingError(err))
		return
	}

	result, err := h.reopenUC.Execute(
		c.Request.Context(),
		req.ToCommand(issueID, middleware.ActorID(c), middleware.ActorRole(c)),
	)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Issue reopened", result)
}

// GetStats handles GET /issues/stats
func (h *IssueHandler) GetStats(c *gin.Context) {
	query := usecases.GetIssueStatsQuery{}
	if wardID := uintQuery(c, "ward_id"); wardID != 0 {
		query.WardID = &wardID
	}

	result, err := h.getStatsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func parseIssueID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid issue ID")
	}
	return uint(id), nil
}

func uintQuery(c *gin.Context, name string) uint {
	v, _ := strconv.ParseUint(c.Query(name), 10, 64)
	return uint(v)
}
