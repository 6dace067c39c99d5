package controller

import (
	"bible_trivia_backend/internal/service"
	"bible_trivia_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	AttemptService  *service.AttemptService
	ProgressService *service.ProgressService
}

func NewProgressController(attemptService *service.AttemptService, progressService *service.ProgressService) *ProgressController {
	return &ProgressController{
		AttemptService:  attemptService,
		ProgressService: progressService,
	}
}

// SubmitRequest maps question ids to the chosen 1-based option.
// swagger:model SubmitRequest
type SubmitRequest struct {
	SectionID uint         `json:"section_id" binding:"required"`
	Answers   map[uint]int `json:"answers"`
}

// Submit godoc
// @Summary Grade a batch of answers
// @Description Unknown question ids are left out of the feedback.
// @Tags progress
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body SubmitRequest true "answers"
// @Success 200 {object} util.Response{data=[]service.Feedback}
// @Router /progress/submit [post]
func (c *ProgressController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req SubmitRequest
	if !bindJSON(ctx, &req) {
		return
	}

	feedback, err := c.AttemptService.GradeSubmission(ctx.Request.Context(), claims.UserID, req.SectionID, req.Answers)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, feedback)
}

// Create godoc
// @Summary Record a single progress entry
// @Tags progress
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ProgressInput true "progress"
// @Success 201 {object} util.Response{data=model.Progress}
// @Failure 404 {object} util.Response
// @Router /progress [post]
func (c *ProgressController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.ProgressInput
	if !bindJSON(ctx, &req) {
		return
	}
	progress, err := c.ProgressService.Record(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, progress)
}

// MyProgress godoc
// @Summary Caller's progress records
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Progress}
// @Router /progress/my-progress [get]
func (c *ProgressController) MyProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	records, err := c.ProgressService.MyProgress(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

// SectionPerformance godoc
// @Summary Caller's answer counts for one section
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "section id"
// @Success 200 {object} util.Response{data=model.SectionPerformance}
// @Router /progress/section/{id}/performance [get]
func (c *ProgressController) SectionPerformance(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	perf, err := c.ProgressService.SectionPerformance(ctx.Request.Context(), claims.UserID, id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, perf)
}
