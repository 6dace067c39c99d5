package controller

import (
	"bible_trivia_backend/internal/service"
	"bible_trivia_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ScoreController struct {
	AttemptService *service.AttemptService
}

func NewScoreController(attemptService *service.AttemptService) *ScoreController {
	return &ScoreController{AttemptService: attemptService}
}

// CreateScoreRequest omits attempt_number to let the server assign the next one.
// swagger:model CreateScoreRequest
type CreateScoreRequest struct {
	SectionID     uint `json:"section_id" binding:"required"`
	AttemptNumber int  `json:"attempt_number"`
	Score         int  `json:"score"`
	TimeTaken     int  `json:"time_taken"`
}

// CreateScore godoc
// @Summary Record an attempt score
// @Tags scores
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CreateScoreRequest true "score"
// @Success 201 {object} util.Response{data=model.Score}
// @Failure 404 {object} util.Response "unknown section"
// @Failure 409 {object} util.Response "attempt number already used"
// @Router /scores [post]
func (c *ScoreController) CreateScore(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req CreateScoreRequest
	if !bindJSON(ctx, &req) {
		return
	}

	score, err := c.AttemptService.RecordAttempt(ctx.Request.Context(), service.RecordAttemptInput{
		UserID:        claims.UserID,
		SectionID:     req.SectionID,
		AttemptNumber: req.AttemptNumber,
		Score:         req.Score,
		TimeTaken:     req.TimeTaken,
	})
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, score)
}

// MyScores godoc
// @Summary Caller's score history
// @Tags scores
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Score}
// @Router /scores/my-scores [get]
func (c *ScoreController) MyScores(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	scores, err := c.AttemptService.MyScores(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, scores)
}

// Attempts godoc
// @Summary Attempts made and the next attempt number for a section
// @Tags scores
// @Produce json
// @Security ApiKeyAuth
// @Param section_id query int true "section id"
// @Success 200 {object} util.Response{data=service.AttemptStatus}
// @Router /scores/attempts [get]
func (c *ScoreController) Attempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	sectionID, err := strconv.ParseUint(ctx.Query("section_id"), 10, 32)
	if err != nil || sectionID == 0 {
		util.RespondError(ctx, util.NewValidationError("section_id", "must be a positive integer"))
		return
	}
	status, err := c.AttemptService.AttemptStatus(ctx.Request.Context(), claims.UserID, uint(sectionID))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, status)
}

// SectionScores godoc
// @Summary All scores recorded for a section
// @Tags scores
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "section id"
// @Success 200 {object} util.Response{data=[]model.Score}
// @Router /scores/section/{id} [get]
func (c *ScoreController) SectionScores(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	scores, err := c.AttemptService.SectionScores(ctx.Request.Context(), id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, scores)
}
