package controller

import (
	"bible_trivia_backend/internal/model"
	"bible_trivia_backend/internal/service"
	"bible_trivia_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	ContentService *service.ContentService
}

func NewQuestionController(contentService *service.ContentService) *QuestionController {
	return &QuestionController{ContentService: contentService}
}

// ListBySection godoc
// @Summary List a section's questions
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "section id"
// @Param difficulty query string false "easy, medium or hard"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Failure 400 {object} util.Response "unknown difficulty"
// @Router /questions/section/{id} [get]
func (c *QuestionController) ListBySection(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	questions, err := c.ContentService.QuestionsForSection(ctx.Request.Context(), id, ctx.Query("difficulty"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// ListAll godoc
// @Summary List every question
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Question}
// @Router /questions [get]
func (c *QuestionController) ListAll(ctx *gin.Context) {
	questions, err := c.ContentService.AllQuestions(ctx.Request.Context())
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// GetQuestion godoc
// @Summary Fetch one question
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response
// @Router /questions/{id} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	question, err := c.ContentService.GetQuestion(ctx.Request.Context(), id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// CreateQuestion godoc
// @Summary Create a question
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuestionInput true "question"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	if _, ok := requireRole(ctx, model.RoleAdmin); !ok {
		return
	}
	var req service.QuestionInput
	if !bindJSON(ctx, &req) {
		return
	}
	question, err := c.ContentService.CreateQuestion(ctx.Request.Context(), req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// CreateBatch godoc
// @Summary Bulk-load questions, skipping invalid entries
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body []service.QuestionInput true "questions"
// @Success 201 {object} util.Response{data=service.QuestionBatchResult}
// @Failure 403 {object} util.Response
// @Router /questions/batch [post]
func (c *QuestionController) CreateBatch(ctx *gin.Context) {
	if _, ok := requireRole(ctx, model.RoleAdmin); !ok {
		return
	}
	var req []service.QuestionInput
	if !bindJSON(ctx, &req) {
		return
	}
	result, err := c.ContentService.CreateQuestions(ctx.Request.Context(), req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, result)
}
