package controller

import (
	"bible_trivia_backend/internal/model"
	"bible_trivia_backend/internal/service"
	"bible_trivia_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SectionController struct {
	ContentService *service.ContentService
	AttemptService *service.AttemptService
}

func NewSectionController(contentService *service.ContentService, attemptService *service.AttemptService) *SectionController {
	return &SectionController{
		ContentService: contentService,
		AttemptService: attemptService,
	}
}

// CreateSectionRequest
// swagger:model CreateSectionRequest
type CreateSectionRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// ListSections godoc
// @Summary List sections with their question counts
// @Tags sections
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.SectionSummary}
// @Router /sections [get]
func (c *SectionController) ListSections(ctx *gin.Context) {
	sections, err := c.ContentService.ListSections(ctx.Request.Context())
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, sections)
}

// CreateSection godoc
// @Summary Create a section
// @Tags sections
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CreateSectionRequest true "section"
// @Success 201 {object} util.Response{data=model.Section}
// @Failure 400 {object} util.Response "name taken"
// @Failure 403 {object} util.Response
// @Router /sections [post]
func (c *SectionController) CreateSection(ctx *gin.Context) {
	if _, ok := requireRole(ctx, model.RoleAdmin); !ok {
		return
	}
	var req CreateSectionRequest
	if !bindJSON(ctx, &req) {
		return
	}

	section, err := c.ContentService.CreateSection(ctx.Request.Context(), req.Name, req.Description)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, section)
}

// GetSection godoc
// @Summary Fetch one section
// @Tags sections
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "section id"
// @Success 200 {object} util.Response{data=model.Section}
// @Failure 404 {object} util.Response
// @Router /sections/{id} [get]
func (c *SectionController) GetSection(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	section, err := c.ContentService.GetSection(ctx.Request.Context(), id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, section)
}

// CompleteSection godoc
// @Summary Finish a section and apply the time bonus
// @Tags sections
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "section id"
// @Param body body service.CompletionInput true "aggregated counts"
// @Success 201 {object} util.Response{data=service.CompletionResult}
// @Failure 404 {object} util.Response
// @Router /sections/{id}/complete [post]
func (c *SectionController) CompleteSection(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.CompletionInput
	if !bindJSON(ctx, &req) {
		return
	}

	result, err := c.AttemptService.CompleteSection(ctx.Request.Context(), claims.UserID, id, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// ListCompletions godoc
// @Summary Caller's completion records for a section
// @Tags sections
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "section id"
// @Success 200 {object} util.Response{data=[]model.SectionCompletion}
// @Router /sections/{id}/completions [get]
func (c *SectionController) ListCompletions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	completions, err := c.AttemptService.Completions(ctx.Request.Context(), claims.UserID, id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, completions)
}
