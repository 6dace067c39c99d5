package controller

import (
	"bible_trivia_backend/internal/model"
	"bible_trivia_backend/internal/service"
	"bible_trivia_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type BibleController struct {
	BibleService *service.BibleService
}

func NewBibleController(bibleService *service.BibleService) *BibleController {
	return &BibleController{BibleService: bibleService}
}

// List godoc
// @Summary Page through stored verses
// @Tags bible
// @Produce json
// @Param skip query int false "offset" default(0)
// @Param limit query int false "page size, at most 500" default(100)
// @Success 200 {object} util.Response{data=service.VersePage}
// @Router /bible [get]
func (c *BibleController) List(ctx *gin.Context) {
	skip, err := util.QueryInt(ctx, "skip", 0)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	limit, err := util.QueryInt(ctx, "limit", util.DefaultVersePageSize)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	page, err := c.BibleService.List(ctx.Request.Context(), skip, limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, page)
}

// Books godoc
// @Summary The canonical book names accepted on questions
// @Tags bible
// @Produce json
// @Success 200 {object} util.Response{data=[]string}
// @Router /bible/books [get]
func (c *BibleController) Books(ctx *gin.Context) {
	util.Success(ctx, model.BibleBooks())
}

// Get godoc
// @Summary Fetch a verse by id
// @Tags bible
// @Produce json
// @Param id path int true "verse id"
// @Success 200 {object} util.Response{data=model.BibleVerse}
// @Failure 404 {object} util.Response
// @Router /bible/{id} [get]
func (c *BibleController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	verse, err := c.BibleService.Get(ctx.Request.Context(), id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, verse)
}

// Lookup godoc
// @Summary Find a verse by reference
// @Tags bible
// @Produce json
// @Param book query string true "book name"
// @Param chapter query int true "chapter"
// @Param verse query int true "verse"
// @Param version query string false "translation" default(KJV)
// @Success 200 {object} util.Response{data=model.BibleVerse}
// @Failure 404 {object} util.Response
// @Router /bible/lookup [get]
func (c *BibleController) Lookup(ctx *gin.Context) {
	chapter, err := util.QueryInt(ctx, "chapter", 0)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	verseNum, err := util.QueryInt(ctx, "verse", 0)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	verse, err := c.BibleService.Lookup(ctx.Request.Context(), ctx.Query("book"), chapter, verseNum, ctx.Query("version"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, verse)
}

// Create godoc
// @Summary Store a verse
// @Tags bible
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.VerseInput true "verse"
// @Success 201 {object} util.Response{data=model.BibleVerse}
// @Failure 400 {object} util.Response "verse already exists"
// @Failure 403 {object} util.Response
// @Router /bible [post]
func (c *BibleController) Create(ctx *gin.Context) {
	if _, ok := requireRole(ctx, model.RoleAdmin); !ok {
		return
	}
	var req service.VerseInput
	if !bindJSON(ctx, &req) {
		return
	}
	verse, err := c.BibleService.Create(ctx.Request.Context(), req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, verse)
}

// Update godoc
// @Summary Replace a verse
// @Tags bible
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "verse id"
// @Param body body service.VerseInput true "verse"
// @Success 200 {object} util.Response{data=model.BibleVerse}
// @Failure 404 {object} util.Response
// @Router /bible/{id} [put]
func (c *BibleController) Update(ctx *gin.Context) {
	if _, ok := requireRole(ctx, model.RoleAdmin); !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.VerseInput
	if !bindJSON(ctx, &req) {
		return
	}
	verse, err := c.BibleService.Update(ctx.Request.Context(), id, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, verse)
}

// Delete godoc
// @Summary Delete a verse
// @Tags bible
// @Security ApiKeyAuth
// @Param id path int true "verse id"
// @Success 204
// @Failure 404 {object} util.Response
// @Router /bible/{id} [delete]
func (c *BibleController) Delete(ctx *gin.Context) {
	if _, ok := requireRole(ctx, model.RoleAdmin); !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.BibleService.Delete(ctx.Request.Context(), id); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// CreateBatch godoc
// @Summary Bulk-load verses, skipping ones already stored
// @Tags bible
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body []service.VerseInput true "verses"
// @Success 201 {object} util.Response{data=service.VerseBatchResult}
// @Router /bible/batch [post]
func (c *BibleController) CreateBatch(ctx *gin.Context) {
	if _, ok := requireRole(ctx, model.RoleAdmin); !ok {
		return
	}
	var req []service.VerseInput
	if !bindJSON(ctx, &req) {
		return
	}
	result, err := c.BibleService.CreateBatch(ctx.Request.Context(), req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, result)
}
