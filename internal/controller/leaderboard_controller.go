package controller

import (
	"bible_trivia_backend/internal/service"
	"bible_trivia_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LeaderboardController struct {
	LeaderboardService *service.LeaderboardService
}

func NewLeaderboardController(leaderboardService *service.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{LeaderboardService: leaderboardService}
}

// Global godoc
// @Summary Top users by summed score
// @Tags leaderboard
// @Produce json
// @Param top_n query int false "rows to return" default(10)
// @Success 200 {object} util.Response{data=[]model.LeaderboardEntry}
// @Router /leaderboard/global [get]
func (c *LeaderboardController) Global(ctx *gin.Context) {
	topN, err := util.QueryInt(ctx, "top_n", 0)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	entries, err := c.LeaderboardService.Global(ctx.Request.Context(), topN)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

// Section godoc
// @Summary Top users for one section
// @Tags leaderboard
// @Produce json
// @Param id path int true "section id"
// @Param top_n query int false "rows to return" default(10)
// @Success 200 {object} util.Response{data=[]model.LeaderboardEntry}
// @Router /leaderboard/section/{id} [get]
func (c *LeaderboardController) Section(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	topN, err := util.QueryInt(ctx, "top_n", 0)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	entries, err := c.LeaderboardService.Section(ctx.Request.Context(), id, topN)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}
