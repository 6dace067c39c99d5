package controller

import (
	"bible_trivia_backend/internal/model"
	"bible_trivia_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// requireRole writes the auth failure itself and reports whether to continue.
func requireRole(ctx *gin.Context, role model.UserRole) (*util.Claims, bool) {
	claims := util.GetUserFromContext(ctx)
	if err := util.Authorize(claims, role); err != nil {
		util.RespondError(ctx, err)
		return nil, false
	}
	return claims, true
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := util.ParseUintParam(ctx, name)
	if err != nil {
		util.RespondError(ctx, err)
		return 0, false
	}
	return id, true
}

func bindJSON(ctx *gin.Context, dst interface{}) bool {
	if err := ctx.ShouldBindJSON(dst); err != nil {
		util.BadRequest(ctx, err.Error())
		return false
	}
	return true
}
