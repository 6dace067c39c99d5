package controller

import (
	"bible_trivia_backend/internal/model"
	"bible_trivia_backend/internal/service"
	"bible_trivia_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	AuthService *service.AuthService
}

func NewUserController(authService *service.AuthService) *UserController {
	return &UserController{AuthService: authService}
}

// UpdateRoleRequest
// swagger:model UpdateRoleRequest
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UpdateRole godoc
// @Summary Change a user's role
// @Tags users
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "user id"
// @Param   body body UpdateRoleRequest true "new role"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /users/{id}/role [put]
func (c *UserController) UpdateRole(ctx *gin.Context) {
	if _, ok := requireRole(ctx, model.RoleAdmin); !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req UpdateRoleRequest
	if !bindJSON(ctx, &req) {
		return
	}

	user, err := c.AuthService.SetRole(ctx.Request.Context(), id, req.Role)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, user)
}
