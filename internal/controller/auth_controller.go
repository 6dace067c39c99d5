package controller

import (
	"bible_trivia_backend/internal/service"
	"bible_trivia_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
	IsRelease   bool
}

func NewAuthController(authService *service.AuthService, isRelease bool) *AuthController {
	return &AuthController{
		AuthService: authService,
		IsRelease:   isRelease,
	}
}

// RegisterRequest defines model for registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is accepted as JSON or as an urlencoded form.
// swagger:model LoginRequest
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// Register godoc
// @Summary Register a new user
// @Tags users
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "registration"
// @Success 201 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response "invalid input or username/email taken"
// @Router /users/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if !bindJSON(ctx, &req) {
		return
	}

	user, err := c.AuthService.Register(ctx.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Created(ctx, user)
}

// Login godoc
// @Summary Exchange credentials for a bearer token
// @Tags users
// @Accept  json,x-www-form-urlencoded
// @Produce  json
// @Param   body body LoginRequest true "credentials"
// @Success 200 {object} util.Response{data=object}
// @Failure 401 {object} util.Response
// @Router /users/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.AuthService.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	maxAge := int(c.AuthService.JWT.ExpireTime.Seconds())
	ctx.SetCookie(util.AccessTokenCookie, token, maxAge, "/", "", c.IsRelease, true)
	util.Success(ctx, gin.H{
		"access_token": token,
		"token_type":   util.TokenType,
	})
}

// Me godoc
// @Summary Current user's profile
// @Tags users
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User}
// @Failure 401 {object} util.Response
// @Router /users/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user, err := c.AuthService.CurrentUser(ctx.Request.Context(), util.GetUserFromContext(ctx))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// Logout clears the token cookie. Bearer tokens stay valid until they expire.
// @Summary Clear the access token cookie
// @Tags users
// @Success 200 {object} util.Response
// @Router /users/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.SetCookie(util.AccessTokenCookie, "", -1, "/", "", c.IsRelease, true)
	util.Success(ctx, nil)
}
