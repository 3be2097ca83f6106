package handler

import (
	"net/http"
	"time"

	"vidtube/internal/api/dto"
	"vidtube/internal/api/middleware"
	"vidtube/internal/api/response"
	"vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService   *service.AuthService
	accessTTL     time.Duration
	refreshTTL    time.Duration
	secureCookies bool
}

func NewAuthHandler(authService *service.AuthService, accessTTL, refreshTTL time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		secureCookies: secureCookies,
	}
}

// Register 用户注册
// @Summary 用户注册
// @Description multipart 表单，avatar 必填，coverImage 可选
// @Tags 用户
// @Accept multipart/form-data
// @Produce json
// @Param fullname formData string true "昵称"
// @Param email formData string true "邮箱"
// @Param username formData string true "用户名"
// @Param password formData string true "密码"
// @Param avatar formData file true "头像"
// @Param coverImage formData file false "封面"
// @Success 201 {object} response.Response{data=dto.UserInfo} "注册成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Failure 409 {object} response.ErrorResponse "用户名或邮箱已存在"
// @Router /users/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	userInfo, err := h.authService.Register(c.Request.Context(), &req,
		middleware.StagedFile(c, "avatar"), middleware.StagedFile(c, "coverImage"))
	if err != nil {
		handleError(c, "Register", err)
		return
	}

	response.Created(c, "User registered successfully", userInfo)
}

// Login 用户登录
// @Summary 用户登录
// @Description 用户名或邮箱登录，令牌同时写入 httpOnly cookie
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录信息"
// @Success 200 {object} response.Response{data=dto.LoginData} "登录成功"
// @Failure 401 {object} response.ErrorResponse "密码错误"
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Router /users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	data, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		handleError(c, "Login", err)
		return
	}

	h.setTokenCookies(c, &data.TokenPair)
	response.OK(c, "User logged in successfully", data)
}

// RefreshToken 刷新访问令牌
// @Summary 刷新访问令牌
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest false "刷新令牌（也可通过 cookie 携带）"
// @Success 200 {object} response.Response{data=dto.TokenPair} "刷新成功"
// @Failure 401 {object} response.ErrorResponse "刷新令牌无效"
// @Router /users/refresh-token [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token, _ := c.Cookie(middleware.RefreshTokenCookie)
	if token == "" {
		var req dto.RefreshTokenRequest
		_ = c.ShouldBindJSON(&req)
		token = req.RefreshToken
	}

	tokens, err := h.authService.RefreshAccessToken(c.Request.Context(), token)
	if err != nil {
		handleError(c, "Refresh token", err)
		return
	}

	h.setTokenCookies(c, tokens)
	response.OK(c, "Access token refreshed", tokens)
}

// Logout 用户登出
// @Summary 用户登出
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response "登出成功"
// @Router /users/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	jti, expiresAt := middleware.GetCurrentToken(c)
	if err := h.authService.Logout(c.Request.Context(), currentUserID(c), jti, expiresAt); err != nil {
		handleError(c, "Logout", err)
		return
	}

	h.clearTokenCookies(c)
	response.OK(c, "User logged out", gin.H{})
}

// ChangePassword 修改密码
// @Summary 修改密码
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "新旧密码"
// @Success 200 {object} response.Response "修改成功"
// @Failure 400 {object} response.ErrorResponse "旧密码错误"
// @Router /users/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.authService.ChangePassword(currentUserID(c), &req); err != nil {
		handleError(c, "Change password", err)
		return
	}

	response.OK(c, "Password changed successfully", gin.H{})
}

func (h *AuthHandler) setTokenCookies(c *gin.Context, tokens *dto.TokenPair) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, tokens.AccessToken, int(h.accessTTL.Seconds()), "/", "", h.secureCookies, true)
	c.SetCookie(middleware.RefreshTokenCookie, tokens.RefreshToken, int(h.refreshTTL.Seconds()), "/", "", h.secureCookies, true)
}

func (h *AuthHandler) clearTokenCookies(c *gin.Context) {
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", h.secureCookies, true)
	c.SetCookie(middleware.RefreshTokenCookie, "", -1, "/", "", h.secureCookies, true)
}
