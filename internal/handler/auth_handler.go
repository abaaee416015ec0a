package handler

import (
	"picto-go/internal/dto"
	"picto-go/internal/middleware"
	"picto-go/internal/service"
	"picto-go/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register 注册新用户,成功后账户处于未激活状态等待邮箱确认
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		utils.AppError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"id":    user.ID,
		"email": user.Email,
	})
}

// Activate 通过邮件中的令牌激活账户
func (h *AuthHandler) Activate(c *gin.Context) {
	token := c.Param("token")

	user, err := h.authService.Activate(token)
	if err != nil {
		utils.AppError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "账户激活成功", gin.H{
		"id":    user.ID,
		"email": user.Email,
	})
}

// Login 登录并颁发访问令牌
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		utils.Unauthorized(c, err.Error())
		return
	}

	utils.SuccessResponse(c, resp)
}

// Logout 登出。令牌为无状态JWT,由客户端丢弃
func (h *AuthHandler) Logout(c *gin.Context) {
	utils.SuccessWithMessage(c, "已登出", nil)
}

// GetMe 获取当前登录用户信息
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	info, err := h.authService.GetMe(userID)
	if err != nil {
		utils.AppError(c, err)
		return
	}

	utils.SuccessResponse(c, info)
}

// Deactivate 注销当前账户。账户保留30天,期间可联系管理员恢复
func (h *AuthHandler) Deactivate(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	if err := h.authService.Deactivate(userID); err != nil {
		utils.AppError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "账户已注销", nil)
}
