package handler

import (
	"strconv"

	"picto-go/internal/dto"
	"picto-go/internal/middleware"
	"picto-go/internal/service"
	"picto-go/internal/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户管理处理器
type UserHandler struct {
	userService    *service.UserService
	contentService *service.ContentService
}

// NewUserHandler 创建用户管理处理器
func NewUserHandler(userService *service.UserService, contentService *service.ContentService) *UserHandler {
	return &UserHandler{
		userService:    userService,
		contentService: contentService,
	}
}

// List 获取用户列表(仅管理员)
func (h *UserHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	users, total, err := h.userService.List((page-1)*perPage, perPage)
	if err != nil {
		utils.AppError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"items":    users,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}

// Update 更新用户资料,普通用户只能更新自己
func (h *UserHandler) Update(c *gin.Context) {
	requesterID, _ := middleware.GetUserID(c)
	targetID, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	info, err := h.userService.Update(requesterID, middleware.IsStaff(c), uint(targetID), &req)
	if err != nil {
		utils.AppError(c, err)
		return
	}

	utils.SuccessResponse(c, info)
}

// Delete 删除用户账户及其全部内容(仅管理员)
func (h *UserHandler) Delete(c *gin.Context) {
	targetID, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	if err := h.userService.Delete(middleware.IsStaff(c), uint(targetID)); err != nil {
		utils.AppError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "账户已删除", gin.H{"success": true})
}

// GetStorage 获取用户的存储配额与占用情况
func (h *UserHandler) GetStorage(c *gin.Context) {
	userID, _ := strconv.ParseUint(c.Param("user_id"), 10, 32)

	info, err := h.contentService.StorageInfo(uint(userID))
	if err != nil {
		utils.AppError(c, err)
		return
	}

	utils.SuccessResponse(c, info)
}
