package handler

import (
	"strconv"

	"picto-go/internal/dto"
	"picto-go/internal/middleware"
	"picto-go/internal/service"
	"picto-go/internal/utils"

	"github.com/gin-gonic/gin"
)

// RoutineHandler 例行程序处理器
type RoutineHandler struct {
	routineService *service.RoutineService
}

// NewRoutineHandler 创建例行程序处理器
func NewRoutineHandler(routineService *service.RoutineService) *RoutineHandler {
	return &RoutineHandler{
		routineService: routineService,
	}
}

// readCover 读取可选的封面文件,未提供时返回 nil
func (h *RoutineHandler) readCover(c *gin.Context) (*service.Upload, bool) {
	file, err := c.FormFile("file")
	if err != nil {
		return nil, true
	}

	up, err := readUpload(file)
	if err != nil {
		utils.BadRequest(c, "读取文件失败: "+err.Error())
		return nil, false
	}
	return up, true
}

// Create 创建例行程序,表单字段:name、routine(JSON数据)、file(可选封面)
func (h *RoutineHandler) Create(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	name := c.PostForm("name")
	jsonData := []byte(c.PostForm("routine"))

	cover, ok := h.readCover(c)
	if !ok {
		return
	}

	rec, err := h.routineService.Create(userID, name, jsonData, cover)
	if err != nil {
		utils.AppError(c, err)
		return
	}

	utils.CreatedResponse(c, service.ToRoutineResponse(rec))
}

// List 获取当前用户的例行程序列表
func (h *RoutineHandler) List(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	items, err := h.routineService.List(userID)
	if err != nil {
		utils.AppError(c, err)
		return
	}

	resp := make([]dto.RoutineResponse, 0, len(items))
	for i := range items {
		resp = append(resp, service.ToRoutineResponse(&items[i]))
	}

	utils.SuccessResponse(c, resp)
}

// Get 获取单条例行程序,响应中内联JSON数据
func (h *RoutineHandler) Get(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	rec, data, err := h.routineService.Get(userID, uint(id))
	if err != nil {
		utils.AppError(c, err)
		return
	}

	utils.SuccessResponse(c, dto.RoutineDetailResponse{
		RoutineResponse: service.ToRoutineResponse(rec),
		Routine:         data,
	})
}

// Update 更新例行程序,name、routine、file 均为可选字段
func (h *RoutineHandler) Update(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	name := c.PostForm("name")
	jsonData := []byte(c.PostForm("routine"))

	cover, ok := h.readCover(c)
	if !ok {
		return
	}

	rec, changed, err := h.routineService.Update(userID, uint(id), name, jsonData, cover)
	if err != nil {
		utils.AppError(c, err)
		return
	}

	if !changed {
		utils.SuccessWithMessage(c, "内容未发生变化", service.ToRoutineResponse(rec))
		return
	}

	utils.SuccessResponse(c, service.ToRoutineResponse(rec))
}

// Delete 删除例行程序及其关联文件
func (h *RoutineHandler) Delete(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	if err := h.routineService.Delete(userID, uint(id)); err != nil {
		utils.AppError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "例行程序已删除", gin.H{"success": true})
}
