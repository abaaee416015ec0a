package handler

import (
	"strconv"

	"picto-go/internal/dto"
	"picto-go/internal/middleware"
	"picto-go/internal/models"
	"picto-go/internal/service"
	"picto-go/internal/utils"

	"github.com/gin-gonic/gin"
)

// PictogramHandler 图片内容处理器
type PictogramHandler struct {
	contentService *service.ContentService
}

// NewPictogramHandler 创建图片内容处理器
func NewPictogramHandler(contentService *service.ContentService) *PictogramHandler {
	return &PictogramHandler{
		contentService: contentService,
	}
}

func toPictogramResponse(rec *models.Pictogram) dto.ContentResponse {
	return dto.ContentResponse{
		ID:          rec.ID,
		Name:        rec.Name,
		Path:        rec.Path,
		IsPreloaded: rec.IsPreloaded,
		AuthorID:    rec.AuthorID,
		CreatedAt:   rec.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   rec.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// Create 上传图片内容,表单字段:name、file
func (h *PictogramHandler) Create(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	name := c.PostForm("name")

	file, err := c.FormFile("file")
	if err != nil {
		utils.BadRequest(c, "文件上传失败: "+err.Error())
		return
	}

	up, err := readUpload(file)
	if err != nil {
		utils.BadRequest(c, "读取文件失败: "+err.Error())
		return
	}

	rec, err := h.contentService.CreatePictogram(userID, name, up)
	if err != nil {
		utils.AppError(c, err)
		return
	}

	utils.CreatedResponse(c, toPictogramResponse(rec))
}

// List 获取可见的图片内容列表
func (h *PictogramHandler) List(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	items, err := h.contentService.ListPictograms(userID)
	if err != nil {
		utils.AppError(c, err)
		return
	}

	resp := make([]dto.ContentResponse, 0, len(items))
	for i := range items {
		resp = append(resp, toPictogramResponse(&items[i]))
	}

	utils.SuccessResponse(c, resp)
}

// Get 获取单条图片内容
func (h *PictogramHandler) Get(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	rec, err := h.contentService.GetPictogram(userID, uint(id))
	if err != nil {
		utils.AppError(c, err)
		return
	}

	utils.SuccessResponse(c, toPictogramResponse(rec))
}

// Update 更新图片内容,name 和 file 均为可选字段
func (h *PictogramHandler) Update(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	name := c.PostForm("name")

	var up *service.Upload
	if file, err := c.FormFile("file"); err == nil {
		up, err = readUpload(file)
		if err != nil {
			utils.BadRequest(c, "读取文件失败: "+err.Error())
			return
		}
	}

	rec, changed, err := h.contentService.UpdatePictogram(userID, uint(id), name, up)
	if err != nil {
		utils.AppError(c, err)
		return
	}

	if !changed {
		utils.SuccessWithMessage(c, "内容未发生变化", toPictogramResponse(rec))
		return
	}

	utils.SuccessResponse(c, toPictogramResponse(rec))
}

// Delete 删除图片内容
func (h *PictogramHandler) Delete(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	if err := h.contentService.DeletePictogram(userID, uint(id)); err != nil {
		utils.AppError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "内容已删除", gin.H{"success": true})
}
