package handler

import (
	"picto-go/internal/apperr"
	"picto-go/internal/dto"
	"picto-go/internal/service"
	"picto-go/internal/utils"

	"github.com/gin-gonic/gin"
)

// ContactHandler 联系表单处理器
type ContactHandler struct {
	mailService *service.MailService
}

// NewContactHandler 创建联系表单处理器
func NewContactHandler(mailService *service.MailService) *ContactHandler {
	return &ContactHandler{
		mailService: mailService,
	}
}

// Send 提交联系表单,内容转发到站点联系邮箱
func (h *ContactHandler) Send(c *gin.Context) {
	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.AppError(c, apperr.Wrap(apperr.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.mailService.SendContactForm(req.Name, req.Email, req.Subject, req.Message); err != nil {
		utils.AppError(c, apperr.ErrServer)
		return
	}

	utils.SuccessWithMessage(c, "消息已发送", nil)
}
