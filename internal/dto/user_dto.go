package dto

// UpdateUserRequest 用户资料更新请求,空字段保持不变
type UpdateUserRequest struct {
	Name     string `json:"name" validate:"omitempty,min=2,max=100,personname"`
	Email    string `json:"email" validate:"omitempty,min=6,max=250,emailformat"`
	Password string `json:"password" validate:"omitempty,min=8,max=128,passwordcomplex"`
}

// ContactRequest 联系表单请求
type ContactRequest struct {
	Name    string `json:"name" validate:"omitempty,min=2,max=50,personname"`
	Email   string `json:"email" validate:"required,min=6,max=250,emailformat"`
	Subject string `json:"subject" validate:"required,min=2,max=100"`
	Message string `json:"message" validate:"required,max=5000"`
}
