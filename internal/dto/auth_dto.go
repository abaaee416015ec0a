package dto

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name     string `json:"name" form:"name" validate:"omitempty,min=2,max=100,personname"`
	Email    string `json:"email" form:"email" validate:"required,min=6,max=250,emailformat"`
	Password string `json:"password" form:"password" validate:"required,min=8,max=128,passwordcomplex"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	User        UserInfo `json:"user"`
}

// UserInfo 用户信息
type UserInfo struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
	IsStaff  bool   `json:"is_staff"`
}
