package models

import (
	"time"
)

// User 用户模型
//
// 新注册的用户默认未激活,通过邮件中的一次性令牌激活;
// 注销(手动或由清理任务)时记录 InactiveSince 供清理任务判断。
type User struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	Name         string     `gorm:"size:255" json:"name"`
	Email        string     `gorm:"uniqueIndex;size:254;not null" json:"email"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	IsActive     bool       `gorm:"default:false" json:"is_active"`
	IsStaff      bool       `gorm:"default:false" json:"is_staff"`
	StorageLimit int64      `gorm:"default:20971520" json:"storage_limit"` // 20 MiB
	InactiveSince *time.Time `json:"inactive_since,omitempty"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// 关联
	Pictograms []Pictogram `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"pictograms,omitempty"`
	Audios     []Audio     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"audios,omitempty"`
	Routines   []Routine   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"routines,omitempty"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// ActivationToken 账户激活令牌,与用户一对一,激活成功后删除
type ActivationToken struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	UserID uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	Token  string `gorm:"uniqueIndex;size:128;not null" json:"-"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

// TableName 指定表名
func (ActivationToken) TableName() string {
	return "activation_tokens"
}
