package models

import (
	"time"
)

// FileRecord 单文件内容(图片/音频)的通用访问接口,
// 供内容更新逻辑在不关心具体模型的情况下读写名称与文件路径
type FileRecord interface {
	GetName() string
	SetName(name string)
	GetPath() string
	SetPath(path string)
}

// Pictogram 图片内容模型
//
// Path 始终是相对于存储根目录的路径;staff 用户创建的内容
// 自动标记为预载内容(IsPreloaded),对所有用户可见。
type Pictogram struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"size:50;not null" json:"name"`
	Path        string    `gorm:"size:255;not null" json:"path"`
	IsPreloaded bool      `gorm:"default:false" json:"is_preloaded"`
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// TableName 指定表名
func (Pictogram) TableName() string {
	return "pictograms"
}

func (p *Pictogram) GetName() string     { return p.Name }
func (p *Pictogram) SetName(name string) { p.Name = name }
func (p *Pictogram) GetPath() string     { return p.Path }
func (p *Pictogram) SetPath(path string) { p.Path = path }

// Audio 音频内容模型
type Audio struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"size:50;not null" json:"name"`
	Path        string    `gorm:"size:255;not null" json:"path"`
	IsPreloaded bool      `gorm:"default:false" json:"is_preloaded"`
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// TableName 指定表名
func (Audio) TableName() string {
	return "audios"
}

func (a *Audio) GetName() string     { return a.Name }
func (a *Audio) SetName(name string) { a.Name = name }
func (a *Audio) GetPath() string     { return a.Path }
func (a *Audio) SetPath(path string) { a.Path = path }

// Routine 例行程序内容模型
//
// JSONPath 指向必有的 JSON 侧车文件;CoverPath 为可选的封面图,
// 空字符串表示没有封面。例行程序不参与预载共享,始终仅作者可见。
type Routine struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"size:50;not null" json:"name"`
	JSONPath  string    `gorm:"size:255;not null" json:"json_path"`
	CoverPath string    `gorm:"size:255" json:"cover_path"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// TableName 指定表名
func (Routine) TableName() string {
	return "routines"
}
