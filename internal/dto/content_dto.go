package dto

import "encoding/json"

// ContentResponse 单文件内容(图片/音频)响应
type ContentResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	IsPreloaded bool   `json:"is_preloaded"`
	AuthorID    uint   `json:"author_id"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// RoutineResponse 例行程序响应
type RoutineResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	JSONPath  string `json:"json_path"`
	CoverPath string `json:"cover_path,omitempty"`
	AuthorID  uint   `json:"author_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// RoutineDetailResponse 例行程序详情响应,内联JSON侧车文件的内容
type RoutineDetailResponse struct {
	RoutineResponse
	Routine json.RawMessage `json:"routine"`
}

// StorageResponse 用户存储占用响应
type StorageResponse struct {
	StorageLimit     int64 `json:"storage_limit"`
	UsedStorage      int64 `json:"used_storage"`
	RemainingStorage int64 `json:"remaining_storage"`
}
