package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"picto-go/internal/apperr"
)

// UsedStorage 遍历用户的存储子树,返回已占用的字节数
func (s *Store) UsedStorage(userID uint) (int64, error) {
	userDir := s.Abs(filepath.Join("user_content", fmt.Sprintf("%d", userID)))

	var total int64

	err := filepath.Walk(userDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// 目录尚不存在视为零占用
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !info.IsDir() {
			total += info.Size()
		}
		return nil
	})
	if err != nil {
		s.logger.Errorf("统计用户存储占用失败: %v", err)
		return 0, apperr.ErrServer
	}

	return total, nil
}

// CheckQuota 校验新增 incoming 字节后是否超出配额。
// 仅做读取检查,不做预留:并发上传可能针对同一份旧的占用值
// 同时通过检查。接受条件为 incoming < max(0, limit-used)。
func (s *Store) CheckQuota(userID uint, limit int64, incoming int64) error {
	used, err := s.UsedStorage(userID)
	if err != nil {
		return err
	}

	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}

	if remaining <= 0 || incoming >= remaining {
		return apperr.ErrQuotaExceeded
	}

	return nil
}
