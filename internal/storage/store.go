package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"picto-go/internal/apperr"

	"github.com/sirupsen/logrus"
)

// Store 文件存储,所有操作的路径均相对于配置的存储根目录。
// staff 用户的内容存放在 preloaded/<分类>/ 下,
// 普通用户的内容存放在 user_content/<用户ID>/<分类>/ 下。
//
// 底层 I/O 错误只记录到日志,对调用方统一表现为 apperr.ErrServer。
type Store struct {
	root   string
	logger *logrus.Logger
}

// NewStore 创建文件存储
func NewStore(root string, logger *logrus.Logger) *Store {
	return &Store{
		root:   root,
		logger: logger,
	}
}

// Root 返回存储根目录
func (s *Store) Root() string {
	return s.root
}

// Abs 将相对路径转换为根目录下的绝对路径
func (s *Store) Abs(rel string) string {
	return filepath.Join(s.root, rel)
}

// ContentDir 返回指定用户、指定分类的存储目录(相对路径),
// 目录不存在时创建
func (s *Store) ContentDir(userID uint, isStaff bool, folder string) (string, error) {
	var rel string
	if isStaff {
		rel = filepath.Join("preloaded", folder)
	} else {
		rel = filepath.Join("user_content", fmt.Sprintf("%d", userID), folder)
	}

	if err := os.MkdirAll(s.Abs(rel), 0755); err != nil {
		s.logger.Errorf("创建存储目录失败: %v", err)
		return "", apperr.ErrServer
	}

	return rel, nil
}

// Save 将数据写入指定用户、指定分类下的文件,返回相对路径
func (s *Store) Save(userID uint, isStaff bool, folder string, filename string, data []byte) (string, error) {
	dir, err := s.ContentDir(userID, isStaff, folder)
	if err != nil {
		return "", err
	}

	rel := filepath.Join(dir, filename)
	if err := os.WriteFile(s.Abs(rel), data, 0644); err != nil {
		s.logger.Errorf("写入文件失败: %v", err)
		return "", apperr.ErrServer
	}

	return rel, nil
}

// Rename 在同一目录内重命名文件,返回新的相对路径
func (s *Store) Rename(rel string, newFilename string) (string, error) {
	oldPath := s.Abs(rel)
	newRel := filepath.Join(filepath.Dir(rel), newFilename)

	if err := os.Rename(oldPath, s.Abs(newRel)); err != nil {
		s.logger.Errorf("重命名文件失败: %v", err)
		return "", apperr.ErrServer
	}

	return newRel, nil
}

// Remove 删除文件。文件不存在时返回 apperr.ErrNotFound
func (s *Store) Remove(rel string) error {
	path := s.Abs(rel)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return apperr.Wrap(apperr.ErrNotFound, "文件不存在或路径错误")
	}

	if err := os.Remove(path); err != nil {
		s.logger.Errorf("删除文件失败: %v", err)
		return apperr.ErrServer
	}

	return nil
}

// Exists 检查文件是否存在
func (s *Store) Exists(rel string) bool {
	_, err := os.Stat(s.Abs(rel))
	return err == nil
}

// ReadFile 读取文件内容
func (s *Store) ReadFile(rel string) ([]byte, error) {
	data, err := os.ReadFile(s.Abs(rel))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "文件不存在或路径错误")
		}
		s.logger.Errorf("读取文件失败: %v", err)
		return nil, apperr.ErrServer
	}
	return data, nil
}

// RemoveUserTree 删除用户的整个存储子树,供账户清理使用
func (s *Store) RemoveUserTree(userID uint) error {
	rel := filepath.Join("user_content", fmt.Sprintf("%d", userID))
	if err := os.RemoveAll(s.Abs(rel)); err != nil {
		s.logger.Errorf("删除用户存储目录失败: %v", err)
		return apperr.ErrServer
	}
	return nil
}
