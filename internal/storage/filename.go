package storage

import (
	"fmt"
	"path/filepath"
	"regexp"
	"time"
)

// 存储目录分类
const (
	FolderPictograms = "pictograms"
	FolderSounds     = "sounds"
	FolderRoutines   = "routines"
	FolderCovers     = "covers"
)

// unsafeChars 文件系统不安全字符及空白字符,统一替换为下划线
var unsafeChars = regexp.MustCompile(`[\\/:*?"<>|\s]`)

// SanitizeName 将内容名称中的不安全字符替换为下划线
func SanitizeName(name string) string {
	return unsafeChars.ReplaceAllString(name, "_")
}

// timestampPrefix 生成单调递增的时间戳前缀,避免并发上传时的文件名冲突
func timestampPrefix(now time.Time) string {
	return fmt.Sprintf("%d-%06d", now.Unix(), now.Nanosecond()/1000)
}

// GenerateFilename 根据内容名称和原始文件名生成存储文件名,格式:
//
//	{timestamp}_{清理后的名称}{原扩展名}
func GenerateFilename(name string, originalFilename string) string {
	ext := filepath.Ext(originalFilename)
	return fmt.Sprintf("%s_%s%s", timestampPrefix(time.Now()), SanitizeName(name), ext)
}

// GenerateJSONFilename 为例行程序的JSON侧车文件生成存储文件名
func GenerateJSONFilename(name string) string {
	return fmt.Sprintf("%s_%s.json", timestampPrefix(time.Now()), SanitizeName(name))
}
