package handler

import (
	"io"
	"mime/multipart"

	"picto-go/internal/service"
)

// readUpload 将 multipart 文件读入内存,转换为服务层的上传结构
func readUpload(file *multipart.FileHeader) (*service.Upload, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	content := make([]byte, file.Size)
	_, err = io.ReadFull(src, content)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, err
	}

	return &service.Upload{
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Size:        file.Size,
		Data:        content,
	}, nil
}
