package config

import (
	"fmt"
	"time"
)

// Config 应用配置结构
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Storage    StorageConfig    `mapstructure:"storage"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Mail       MailConfig       `mapstructure:"mail"`
	Activation ActivationConfig `mapstructure:"activation"`
	Redis      RedisConfig      `mapstructure:"redis_service"`
	Admin      AdminConfig      `mapstructure:"admin"`
	CORS       CORSConfig       `mapstructure:"cors"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	ProductionMode bool   `mapstructure:"production_mode"`
}

// GetAddress 获取服务器地址
func (s *ServerConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// StorageConfig 内容存储配置
type StorageConfig struct {
	// Root 存储根目录,所有内容文件的相对路径均以此为基准
	Root string `mapstructure:"root"`
	// DefaultLimit 新用户的存储配额(字节)
	DefaultLimit int64 `mapstructure:"default_limit"`
	// MaxFileSize 单个文件的大小上限(字节),与配额独立
	MaxFileSize int64 `mapstructure:"max_file_size"`
}

// JWTConfig JWT配置
type JWTConfig struct {
	SecretKey     string `mapstructure:"secret_key"`
	Algorithm     string `mapstructure:"algorithm"`
	ExpireMinutes int    `mapstructure:"expire_minutes"`
}

// GetExpireDuration 获取过期时间
func (j *JWTConfig) GetExpireDuration() time.Duration {
	return time.Duration(j.ExpireMinutes) * time.Minute
}

// MailConfig 邮件配置
type MailConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	From         string `mapstructure:"from"`
	ContactEmail string `mapstructure:"contact_email"`
}

// ActivationConfig 账户激活链接配置
type ActivationConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	Endpoint string `mapstructure:"endpoint"`
}

// ActivationURL 拼接发送给用户的激活链接
func (a *ActivationConfig) ActivationURL(token string) string {
	return fmt.Sprintf("%s%s/%s", a.BaseURL, a.Endpoint, token)
}

// RedisConfig Redis配置
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	DB       int    `mapstructure:"db"`
	Password string `mapstructure:"password"`
	// LoginMaxAttempts 每个时间窗口内允许的登录尝试次数
	LoginMaxAttempts int `mapstructure:"login_max_attempts"`
	// LoginWindowSeconds 登录限流的时间窗口(秒)
	LoginWindowSeconds int `mapstructure:"login_window_seconds"`
}

// GetAddress 获取Redis地址
func (r *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// GetLoginWindow 获取登录限流窗口
func (r *RedisConfig) GetLoginWindow() time.Duration {
	return time.Duration(r.LoginWindowSeconds) * time.Second
}

// AdminConfig 管理员配置
type AdminConfig struct {
	Name     string `mapstructure:"name"`
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

// CORSConfig CORS配置
type CORSConfig struct {
	Origins          []string `mapstructure:"origins"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers"`
}
