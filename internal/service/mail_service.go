package service

import (
	"fmt"

	"picto-go/internal/config"
	"picto-go/internal/models"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// MailService 邮件服务,负责账户生命周期相关通知和联系表单转发
type MailService struct {
	cfg    *config.Config
	dialer *gomail.Dialer
	logger *logrus.Logger
}

// NewMailService 创建邮件服务
func NewMailService(cfg *config.Config, logger *logrus.Logger) *MailService {
	dialer := gomail.NewDialer(
		cfg.Mail.Host,
		cfg.Mail.Port,
		cfg.Mail.Username,
		cfg.Mail.Password,
	)

	return &MailService{
		cfg:    cfg,
		dialer: dialer,
		logger: logger,
	}
}

// send 发送一封邮件。未配置邮件服务器时只记录日志
func (s *MailService) send(to string, subject string, body string) error {
	if s.cfg.Mail.Host == "" {
		s.logger.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("邮件服务未配置,跳过发送")
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.Mail.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}
	return nil
}

// SendActivation 发送账户激活邮件
func (s *MailService) SendActivation(user *models.User, token string) error {
	body := fmt.Sprintf(
		"您好 %s:\n\n感谢您的注册。请点击以下链接激活您的账户:\n\n%s\n\n如有疑问请联系 %s。",
		user.Name,
		s.cfg.Activation.ActivationURL(token),
		s.cfg.Mail.ContactEmail,
	)
	return s.send(user.Email, "激活账户", body)
}

// SendDeactivation 发送账户注销通知
func (s *MailService) SendDeactivation(user *models.User) error {
	body := fmt.Sprintf(
		"您好 %s:\n\n您的账户已被注销。如有疑问请联系 %s。",
		user.Name,
		s.cfg.Mail.ContactEmail,
	)
	return s.send(user.Email, "您的账户已被注销", body)
}

// SendPasswordChanged 发送密码修改通知
func (s *MailService) SendPasswordChanged(user *models.User) error {
	body := fmt.Sprintf(
		"您好 %s:\n\n您的密码已被修改。如非本人操作,请立即联系 %s。",
		user.Name,
		s.cfg.Mail.ContactEmail,
	)
	return s.send(user.Email, "您的密码已被修改", body)
}

// SendAccountDeleted 发送账户删除通知
func (s *MailService) SendAccountDeleted(user *models.User) error {
	body := fmt.Sprintf(
		"您好 %s:\n\n您的账户及其全部内容已被删除。如有疑问请联系 %s。",
		user.Name,
		s.cfg.Mail.ContactEmail,
	)
	return s.send(user.Email, "您的账户已被删除", body)
}

// SendContactForm 将联系表单内容转发到配置的联系邮箱
func (s *MailService) SendContactForm(name, email, subject, message string) error {
	body := fmt.Sprintf(
		"来自: %s\n邮箱: %s\n\n内容:\n%s",
		name,
		email,
		message,
	)
	return s.send(s.cfg.Mail.ContactEmail, fmt.Sprintf("联系表单: %s", subject), body)
}
