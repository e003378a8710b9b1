package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Lio2412/recipe_go_server/config"
)

type Service struct {
	cfg *config.EmailConfig
}

func NewService(cfg *config.EmailConfig) *Service {
	return &Service{cfg: cfg}
}

// SendFlagAlert 举报达到阈值时通知审核邮箱
func (s *Service) SendFlagAlert(commentID int64, flagCount int, reasons []string) error {
	if s.cfg.ModerationInbox == "" {
		return nil
	}

	subject := fmt.Sprintf("评论 #%d 举报达到阈值", commentID)
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #dc2626;">评论举报告警</h2>
        <p>评论 <strong>#%d</strong> 已被举报 %d 次，状态已自动转为 flagged，请尽快处理。</p>
        <p>举报原因：</p>
        <div style="background-color: #f3f4f6; padding: 15px; margin: 20px 0;">
            %s
        </div>
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">此邮件由系统自动发送，请勿回复。</p>
    </div>
</body>
</html>`, commentID, flagCount, strings.Join(reasons, "<br>"))

	return s.send(s.cfg.ModerationInbox, subject, body)
}

func (s *Service) send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)

	msg := strings.Builder{}
	msg.WriteString(fmt.Sprintf("From: %s\r\n", s.cfg.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg.String()))
}
