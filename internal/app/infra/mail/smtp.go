package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"tourshop/internal/app/config"
)

// Message 待发送邮件
type Message struct {
	To      string
	Subject string
	Body    string
}

// SMTPMailer SMTP 发信客户端
type SMTPMailer struct {
	client *gomail.Client
	from   string
}

// NewSMTPMailer 按配置创建发信客户端；未配置用户名时不做认证
func NewSMTPMailer(cfg config.MailConfig) (*SMTPMailer, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client failed: %w", err)
	}
	return &SMTPMailer{client: client, from: cfg.From}, nil
}

// Send 发送纯文本邮件
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	out := gomail.NewMsg()
	if err := out.From(m.from); err != nil {
		return fmt.Errorf("invalid sender: %w", err)
	}
	if err := out.To(msg.To); err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}
	out.Subject(msg.Subject)
	out.SetBodyString(gomail.TypeTextPlain, msg.Body)

	if err := m.client.DialAndSendWithContext(ctx, out); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}
