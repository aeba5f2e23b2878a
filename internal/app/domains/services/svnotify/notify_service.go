package svnotify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"text/template"

	"tourshop/common/model"
	"tourshop/internal/app/infra/mail"
	"tourshop/internal/app/pkg/logger"
)

// ErrUnknownKind 未知的通知类型（消息无法处理，不应重试）
var ErrUnknownKind = errors.New("unknown notification kind")

// Mailer 发信接口（mail.SMTPMailer 实现）
type Mailer interface {
	Send(ctx context.Context, msg mail.Message) error
}

type mailTemplate struct {
	subject *template.Template
	body    *template.Template
}

// 邮件模板，变量来自 NotificationJob.Context
var templateSources = map[string][2]string{
	model.NotificationKindRegistration: {
		"Bienvenido a TourShop, {{.name}}",
		`Hola {{.name}},

Tu cuenta fue creada con el correo {{.email}}.
Ya podés ingresar y armar tu próximo viaje.
`,
	},
	model.NotificationKindOrderCreated: {
		"Recibimos tu pedido {{.order_number}}",
		`Hola {{.customer_name}},

Registramos tu pedido {{.order_number}} ({{.category}}) por un total de ${{.total}}.
Estado actual: {{.status}}.

Subí el comprobante de pago desde "Mis pedidos" para que podamos verificarlo.
`,
	},
	model.NotificationKindOrderCreatedOps: {
		"Nuevo pedido {{.order_number}} de {{.customer_name}}",
		`Pedido: {{.order_number}} (id {{.order_id}})
Cliente: {{.customer_name}} <{{.customer_email}}>
Categoría: {{.category}}
Ítems: {{.items}}
Total: ${{.total}}
Fecha: {{.placed_at}}
`,
	},
	model.NotificationKindStatusChanged: {
		"Tu pedido {{.order_number}} está {{.status}}",
		`Hola {{.customer_name}},

El pedido {{.order_number}} cambió de estado a: {{.status}}.
Total: ${{.total}}
`,
	},
}

// NotifyService 通知投递服务（notifier 进程）
// 职责：
// 1. 按通知类型渲染邮件模板
// 2. 通过 SMTP 发信
type NotifyService struct {
	mailer    Mailer
	templates map[string]mailTemplate
	logger    logger.Logger
}

// NewNotifyService 创建通知投递服务，模板在启动时解析
func NewNotifyService(mailer Mailer, log logger.Logger) (*NotifyService, error) {
	templates := make(map[string]mailTemplate, len(templateSources))
	for kind, src := range templateSources {
		subject, err := template.New(kind + ".subject").Option("missingkey=zero").Parse(src[0])
		if err != nil {
			return nil, fmt.Errorf("parse %s subject failed: %w", kind, err)
		}
		body, err := template.New(kind + ".body").Option("missingkey=zero").Parse(src[1])
		if err != nil {
			return nil, fmt.Errorf("parse %s body failed: %w", kind, err)
		}
		templates[kind] = mailTemplate{subject: subject, body: body}
	}

	return &NotifyService{mailer: mailer, templates: templates, logger: log}, nil
}

// Render 渲染邮件
func (s *NotifyService) Render(job *model.NotificationJob) (mail.Message, error) {
	tpl, ok := s.templates[job.Kind]
	if !ok {
		return mail.Message{}, fmt.Errorf("%w: %q", ErrUnknownKind, job.Kind)
	}

	data := job.Context
	if data == nil {
		data = map[string]string{}
	}

	var subject, body bytes.Buffer
	if err := tpl.subject.Execute(&subject, data); err != nil {
		return mail.Message{}, fmt.Errorf("render subject failed: %w", err)
	}
	if err := tpl.body.Execute(&body, data); err != nil {
		return mail.Message{}, fmt.Errorf("render body failed: %w", err)
	}

	return mail.Message{To: job.To, Subject: subject.String(), Body: body.String()}, nil
}

// Deliver 处理一条通知任务
// 返回 error 表示发送失败（需要重试）
func (s *NotifyService) Deliver(ctx context.Context, job *model.NotificationJob) error {
	msg, err := s.Render(job)
	if err != nil {
		return err
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("send mail failed: %w", err)
	}

	s.logger.InfoContext(ctx, "Notification delivered",
		"kind", job.Kind,
		"to", job.To,
		"request_id", job.RequestID,
	)
	return nil
}
