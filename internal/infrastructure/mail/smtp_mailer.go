package mail

import (
	"context"
	"fmt"
	"text/template"

	gomail "github.com/wneessen/go-mail"

	"thgamestore/pkg/logger"
)

var resetTemplate = template.Must(template.New("reset").Parse(`Hi {{.Username}},

We received a request to reset your THGameStore password.
Open the link below within 15 minutes to choose a new one:

{{.Link}}

If you did not ask for this you can ignore this email.
`))

type resetData struct {
	Username string
	Link     string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type SMTPMailer struct {
	client *gomail.Client
	from   string
}

func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
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
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}
	return &SMTPMailer{client: client, from: cfg.From}, nil
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, username, resetLink string) error {
	msg, err := newResetMessage(m.from, to, username, resetLink)
	if err != nil {
		return err
	}
	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}

func newResetMessage(from, to, username, resetLink string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	msg.Subject("Reset your THGameStore password")
	if err := msg.SetBodyTextTemplate(resetTemplate, resetData{Username: username, Link: resetLink}); err != nil {
		return nil, fmt.Errorf("failed to render reset email: %w", err)
	}
	return msg, nil
}

// LogMailer stands in when no SMTP host is configured.
type LogMailer struct{}

func (LogMailer) SendPasswordReset(_ context.Context, to, _ string, resetLink string) error {
	logger.WithFields(map[string]interface{}{"to": to, "link": resetLink}).Info("password reset email (smtp disabled)")
	return nil
}
