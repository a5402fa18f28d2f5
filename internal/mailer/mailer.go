// ABOUTME: Outbound mail for submitted day-off requests
// ABOUTME: Sends the rendered PDF form to HR over implicit-TLS SMTP

package mailer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"

	"github.com/2389/paperdesk/internal/config"
	"github.com/2389/paperdesk/internal/store"
)

const confirmationSubject = "Day-off request submitted"

const confirmationBody = `Hello,

An employee has submitted a day-off request (see the attached file).
The attachment is named after the employee's tab number.

The submitter was authenticated with a signed session token and the
connection to the mail server is encrypted.

Paperdesk, the personal document workflow system
`

// Mailer delivers leave-request confirmations to the HR mailbox.
type Mailer struct {
	cfg    config.SMTPConfig
	logger *slog.Logger
}

// New creates a Mailer from SMTP configuration.
func New(cfg config.SMTPConfig) *Mailer {
	return &Mailer{
		cfg:    cfg,
		logger: slog.Default().With("component", "mailer"),
	}
}

// SendLeaveConfirmation renders the PDF form for the submission and
// mails it to the configured recipient. The caller decides whether a
// failure is fatal; submission handlers run this in the background and
// only log errors.
func (m *Mailer) SendLeaveConfirmation(ctx context.Context, e *store.Employee, lr *store.LeaveRequest) error {
	msg, err := BuildLeaveMessage(m.cfg.Username, m.cfg.Recipient, e, lr)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("creating smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending confirmation: %w", err)
	}

	m.logger.Info("leave confirmation sent",
		"employee", e.Username, "tab_no", e.TabNumber, "recipient", m.cfg.Recipient)
	return nil
}

// BuildLeaveMessage assembles the confirmation message with the rendered
// PDF attached. Split from sending so tests can inspect the message
// without a mail server.
func BuildLeaveMessage(from, to string, e *store.Employee, lr *store.LeaveRequest) (*mail.Msg, error) {
	pdfBytes, err := RenderLeaveForm(e, lr)
	if err != nil {
		return nil, err
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("setting sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("setting recipient: %w", err)
	}
	msg.Subject(confirmationSubject)
	msg.SetBodyString(mail.TypeTextPlain, confirmationBody)
	if err := msg.AttachReader(AttachmentName(e), bytes.NewReader(pdfBytes)); err != nil {
		return nil, fmt.Errorf("attaching form: %w", err)
	}

	return msg, nil
}
