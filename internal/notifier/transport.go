package notifier

import (
	"context"
	"fmt"
	"net/smtp"

	"bambawatch/internal/common/errorwrapper"
	"bambawatch/internal/config"

	"github.com/jordan-wright/email"
	"github.com/rs/zerolog"
)

// Transport delivers one composed message to one recipient. Retries, if
// any, belong to the implementation behind this interface, not to callers.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPTransport sends messages through a plain SMTP relay.
type SMTPTransport struct {
	cfg    config.NotificationConfig
	logger zerolog.Logger
}

// NewSMTPTransport creates an SMTPTransport.
func NewSMTPTransport(cfg config.NotificationConfig, logger zerolog.Logger) *SMTPTransport {
	return &SMTPTransport{
		cfg:    cfg,
		logger: logger.With().Str("component", "SMTPTransport").Logger(),
	}
}

// Send delivers the message. The context is honoured before dialing; the
// SMTP exchange itself is bounded by the library's connection handling.
func (st *SMTPTransport) Send(ctx context.Context, msg Message) error {
	if st.cfg.SMTPServer == "" {
		return errorwrapper.NewError("smtp server is not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	e := email.NewEmail()
	e.From = st.cfg.FromAddress
	e.To = []string{msg.To}
	e.Subject = msg.Subject
	if msg.HTML {
		e.HTML = []byte(msg.Body)
	} else {
		e.Text = []byte(msg.Body)
	}

	addr := fmt.Sprintf("%s:%d", st.cfg.SMTPServer, st.cfg.SMTPPort)
	var auth smtp.Auth
	if st.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", st.cfg.SMTPUsername, st.cfg.SMTPPassword, st.cfg.SMTPServer)
	}

	if err := e.Send(addr, auth); err != nil {
		return errorwrapper.WrapError(err, "smtp send failed")
	}
	return nil
}
