package mail

import (
	"github.com/ryan-gang/shell-mail/internal/config"
	"github.com/ryan-gang/shell-mail/internal/logger"

	gomail "gopkg.in/mail.v2"
)

// MailSender defines the interface for sending emails
type MailSender interface {
	Send(msg Message, settings *config.Settings) error
}

// Dialer opens an SMTP session and transmits messages
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// DialerFactory builds a Dialer for the given settings
type DialerFactory func(settings config.Settings) Dialer

// SMTPMailSender implements MailSender using SMTP
type SMTPMailSender struct {
	loader config.SettingsLoader
	dial   DialerFactory
	log    logger.LoggerInterface
}

// NewSMTPMailSender creates a new SMTP mail sender. loader is consulted when
// Send is called without settings.
func NewSMTPMailSender(loader config.SettingsLoader, dial DialerFactory, log logger.LoggerInterface) MailSender {
	if dial == nil {
		dial = NewSMTPDialer(0)
	}
	if log == nil {
		log = logger.Discard()
	}
	return &SMTPMailSender{loader: loader, dial: dial, log: log}
}
