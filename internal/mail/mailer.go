package mail

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"strings"
	"time"

	"github.com/ryan-gang/shell-mail/internal/config"
	"github.com/ryan-gang/shell-mail/internal/util"

	gomail "gopkg.in/mail.v2"
)

var ErrSendFailed = errors.New("failed to send mail")

// NewSMTPDialer returns a factory for dialers that always upgrade with
// STARTTLS, verify the server certificate and never retry. A zero timeout
// keeps the library default.
func NewSMTPDialer(timeout time.Duration) DialerFactory {
	return newSMTPDialer(timeout, nil)
}

// newSMTPDialer verifies the server against roots, or the system pool when
// roots is nil.
func newSMTPDialer(timeout time.Duration, roots *x509.CertPool) DialerFactory {
	return func(s config.Settings) Dialer {
		dialer := gomail.NewDialer(s.MailServer, s.ServerPort, s.LoginName, s.LoginPassword)
		dialer.SSL = false
		dialer.RetryFailure = false
		dialer.StartTLSPolicy = gomail.MandatoryStartTLS
		dialer.TLSConfig = &tls.Config{
			ServerName: s.MailServer,
			RootCAs:    roots,
			MinVersion: tls.VersionTLS12,
		}
		if timeout > 0 {
			dialer.Timeout = timeout
		}
		return dialer
	}
}

func (s *SMTPMailSender) resolveSettings(settings *config.Settings) (config.Settings, error) {
	if settings != nil {
		return *settings, nil
	}
	if s.loader == nil {
		return config.Settings{}, config.ErrNotConfigured
	}
	return s.loader.Load()
}

func (s *SMTPMailSender) Send(msg Message, settings *config.Settings) error {
	cfg, err := s.resolveSettings(settings)
	if err != nil {
		s.log.Critical(util.FormatError(util.ConfigError, "loading settings", err))
		return err
	}

	composed, err := Compose(msg, cfg.DefaultFromEmail, s.log)
	if err != nil {
		s.log.Error(util.FormatError(util.ValidationError, "composing mail", err))
		return err
	}

	s.log.Debugf("Connecting to %s:%d as %s", cfg.MailServer, cfg.ServerPort, cfg.LoginName)
	if err := s.dial(cfg).DialAndSend(composed); err != nil {
		s.log.Error(util.FormatError(util.MailError, "sending mail", err))
		return errors.Join(ErrSendFailed, err)
	}

	s.log.Infof("Email sent to: %s, with subject: %s", strings.Join(msg.Recipients(), ", "), msg.Subject)
	return nil
}
