package mail

import (
	"bytes"
	"crypto/tls"
	"errors"
	"testing"
	"time"

	"github.com/ryan-gang/shell-mail/internal/config"
	"github.com/ryan-gang/shell-mail/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gomail "gopkg.in/mail.v2"
)

type recordingDialer struct {
	settings []config.Settings
	sent     []*gomail.Message
	err      error
}

func (d *recordingDialer) factory() DialerFactory {
	return func(s config.Settings) Dialer {
		d.settings = append(d.settings, s)
		return d
	}
}

func (d *recordingDialer) DialAndSend(m ...*gomail.Message) error {
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, m...)
	return nil
}

type failingLoader struct{ err error }

func (l failingLoader) Load() (config.Settings, error) { return config.Settings{}, l.err }

var testSettings = config.Settings{
	MailServer:       "smtp.example.com",
	ServerPort:       587,
	LoginName:        "user@example.com",
	LoginPassword:    "pw",
	DefaultFromEmail: "user@example.com",
}

func TestSMTPMailSender_ExplicitSettings(t *testing.T) {
	dialer := &recordingDialer{}
	sender := NewSMTPMailSender(failingLoader{errors.New("must not load")}, dialer.factory(), logger.Discard())

	settings := testSettings
	err := sender.Send(Message{To: "dest@example.com", Subject: "Hi", Body: "hello"}, &settings)

	require.NoError(t, err)
	require.Len(t, dialer.sent, 1)
	assert.Equal(t, []config.Settings{testSettings}, dialer.settings)
	assert.Equal(t, []string{"user@example.com"}, dialer.sent[0].GetHeader("From"))
}

func TestSMTPMailSender_LoadsSettings(t *testing.T) {
	dialer := &recordingDialer{}
	sender := NewSMTPMailSender(config.NewStaticSettings(testSettings), dialer.factory(), logger.Discard())

	err := sender.Send(Message{To: "dest@example.com", From: "other@example.com", Subject: "Hi"}, nil)

	require.NoError(t, err)
	require.Len(t, dialer.sent, 1)
	assert.Equal(t, "smtp.example.com", dialer.settings[0].MailServer)
	assert.Equal(t, []string{"other@example.com"}, dialer.sent[0].GetHeader("From"))
}

func TestSMTPMailSender_NotConfigured(t *testing.T) {
	dialer := &recordingDialer{}
	sender := NewSMTPMailSender(failingLoader{config.ErrNotConfigured}, dialer.factory(), logger.Discard())

	err := sender.Send(Message{To: "dest@example.com"}, nil)

	assert.ErrorIs(t, err, config.ErrNotConfigured)
	assert.Empty(t, dialer.settings)
}

func TestSMTPMailSender_TransportFailure(t *testing.T) {
	var logs bytes.Buffer
	cause := errors.New("535 authentication failed")
	dialer := &recordingDialer{err: cause}
	sender := NewSMTPMailSender(nil, dialer.factory(), logger.NewWriterLogger(&logs, logger.DEBUG))

	settings := testSettings
	err := sender.Send(Message{To: "dest@example.com", Subject: "Hi"}, &settings)

	require.ErrorIs(t, err, ErrSendFailed)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, logs.String(), "535 authentication failed")
	assert.NotContains(t, logs.String(), "Email sent to")
}

func TestSMTPMailSender_LogsRecipientAndSubject(t *testing.T) {
	var logs bytes.Buffer
	dialer := &recordingDialer{}
	sender := NewSMTPMailSender(nil, dialer.factory(), logger.NewWriterLogger(&logs, logger.INFO))

	settings := testSettings
	require.NoError(t, sender.Send(Message{To: "dest@example.com", Subject: "Quarterly numbers"}, &settings))

	assert.Contains(t, logs.String(), "Email sent to: dest@example.com, with subject: Quarterly numbers")
}

func TestNewSMTPDialer(t *testing.T) {
	t.Run("mandatory starttls", func(t *testing.T) {
		d, ok := NewSMTPDialer(0)(testSettings).(*gomail.Dialer)
		require.True(t, ok)

		assert.Equal(t, "smtp.example.com", d.Host)
		assert.Equal(t, 587, d.Port)
		assert.Equal(t, "user@example.com", d.Username)
		assert.Equal(t, "pw", d.Password)
		assert.False(t, d.SSL)
		assert.False(t, d.RetryFailure)
		assert.Equal(t, gomail.MandatoryStartTLS, d.StartTLSPolicy)
		require.NotNil(t, d.TLSConfig)
		assert.Equal(t, "smtp.example.com", d.TLSConfig.ServerName)
		assert.False(t, d.TLSConfig.InsecureSkipVerify)
		assert.Equal(t, uint16(tls.VersionTLS12), d.TLSConfig.MinVersion)
	})

	t.Run("port 465 still uses starttls", func(t *testing.T) {
		s := testSettings
		s.ServerPort = 465
		d := NewSMTPDialer(0)(s).(*gomail.Dialer)
		assert.False(t, d.SSL)
	})

	t.Run("timeout", func(t *testing.T) {
		def := NewSMTPDialer(0)(testSettings).(*gomail.Dialer)
		custom := NewSMTPDialer(30 * time.Second)(testSettings).(*gomail.Dialer)

		assert.NotZero(t, def.Timeout)
		assert.Equal(t, 30*time.Second, custom.Timeout)
	})
}
