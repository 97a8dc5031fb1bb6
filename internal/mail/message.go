package mail

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ryan-gang/shell-mail/internal/logger"
	"github.com/ryan-gang/shell-mail/internal/util"

	gomail "gopkg.in/mail.v2"
)

var ErrInvalidMessage = errors.New("invalid message")

// Message is one outgoing email. A blank From is replaced by the configured
// default sender when the message is sent.
type Message struct {
	To             string
	From           string
	Subject        string
	Body           string
	AttachmentPath string
}

// SetBody uses the contents of arg when it names a readable file and arg
// itself otherwise. If the file exists but can't be read the body is left
// empty and the read error is returned.
func (m *Message) SetBody(arg string) error {
	info, err := os.Stat(arg)
	if err != nil || !info.Mode().IsRegular() {
		m.Body = arg
		return nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		m.Body = ""
		return fmt.Errorf("reading body file %s: %w", arg, err)
	}
	m.Body = string(data)
	return nil
}

func (m *Message) SetLiteralBody(body string) {
	m.Body = body
}

// Recipients splits To on commas and semicolons.
func (m Message) Recipients() []string {
	fields := strings.FieldsFunc(m.To, func(r rune) bool {
		return r == ',' || r == ';'
	})
	recipients := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			recipients = append(recipients, f)
		}
	}
	return recipients
}

// AttachmentName is the filename announced for the attachment.
func AttachmentName(path string) string {
	return strings.ReplaceAll(filepath.Base(path), " ", "_")
}

// Compose builds the MIME message. defaultFrom is used when m.From is blank.
// A missing attachment is skipped silently, an unreadable one is logged and
// skipped.
func Compose(m Message, defaultFrom string, log logger.LoggerInterface) (*gomail.Message, error) {
	recipients := m.Recipients()
	if len(recipients) == 0 {
		return nil, fmt.Errorf("%w: no recipient", ErrInvalidMessage)
	}

	from := m.From
	if strings.TrimSpace(from) == "" {
		from = defaultFrom
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", recipients...)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/plain", m.Body)

	if m.AttachmentPath == "" {
		return msg, nil
	}
	info, err := os.Stat(m.AttachmentPath)
	if err != nil || !info.Mode().IsRegular() {
		log.Debugf("No attachment added, %s is not a file", m.AttachmentPath)
		return msg, nil
	}
	data, err := os.ReadFile(m.AttachmentPath)
	if err != nil {
		log.Warn(util.FormatError(util.FileError, "reading attachment", err))
		return msg, nil
	}

	name := AttachmentName(m.AttachmentPath)
	msg.Attach(name,
		gomail.SetHeader(map[string][]string{
			"Content-Type": {`application/octet-stream; name="` + name + `"`},
		}),
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}),
	)
	return msg, nil
}
