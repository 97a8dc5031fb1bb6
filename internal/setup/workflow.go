// Package setup runs the first-time configuration: collect the password,
// prove the settings work with a test mail, then persist them.
package setup

import (
	"errors"
	"fmt"

	"github.com/ryan-gang/shell-mail/internal/config"
	"github.com/ryan-gang/shell-mail/internal/logger"
	"github.com/ryan-gang/shell-mail/internal/mail"
	"github.com/ryan-gang/shell-mail/internal/util"
)

const (
	TestSubject = "Test email sent by shmail"
	TestBody    = "Script setup has been completed successfully.\n\n" +
		"If you've received this email, the script is setup and working correctly."
)

var (
	ErrTestSendFailed = errors.New("test email could not be sent")
	ErrSaveFailed     = errors.New("settings could not be saved")
)

// PasswordReader prompts for a secret without echoing it.
type PasswordReader interface {
	ReadPassword(prompt string) (string, error)
}

type Workflow struct {
	Passwords PasswordReader
	Sender    mail.MailSender
	Saver     config.SettingsSaver
	Log       logger.LoggerInterface
	// Notify receives user-facing notices such as a password mismatch.
	Notify func(string)
}

// TestMessage is the mail sent to prove new settings work.
func TestMessage(to, from string) mail.Message {
	m := mail.Message{To: to, From: from, Subject: TestSubject}
	m.SetLiteralBody(TestBody)
	return m
}

// Run completes settings, sends test and saves settings only if the test
// send succeeded. A blank password is prompted for until two entries match.
func (w *Workflow) Run(settings config.Settings, test mail.Message) error {
	log := w.Log
	if log == nil {
		log = logger.Discard()
	}

	if !settings.HasPassword() {
		password, err := w.confirmPassword()
		if err != nil {
			log.Error(util.FormatError(util.SetupError, "reading password", err))
			return err
		}
		settings.LoginPassword = password
	}

	if err := w.Sender.Send(test, &settings); err != nil {
		log.Error(util.FormatError(util.SetupError, "sending test email", err))
		return errors.Join(ErrTestSendFailed, err)
	}

	if err := w.Saver.Save(settings); err != nil {
		log.Critical("Failed to save settings file during setup: ", err)
		return errors.Join(ErrSaveFailed, err)
	}

	log.Infof("Setup completed for %s:%d", settings.MailServer, settings.ServerPort)
	return nil
}

func (w *Workflow) confirmPassword() (string, error) {
	for {
		first, err := w.Passwords.ReadPassword("Password: ")
		if err != nil {
			return "", fmt.Errorf("password prompt: %w", err)
		}
		second, err := w.Passwords.ReadPassword("Confirm Password: ")
		if err != nil {
			return "", fmt.Errorf("password confirmation prompt: %w", err)
		}
		if first == second {
			return first, nil
		}
		if w.Notify != nil {
			w.Notify("Passwords do not match, try again.")
		}
	}
}
