package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	MinPort = 1
	MaxPort = 65535
)

var ErrInvalidSettings = errors.New("invalid settings")

// Settings holds the SMTP connection and login details persisted by setup.
type Settings struct {
	MailServer       string `json:"mail_server"`
	ServerPort       int    `json:"server_port"`
	LoginName        string `json:"login_name"`
	LoginPassword    string `json:"login_password"`
	DefaultFromEmail string `json:"default_from_email"`
}

// NewSettings builds validated settings without a password. The password is
// either prompted for by setup or assigned by the caller.
func NewSettings(server string, port int, login, from string) (Settings, error) {
	s := Settings{
		MailServer:       strings.TrimSpace(server),
		LoginName:        login,
		DefaultFromEmail: from,
	}
	if err := s.SetServerPort(port); err != nil {
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// SetServerPort leaves the current port untouched when port is out of range.
func (s *Settings) SetServerPort(port int) error {
	if err := checkPort(port); err != nil {
		return err
	}
	s.ServerPort = port
	return nil
}

func (s Settings) Validate() error {
	if strings.TrimSpace(s.MailServer) == "" {
		return fmt.Errorf("%w: mail server is required", ErrInvalidSettings)
	}
	return checkPort(s.ServerPort)
}

// HasPassword reports whether a non-blank password is set.
func (s Settings) HasPassword() bool {
	return strings.TrimSpace(s.LoginPassword) != ""
}

func checkPort(port int) error {
	if port < MinPort || port > MaxPort {
		return fmt.Errorf("%w: port must be between %d and %d, got %d", ErrInvalidSettings, MinPort, MaxPort, port)
	}
	return nil
}
