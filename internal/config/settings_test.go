package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSettings(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		s, err := NewSettings(" smtp.example.com ", 587, "user@example.com", "from@example.com")

		require.NoError(t, err)
		assert.Equal(t, "smtp.example.com", s.MailServer)
		assert.Equal(t, 587, s.ServerPort)
		assert.Equal(t, "user@example.com", s.LoginName)
		assert.Equal(t, "from@example.com", s.DefaultFromEmail)
		assert.False(t, s.HasPassword())
	})

	t.Run("rejects blank server", func(t *testing.T) {
		_, err := NewSettings("  ", 587, "user", "from@example.com")
		assert.ErrorIs(t, err, ErrInvalidSettings)
	})

	for _, port := range []int{-1, 0, 65536, 100000} {
		_, err := NewSettings("smtp.example.com", port, "user", "from@example.com")
		assert.ErrorIs(t, err, ErrInvalidSettings, "port %d", port)
	}
}

func TestSettings_SetServerPort(t *testing.T) {
	s := Settings{MailServer: "smtp.example.com", ServerPort: 587}

	for _, port := range []int{0, -25, 65536} {
		err := s.SetServerPort(port)
		require.ErrorIs(t, err, ErrInvalidSettings)
		assert.Equal(t, 587, s.ServerPort, "port must stay unchanged after rejecting %d", port)
	}

	require.NoError(t, s.SetServerPort(465))
	assert.Equal(t, 465, s.ServerPort)
}

func TestSettings_HasPassword(t *testing.T) {
	assert.False(t, Settings{LoginPassword: ""}.HasPassword())
	assert.False(t, Settings{LoginPassword: " \t"}.HasPassword())
	assert.True(t, Settings{LoginPassword: "pw"}.HasPassword())
}

func TestStaticSettings(t *testing.T) {
	want := Settings{MailServer: "smtp.example.com", ServerPort: 25}

	got, err := NewStaticSettings(want).Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadRuntime(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, name := range []string{
			"SHMAIL_LOG_FILE", "SHMAIL_LOG_CONSOLE", "SHMAIL_LOG_LEVEL",
			"SHMAIL_INSTALL_DIR", "SHMAIL_PREREQ_DIR", "SHMAIL_BIN_DIR",
		} {
			t.Setenv(name, "")
			require.NoError(t, os.Unsetenv(name))
		}
		base := t.TempDir()

		rt, err := LoadRuntime(base)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, DefaultLogFileName), rt.LogFile)
		assert.False(t, rt.LogToConsole)
		assert.Equal(t, "debug", rt.LogLevel)
		assert.Equal(t, "/opt/shell_mail", rt.InstallDir)
		assert.Equal(t, "/opt", rt.PrereqDir)
		assert.Equal(t, "/usr/local/bin", rt.BinDir)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("SHMAIL_LOG_FILE", "/var/log/shmail.log")
		t.Setenv("SHMAIL_LOG_CONSOLE", "true")
		t.Setenv("SHMAIL_LOG_LEVEL", "warn")
		t.Setenv("SHMAIL_INSTALL_DIR", "/srv/shmail")

		rt, err := LoadRuntime(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "/var/log/shmail.log", rt.LogFile)
		assert.True(t, rt.LogToConsole)
		assert.Equal(t, "warn", rt.LogLevel)
		assert.Equal(t, "/srv/shmail", rt.InstallDir)
	})

	t.Run("invalid console flag", func(t *testing.T) {
		t.Setenv("SHMAIL_LOG_CONSOLE", "sometimes")

		_, err := LoadRuntime(t.TempDir())
		assert.Error(t, err)
	})
}
