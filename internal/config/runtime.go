package config

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

const DefaultLogFileName = "shmail.log"

// Runtime holds process-level options read from the environment at startup.
type Runtime struct {
	LogFile      string `env:"SHMAIL_LOG_FILE"`
	LogToConsole bool   `env:"SHMAIL_LOG_CONSOLE" envDefault:"false"`
	LogLevel     string `env:"SHMAIL_LOG_LEVEL" envDefault:"debug"`

	InstallDir string `env:"SHMAIL_INSTALL_DIR" envDefault:"/opt/shell_mail"`
	PrereqDir  string `env:"SHMAIL_PREREQ_DIR" envDefault:"/opt"`
	BinDir     string `env:"SHMAIL_BIN_DIR" envDefault:"/usr/local/bin"`
}

// LoadRuntime parses the environment. An unset log file defaults to
// DefaultLogFileName inside baseDir.
func LoadRuntime(baseDir string) (Runtime, error) {
	var rt Runtime
	if err := env.Parse(&rt); err != nil {
		return Runtime{}, fmt.Errorf("parsing environment: %w", err)
	}
	if rt.LogFile == "" {
		rt.LogFile = filepath.Join(baseDir, DefaultLogFileName)
	}
	return rt, nil
}
