package cmdutil

import (
	"fmt"
	"strconv"

	"github.com/ryan-gang/shell-mail/internal/config"
	"github.com/ryan-gang/shell-mail/internal/logger"
	"github.com/spf13/cobra"
)

// SettingsStoreFromFlags returns the settings store selected by the config flag
func SettingsStoreFromFlags(cmd *cobra.Command) (*config.Store, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if path == "" {
		if path, err = config.DefaultSettingsPath(); err != nil {
			return nil, err
		}
	}
	return config.NewStore(path), nil
}

// CheckPrivileges fails unless uid equals permitted. permitted is a decimal
// uid fixed at build time; anything unparsable denies every caller.
func CheckPrivileges(uid int, permitted string) error {
	want, err := strconv.Atoi(permitted)
	if err != nil {
		return fmt.Errorf("invalid permitted uid %q: %w", permitted, err)
	}
	if uid != want {
		return fmt.Errorf("running as uid %d, uid %d is required", uid, want)
	}
	return nil
}

// NewLoggerFromRuntime opens the log destination chosen in the environment
func NewLoggerFromRuntime(rt config.Runtime) (logger.LoggerInterface, error) {
	level, err := logger.ParseLevel(rt.LogLevel)
	if err != nil {
		return nil, err
	}
	return logger.NewLogger(logger.Options{
		File:    rt.LogFile,
		Console: rt.LogToConsole,
		Level:   level,
	})
}
