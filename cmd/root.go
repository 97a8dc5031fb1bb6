package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/ryan-gang/shell-mail/internal/cmdutil"
	"github.com/ryan-gang/shell-mail/internal/config"
	"github.com/ryan-gang/shell-mail/internal/logger"
	"github.com/ryan-gang/shell-mail/internal/mail"
	"github.com/ryan-gang/shell-mail/internal/setup"
	"github.com/ryan-gang/shell-mail/internal/util"
	"github.com/spf13/cobra"
)

// Process-level hooks, replaced in tests.
var (
	getuid     = os.Getuid
	exit       = os.Exit
	executable = os.Executable
	newDialer  = mail.NewSMTPDialer

	passwordReader setup.PasswordReader = util.NewTerminalPasswordReader()
)

// Set at build time, e.g.
//
//	go build -ldflags "-X github.com/ryan-gang/shell-mail/cmd.permittedUID=1000 -X github.com/ryan-gang/shell-mail/cmd.version=0.1.0"
var (
	permittedUID = "0"
	version      = "0.0.1"
)

var errPrivileges = errors.New("insufficient privileges")

// app is the state shared by one execution of the command tree. It is filled
// in by the root pre-run and released by the post-run.
type app struct {
	rt  config.Runtime
	log logger.LoggerInterface
}

func newRootCmd() *cobra.Command {
	a := &app{log: logger.Discard()}

	rootCmd := &cobra.Command{
		Use:     "shmail",
		Short:   "Send email from the shell using stored SMTP settings",
		Version: version,
		Long: `shmail sends plain text email, optionally with one attachment, through an
SMTP server that supports STARTTLS. Server address, login and default sender
are stored once with 'shmail setup' and reused by every 'shmail send-mail'.

Run 'shmail install' once to copy the binary to the system location and link
it into the binary directory.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.prepare,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.release()
		},
		Run: func(cmd *cobra.Command, args []string) {
			// Show help if no command is provided
			cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to settings file (default: settings.json beside the executable)")

	rootCmd.AddCommand(newSetupCmd(a), newSendCmd(a), newInstallCmd(a))
	return rootCmd
}

// prepare gates on the caller's uid before anything from the environment is
// read, then opens the log.
func (a *app) prepare(cmd *cobra.Command, args []string) error {
	if err := cmdutil.CheckPrivileges(getuid(), permittedUID); err != nil {
		util.Red.Println("shmail requires root privileges.")
		exit(1)
		return errPrivileges
	}

	baseDir, err := config.ExecutableDir()
	if err != nil {
		baseDir = "."
	}
	rt, err := config.LoadRuntime(baseDir)
	if err != nil {
		return err
	}
	a.rt = rt

	log, err := cmdutil.NewLoggerFromRuntime(rt)
	if err != nil {
		fmt.Fprintln(os.Stderr, util.FormatError(util.FileError, "opening log", err))
		level, _ := logger.ParseLevel(rt.LogLevel)
		log = logger.NewWriterLogger(os.Stderr, level)
	}
	a.log = log
	a.log.Debugf("Running %s %v", cmd.CommandPath(), args)
	return nil
}

func (a *app) release() {
	a.log.Close()
	a.log = logger.Discard()
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Println(err)
		exit(1)
	}
}
