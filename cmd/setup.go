package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/lithammer/dedent"
	"github.com/ryan-gang/shell-mail/internal/cmdutil"
	"github.com/ryan-gang/shell-mail/internal/config"
	"github.com/ryan-gang/shell-mail/internal/mail"
	"github.com/ryan-gang/shell-mail/internal/setup"
	"github.com/ryan-gang/shell-mail/internal/util"
	"github.com/spf13/cobra"
)

var exampleSetup = dedent.Dedent(`
	# Configure a submission server and send the test mail to yourself
	sudo shmail setup smtp.example.com 587 user@example.com user@example.com user@example.com`,
)

func newSetupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "setup SERVER PORT LOGIN FROM_ADDRESS TEST_TO_EMAIL",
		Short: "Initial setup, or change initial setup options",
		Long: `Stores the SMTP server, port, login and default sender address.
The password is prompted for twice without echo. A test email is sent to
TEST_TO_EMAIL and the settings are only saved if it goes through.`,
		Example: exampleSetup,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(5)(cmd, args); err != nil {
				return err
			}
			if _, err := strconv.Atoi(args[1]); err != nil {
				return fmt.Errorf("invalid port %q: must be an integer", args[1])
			}
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			port, _ := strconv.Atoi(args[1])
			settings, err := config.NewSettings(args[0], port, args[2], args[3])
			if err != nil {
				a.log.Error(util.FormatError(util.ValidationError, "reading setup arguments", err))
				util.Red.Printf("Setup failed: %v\n", err)
				return
			}

			store, err := cmdutil.SettingsStoreFromFlags(cmd)
			if err != nil {
				a.log.Error(util.FormatError(util.ConfigError, "locating settings", err))
				util.Red.Println("Setup failed, check log for details.")
				return
			}

			workflow := &setup.Workflow{
				Passwords: passwordReader,
				Sender:    mail.NewSMTPMailSender(store, newDialer(0), a.log),
				Saver:     store,
				Log:       a.log,
				Notify:    func(notice string) { util.Yellow.Println(notice) },
			}

			if err := workflow.Run(settings, setup.TestMessage(args[4], args[3])); err != nil {
				if errors.Is(err, setup.ErrSaveFailed) {
					util.Red.Println("Setup failed, the test email was sent but the settings could not be saved.")
					return
				}
				util.Red.Println("Setup failed, check the connection and login information for the email server.")
				return
			}
			util.Green.Println("Setup was successful.")
		},
	}
}
