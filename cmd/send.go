package cmd

import (
	"errors"
	"time"

	"github.com/lithammer/dedent"
	"github.com/ryan-gang/shell-mail/internal/cmdutil"
	"github.com/ryan-gang/shell-mail/internal/config"
	"github.com/ryan-gang/shell-mail/internal/mail"
	"github.com/ryan-gang/shell-mail/internal/util"
	"github.com/spf13/cobra"
)

var (
	helpSend = `Sends a plain text email using the stored settings.
BODY is either the text of the message or the path to a text file whose
contents become the message. Use --literal to always send BODY as text.`

	exampleSend = dedent.Dedent(`
		# Send a short message
		shmail send-mail dest@example.com "Backup finished" "All volumes synced."

		# Use a file as the body and attach the log
		shmail send-mail dest@example.com "Nightly report" /var/tmp/report.txt --file "/var/log/backup run.log"`,
	)
)

func newSendCmd(a *app) *cobra.Command {
	sendCmd := &cobra.Command{
		Use:     "send-mail MAIL_TO SUBJECT BODY",
		Short:   "Send mail",
		Long:    helpSend,
		Example: exampleSend,
		Args:    cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			store, err := cmdutil.SettingsStoreFromFlags(cmd)
			if err != nil {
				a.log.Error(util.FormatError(util.ConfigError, "locating settings", err))
				util.Red.Println("Sending mail failed, check log for details.")
				return
			}

			attachment, _ := cmd.Flags().GetString("file")
			literal, _ := cmd.Flags().GetBool("literal")
			timeout, err := cmd.Flags().GetInt("mail-timeout")
			if err != nil {
				timeout = 0
			}

			msg := mail.Message{To: args[0], Subject: args[1], AttachmentPath: attachment}
			if literal {
				msg.SetLiteralBody(args[2])
			} else if err := msg.SetBody(args[2]); err != nil {
				a.log.Error(util.FormatError(util.FileError, "reading body", err))
			}

			sender := mail.NewSMTPMailSender(store, newDialer(time.Duration(timeout)*time.Second), a.log)
			if err := sender.Send(msg, nil); err != nil {
				if errors.Is(err, config.ErrNotConfigured) {
					util.Red.Println("shmail is not set up, run 'shmail setup --help' first.")
					return
				}
				util.Red.Println("Sending mail failed, check log for details.")
				return
			}
			util.Green.Printf("Mail sent to %s\n", args[0])
		},
	}

	sendCmd.Flags().StringP("file", "f", "", "Full path of a file to attach to the email")
	sendCmd.Flags().Bool("literal", false, "Send BODY as text even if it names a file")
	sendCmd.Flags().IntP("mail-timeout", "m", 0, "Mail timeout in seconds, 0 keeps the default")
	return sendCmd
}
