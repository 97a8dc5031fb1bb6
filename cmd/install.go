package cmd

import (
	"github.com/ryan-gang/shell-mail/internal/installer"
	"github.com/ryan-gang/shell-mail/internal/util"
	"github.com/spf13/cobra"
)

func newInstallCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Copy shmail to the system location and link it into the binary directory",
		Long: `Copies the running binary to the install directory (default /opt/shell_mail)
and creates the 'shmail' and 'shmail.bin' links in the binary directory
(default /usr/local/bin). The directories are read from SHMAIL_INSTALL_DIR,
SHMAIL_PREREQ_DIR and SHMAIL_BIN_DIR.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			exe, err := executable()
			if err != nil {
				a.log.Error(util.FormatError(util.InstallError, "locating executable", err))
				util.Red.Println("Install failed, check log for details.")
				return
			}

			inst := &installer.Installer{
				Executable: exe,
				PrereqDir:  a.rt.PrereqDir,
				InstallDir: a.rt.InstallDir,
				BinDir:     a.rt.BinDir,
				Log:        a.log,
			}
			if err := inst.Install(); err != nil {
				a.log.Error(util.FormatError(util.InstallError, "installing", err))
				util.Red.Println("Install failed, check log for details.")
				return
			}

			util.GreenBold.Println("Application setup successfully.")
			util.Cyan.Println("Run: 'sudo shmail setup --help' for details on setting up the application for initial use.")
		},
	}
}
