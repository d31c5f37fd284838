// Package cli holds the emaar-web commands.
package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X".
var Version = "dev"

// RootCmd is the base command; it only prints help.
func RootCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "emaar-web",
		Short:        "serve the Emaar mosque restoration site and staff dashboard",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.SetOut(out)

	cmd.AddCommand(Serve())
	cmd.AddCommand(VersionCmd(out))
	return cmd
}

func Execute() error {
	return RootCmd(os.Stdout).Execute()
}
