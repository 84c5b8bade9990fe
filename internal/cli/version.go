package cli

import (
	"github.com/spf13/cobra"

	"github.com/macropower/tripchart/internal/version"
)

func GetVersionString() string {
	return version.Short()
}

// NewVersionCmd returns the version command.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version of the tripchart CLI",
		Args:  cobra.NoArgs,
		Run: func(cc *cobra.Command, _ []string) {
			verbose, _ := cc.Flags().GetBool("verbose")
			if verbose {
				cc.Println(version.Info())

				return
			}

			cc.Println(GetVersionString())
		},
	}
	cmd.Flags().BoolP("verbose", "v", false, "Show full build information")

	return cmd
}
