package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

// toolVersion is printed by --version.
const toolVersion = "0.1.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Displays the tool version, the module build version and the Go version used to build this tool.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println("tool version\t", toolVersion)

			info, ok := debug.ReadBuildInfo()
			if !ok {
				return
			}

			if info.Main.Version != "" {
				cmd.Println("build version\t", info.Main.Version)
			}

			cmd.Println("go version\t", info.GoVersion)
		},
	}
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
