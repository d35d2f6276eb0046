package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var Version = "dev"

var flagVersionShort bool

// buildVersion prefers the linker-set Version and falls back to the module
// version recorded by `go install`.
func buildVersion() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the magnify version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if flagVersionShort {
			_, _ = fmt.Fprintln(out, buildVersion())
			return
		}
		_, _ = fmt.Fprintf(out, "magnify version: %s (%s, %s/%s)\n", buildVersion(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	versionCmd.Flags().BoolVar(&flagVersionShort, "short", false, "print only the version number")
	rootCmd.AddCommand(versionCmd)
}
