package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/softwarelanguageslab/harpy-go/internal/build"
	"github.com/softwarelanguageslab/harpy-go/internal/component"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version and runtime information",
	Long: `Display the version, commit hash, and build metadata for harpydemo,
along with the default runtime backend and the set of scenarios the run
subcommand knows how to drive.`,
	Run: runVersion,
}

func runVersion(cmd *cobra.Command, args []string) {
	fmt.Printf("harpydemo version %s", build.Version())

	if build.Commit != "" {
		fmt.Printf(" commit=%s", build.Commit)
	} else if build.CommitHash != "" {
		fmt.Printf(" commit=%s", build.CommitHash)
	}

	if build.GoVersion != "" {
		fmt.Printf(" go=%s", build.GoVersion)
	}

	if tags := build.Tags(); len(tags) > 0 {
		fmt.Printf(" tags=%s", build.RawTags)
	}

	fmt.Println()

	defaults := component.DefaultRuntimeConfig()
	fmt.Printf(
		"default backend: %s (mailbox capacity %d, wakeup granularity %s)\n",
		defaults.Backend, defaults.MailboxCapacity, defaults.WakeupGranularity,
	)

	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Printf("known scenarios: %v\n", names)
}
