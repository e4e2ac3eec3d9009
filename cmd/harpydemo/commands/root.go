package commands

import (
	"os"

	"github.com/btcsuite/btclog/v2"
	"github.com/spf13/cobra"

	"github.com/softwarelanguageslab/harpy-go/internal/baselib/actor"
	"github.com/softwarelanguageslab/harpy-go/internal/build"
	"github.com/softwarelanguageslab/harpy-go/internal/genactor"
	"github.com/softwarelanguageslab/harpy-go/internal/reactor"
	"github.com/softwarelanguageslab/harpy-go/internal/window"
)

var (
	// logDir is the directory rotated log files are written to; empty
	// disables file logging.
	logDir string

	// maxLogFiles and maxLogFileSize mirror the teacher's substrated
	// daemon flags of the same name.
	maxLogFiles    int
	maxLogFileSize int
)

var rootCmd = &cobra.Command{
	Use:   "harpydemo",
	Short: "Runs literal end-to-end scenarios against the harpy runtime",
	Long: `harpydemo spawns a harpy component.System and drives one of the
specification's literal end-to-end scenarios (S1-S6) against it, logging
every component's lifecycle and dataflow through the wired btclog handler
set.`,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&logDir, "log-dir", "",
		"Directory for rotated log files (empty disables file logging)",
	)
	rootCmd.PersistentFlags().IntVar(
		&maxLogFiles, "max-log-files", build.DefaultMaxLogFiles,
		"Maximum number of rotated log files to keep",
	)
	rootCmd.PersistentFlags().IntVar(
		&maxLogFileSize, "max-log-file-size", build.DefaultMaxLogFileSize,
		"Maximum log file size in MB before rotation",
	)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

// wireLogging builds the dual console+file btclog handler set and wires
// every package's UseLogger, matching cmd/substrated/main.go's logger-wiring
// sequence. The returned close func must be called before exit.
func wireLogging() (close func(), err error) {
	var handlers []btclog.Handler
	handlers = append(handlers, btclog.NewDefaultHandler(os.Stderr))

	close = func() {}

	if logDir != "" {
		rotator := build.NewRotatingLogWriter()
		if err := rotator.InitLogRotator(&build.LogRotatorConfig{
			LogDir:         logDir,
			MaxLogFiles:    maxLogFiles,
			MaxLogFileSize: maxLogFileSize,
		}); err != nil {
			return close, err
		}
		handlers = append(handlers, btclog.NewDefaultHandler(rotator))
		close = func() { rotator.Close() }
	}

	combined := build.NewHandlerSet(handlers...)
	logger := btclog.NewSLogger(combined)

	actor.UseLogger(logger.WithPrefix("ACTR"))
	genactor.UseLogger(logger.WithPrefix("GACT"))
	reactor.UseLogger(logger.WithPrefix("RCTR"))
	window.UseLogger(logger.WithPrefix("WNDW"))

	return close, nil
}
