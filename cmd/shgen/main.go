// Command shgen assembles POSIX shell scripts from YAML task files.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/opal-lang/shgen/core/ast"
	"github.com/opal-lang/shgen/taskfile"
)

const (
	exitIOError    = 2
	exitBuildError = 3
)

func main() {
	if err := newRootCommand(afero.NewOsFs()).Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// buildError distinguishes task-file problems from I/O problems for the
// process exit code.
type buildError struct {
	err error
}

func (e *buildError) Error() string { return e.err.Error() }
func (e *buildError) Unwrap() error { return e.err }

func exitCode(err error) int {
	var be *buildError
	if errors.As(err, &be) {
		return exitBuildError
	}
	return exitIOError
}

func newRootCommand(fs afero.Fs) *cobra.Command {
	root := &cobra.Command{
		Use:           "shgen",
		Short:         "Generate POSIX shell scripts from task files",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newBuildCommand(fs))
	return root
}

func newBuildCommand(fs afero.Fs) *cobra.Command {
	var (
		oneline bool
		output  string
		verbose bool
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "build <taskfile>",
		Short: "Build a shell script from a YAML task file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(verbose)
			defer logger.Sync() //nolint:errcheck // best-effort flush on exit

			color.NoColor = color.NoColor || noColor

			input := args[0]
			data, err := afero.ReadFile(fs, input)
			if err != nil {
				return fmt.Errorf("reading %s: %w", input, err)
			}
			logger.Debug("task file read", zap.String("path", input), zap.Int("bytes", len(data)))

			file, err := taskfile.Load(data)
			if err != nil {
				return &buildError{err}
			}
			built, err := file.Build()
			if err != nil {
				return &buildError{err}
			}

			mode := ast.Multiline
			if oneline {
				mode = ast.Oneline
			}
			text := built.Render(mode)
			logger.Debug("script rendered", zap.Int("nodes", len(built.Nodes())), zap.Bool("oneline", oneline))

			if output == "" {
				fmt.Fprint(cmd.OutOrStdout(), text)
				return nil
			}
			if err := afero.WriteFile(fs, output, []byte(text), 0o755); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			color.New(color.FgGreen).Fprintf(cmd.ErrOrStderr(), "wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().BoolVar(&oneline, "oneline", false, "Render as a single semicolon-joined line")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the script to a file instead of stdout")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}

func newLogger(verbose bool) *zap.Logger {
	if verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			return logger
		}
	}
	return zap.NewNop()
}
