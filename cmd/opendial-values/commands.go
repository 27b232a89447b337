package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/ubuntu733/opendial/assignment"
	"github.com/ubuntu733/opendial/storage"
	"github.com/ubuntu733/opendial/values"
)

// globalOptions holds the flags shared by every command
type globalOptions struct {
	logLevel string
	noColor  bool
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "opendial-values",
		Short: "Infer, inspect and store typed dialogue values",
		Long: `Infer typed values (numbers, booleans, arrays, sets, strings and None)
from raw text tokens, and load or inspect named variable assignments.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd.ErrOrStderr(), opts.logLevel, opts.noColor)
		},
	}

	defaultLevel := os.Getenv("LOG_LEVEL")
	if defaultLevel == "" {
		defaultLevel = "info"
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", defaultLevel, "log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable coloured output")

	cmd.AddCommand(
		newInferCommand(opts),
		newLoadCommand(opts),
		newShowCommand(opts),
	)
	return cmd
}

// setupLogging configures the global zerolog logger
func setupLogging(w io.Writer, level string, noColor bool) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: noColor}).
		Level(lvl).
		With().Timestamp().Logger()
	return nil
}

func newInferCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "infer [TOKEN...]",
		Short: "Infer the typed value of each token",
		Long: `Infer the typed value of each argument, or of each non-blank line of
standard input when no arguments are given, and print a table of the
results.`,
		Example: `  opendial-values infer 42 TRUE none "[1.0, 2.5, -3]" "[a, b, a]" hello
  printf '3.14e-2\n[x, y]\n' | opendial-values infer`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens := args
			if len(tokens) == 0 {
				var err error
				if tokens, err = readLines(cmd.InOrStdin()); err != nil {
					return err
				}
			}

			rows := make([]inferredRow, len(tokens))
			for i, token := range tokens {
				rows[i] = inferredRow{Input: token, Value: values.Infer(token)}
			}
			log.Debug().Int("tokens", len(tokens)).Msg("Inferred values")

			formatter := newTableFormatter(!opts.noColor)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatInferred(rows))
			return nil
		},
	}
}

func newLoadCommand(opts *globalOptions) *cobra.Command {
	var (
		dbPath string
		name   string
	)

	cmd := &cobra.Command{
		Use:   "load FILE",
		Short: "Load an assignment from a YAML file",
		Long: `Load a named variable assignment from a YAML file, print it and, when
--db is given, store it.

The file has the form:

  name: turn-1
  values:
    a_u: Request(Weather)
    coords: [1.5, 2, -3]
    slot: None`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open assignment file: %w", err)
			}
			defer f.Close()

			docName, a, err := assignment.LoadYAML(f)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			switch {
			case name != "":
			case docName != "":
				name = docName
			default:
				name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}

			log.Info().Str("assignment", name).Int("vars", a.Len()).Msg("Loaded assignment")

			formatter := newTableFormatter(!opts.noColor)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAssignment(name, a))

			if dbPath == "" {
				return nil
			}
			store, err := openStore(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Put(name, a); err != nil {
				return err
			}
			log.Info().Str("assignment", name).Str("db", dbPath).Msg("Stored assignment")
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "badger directory to store the assignment in")
	cmd.Flags().StringVar(&name, "name", "", "assignment name (defaults to the file's name field, then its base name)")
	return cmd
}

func newShowCommand(opts *globalOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "show [NAME...]",
		Short: "Print stored assignments",
		Long:  `Print the named assignments, or every stored assignment when no name is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			names := args
			if len(names) == 0 {
				if names, err = store.Names(); err != nil {
					return err
				}
			}
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "_No stored assignments_")
				return nil
			}

			formatter := newTableFormatter(!opts.noColor)
			for i, name := range names {
				a, err := store.Get(name)
				if err != nil {
					return err
				}
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAssignment(name, a))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "badger directory to read from")
	cmd.MarkFlagRequired("db")
	return cmd
}

func openStore(path string) (*storage.Store, error) {
	logger := log.Logger.With().Str("db", path).Logger()
	return storage.Open(storage.Options{Path: path, Logger: &logger})
}

// readLines returns the non-blank lines of r
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := scanner.Text(); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return lines, nil
}
