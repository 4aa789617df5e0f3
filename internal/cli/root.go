// Package cli implements the liftcalc command-line client.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/claude/liftcalc/internal/journal"
	"github.com/claude/liftcalc/internal/plates"
	"github.com/spf13/cobra"
)

// options are the persistent flags shared by all commands.
type options struct {
	stateDir   string
	noHistory  bool
	jsonOutput bool
	unit       string

	log *slog.Logger
}

// NewRootCmd builds the liftcalc command tree.
func NewRootCmd(version string, log *slog.Logger) *cobra.Command {
	opts := &options{log: log}

	root := &cobra.Command{
		Use:     "liftcalc",
		Version: version,
		Short:   "Estimate maxes, prescribe loads and work out barbell plates",
		Long: `liftcalc estimates one-rep maxes from weight, reps and RPE, prescribes
working weights for a target RPE and works out which plates to load.

Calculations are kept in a local history unless --no-history is set.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")

	// Global flags
	root.PersistentFlags().StringVar(&opts.stateDir, "state-dir", defaultStateDir(), "directory holding the calculation history")
	root.PersistentFlags().BoolVar(&opts.noHistory, "no-history", false, "do not record calculations")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	root.PersistentFlags().StringVarP(&opts.unit, "unit", "u", string(plates.KG), "weight unit (kg or lb)")

	root.AddGroup(
		&cobra.Group{ID: "calculators", Title: "Calculators:"},
		&cobra.Group{ID: "tooling", Title: "History & Tooling:"},
	)

	root.AddCommand(
		newEstimateCmd(opts),
		newPrescribeCmd(opts),
		newPlatesCmd(opts),
		newTableCmd(opts),
		newHistoryCmd(opts),
		newImportCmd(opts),
		newMCPCmd(opts, version),
	)
	return root
}

// Execute runs the CLI with os.Args.
func Execute(version string) error {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return NewRootCmd(version, log).Execute()
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".liftcalc"
	}
	return filepath.Join(home, ".liftcalc")
}

func (o *options) parseUnit() (plates.Unit, error) {
	u, err := plates.ParseUnit(o.unit)
	if err != nil {
		return "", fmt.Errorf("--unit: %w", err)
	}
	return u, nil
}

// record appends a calculation to the history. Failures are logged, never
// returned, so a read-only state dir does not break the calculators.
func (o *options) record(kind string, input, result any) {
	if o.noHistory {
		return
	}
	j, err := journal.Open(o.stateDir)
	if err != nil {
		o.log.Warn("history unavailable", "error", err)
		return
	}
	defer j.Close()

	if _, err := j.Record(kind, input, result); err != nil {
		o.log.Warn("recording calculation", "kind", kind, "error", err)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
