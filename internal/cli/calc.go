package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/claude/liftcalc/internal/numparse"
	"github.com/claude/liftcalc/internal/plates"
	"github.com/claude/liftcalc/internal/rpe"
	"github.com/spf13/cobra"
)

type estimateResult struct {
	Weight  float64  `json:"weight"`
	Reps    float64  `json:"reps"`
	RPE     float64  `json:"rpe"`
	Percent float64  `json:"percent"`
	E1RM    *float64 `json:"e1rm"`
}

func newEstimateCmd(opts *options) *cobra.Command {
	var useRIR bool

	cmd := &cobra.Command{
		Use:     "estimate WEIGHT REPS RPE",
		Short:   "Estimate a one-rep max from a set",
		GroupID: "calculators",
		Long: `Estimate a one-rep max from the weight, reps and RPE of a set.

Numbers may use a decimal comma ("102,5"). Reps outside 1-12 and RPE outside
6-10 are clamped to the chart. With --rir the third argument is reps in
reserve instead of RPE.`,
		Example: `  liftcalc estimate 140 5 8
  liftcalc estimate 102,5 3 2 --rir`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			nums, err := parseArgs(args, "weight", "reps", "rpe")
			if err != nil {
				return err
			}
			unit, err := opts.parseUnit()
			if err != nil {
				return err
			}

			res := estimateResult{Weight: nums[0], Reps: nums[1], RPE: nums[2]}
			if useRIR {
				res.RPE = rpe.RPEFromRIR(nums[2])
			}
			res.Percent, _ = rpe.PercentOf1RM(res.Reps, res.RPE)
			if e1rm, ok := rpe.Estimate1RM(res.Weight, res.Reps, res.RPE); ok {
				res.E1RM = &e1rm
			}
			opts.record("estimate", map[string]any{"weight": res.Weight, "reps": res.Reps, "rpe": res.RPE, "unit": unit}, res)

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(out, res)
			}
			printEstimate(out, res, unit)
			return nil
		},
	}
	cmd.Flags().BoolVar(&useRIR, "rir", false, "treat the third argument as reps in reserve")
	return cmd
}

func printEstimate(w io.Writer, res estimateResult, unit plates.Unit) {
	printHeader(w, "Estimated 1RM")
	printField(w, "Set", fmt.Sprintf("%s x %s @ RPE %s", weightUnit(res.Weight, unit), weight(res.Reps), weight(res.RPE)))
	printField(w, "Percent", percent(res.Percent))
	if res.E1RM == nil {
		printWarning(w, "no estimate: weight and reps must be positive")
		return
	}
	printField(w, "e1RM", oneDecimal(*res.E1RM)+" "+string(unit))
}

type prescribeResult struct {
	OneRM         float64     `json:"one_rm"`
	Reps          float64     `json:"reps"`
	RPE           float64     `json:"rpe"`
	Unit          plates.Unit `json:"unit"`
	Percent       float64     `json:"percent"`
	Weight        float64     `json:"weight"`
	RoundedWeight float64     `json:"rounded_weight"`
}

func newPrescribeCmd(opts *options) *cobra.Command {
	var step float64

	cmd := &cobra.Command{
		Use:     "prescribe ONE_RM REPS RPE",
		Short:   "Work out the weight for a target reps and RPE",
		GroupID: "calculators",
		Example: `  liftcalc prescribe 180 5 8
  liftcalc prescribe 405 3 9 --unit lb`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			nums, err := parseArgs(args, "one_rm", "reps", "rpe")
			if err != nil {
				return err
			}
			unit, err := opts.parseUnit()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("step") {
				step = plates.DefaultRoundingStep(unit)
			}
			if step <= 0 {
				return errors.New("--step must be positive")
			}

			w, ok := rpe.LoadFor(nums[0], nums[1], nums[2])
			if !ok {
				return errors.New("one_rm must be positive")
			}
			res := prescribeResult{OneRM: nums[0], Reps: nums[1], RPE: nums[2], Unit: unit, Weight: w, RoundedWeight: plates.Round(w, step)}
			res.Percent, _ = rpe.PercentOf1RM(res.Reps, res.RPE)
			opts.record("prescribe", map[string]any{"one_rm": res.OneRM, "reps": res.Reps, "rpe": res.RPE, "unit": unit, "step": step}, res)

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(out, res)
			}
			printHeader(out, "Prescribed load")
			printField(out, "Target", fmt.Sprintf("%s reps @ RPE %s (%s)", weight(res.Reps), weight(res.RPE), percent(res.Percent)))
			printField(out, "Weight", weightUnit(res.RoundedWeight, unit))
			_, _ = dimColor.Fprintf(out, "  unrounded %s\n", oneDecimal(res.Weight))
			return nil
		},
	}
	cmd.Flags().Float64Var(&step, "step", 0, "rounding step (default 0.5 kg or 1 lb)")
	return cmd
}

func newPlatesCmd(opts *options) *cobra.Command {
	var bar, collars, step float64

	cmd := &cobra.Command{
		Use:     "plates TARGET",
		Short:   "Work out the plates to load on each side",
		GroupID: "calculators",
		Example: `  liftcalc plates 140
  liftcalc plates 225 --unit lb --bar 35
  liftcalc plates 100,5 --collars 5 --step 0.25`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unit, err := opts.parseUnit()
			if err != nil {
				return err
			}
			target, err := numparse.ParseDecimal(args[0])
			if err != nil {
				return fmt.Errorf("target: %w", err)
			}

			cfg := plates.DefaultConfig(unit)
			cfg.Target = target
			cfg.Collars = collars
			if cmd.Flags().Changed("bar") {
				cfg.Bar = bar
			}
			if cmd.Flags().Changed("step") {
				cfg.RoundingStep = step
			}

			load, err := plates.Compute(cfg)
			if err != nil && !errors.Is(err, plates.ErrInfeasible) {
				return err
			}
			opts.record("plates", cfg, load)

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(out, load)
			}
			printLoad(out, cfg, load)
			return nil
		},
	}
	cmd.Flags().Float64Var(&bar, "bar", 0, "bar weight (default 20 kg or 45 lb)")
	cmd.Flags().Float64Var(&collars, "collars", 0, "combined weight of both collars")
	cmd.Flags().Float64Var(&step, "step", 0, "rounding step for the target (default 0.5 kg or 1 lb)")
	return cmd
}

func printLoad(w io.Writer, cfg plates.Config, load plates.Load) {
	printHeader(w, "Plates for "+weightUnit(load.RoundedTarget, load.Unit))
	if !load.Feasible {
		printWarning(w, fmt.Sprintf("target is below bar and collars (%s)", weightUnit(cfg.Bar+cfg.Collars, load.Unit)))
		return
	}

	bar := weightUnit(cfg.Bar, load.Unit)
	if !plates.IsBarPreset(load.Unit, cfg.Bar) {
		bar += " (custom)"
	}
	printField(w, "Bar", bar)
	if cfg.Collars > 0 {
		printField(w, "Collars", weightUnit(cfg.Collars, load.Unit))
	}
	printField(w, "Per side", weightUnit(load.PerSideAchieved, load.Unit))

	if len(load.Breakdown) == 0 {
		printField(w, "Plates", "none, bar only")
	}
	for _, pc := range load.Breakdown {
		printField(w, fmt.Sprintf("%d x", pc.Count), fmt.Sprintf("%s %s", weightUnit(pc.Plate.Weight, load.Unit), dimColor.Sprint(pc.Plate.Color)))
	}

	seq := make([]string, len(load.Sequence))
	for i, p := range load.Sequence {
		seq[i] = weight(p.Weight)
	}
	if len(seq) > 0 {
		printField(w, "Load order", strings.Join(seq, ", "))
	}

	if load.Exact() {
		printSuccess(w, "exact: "+weightUnit(load.TotalAchieved, load.Unit))
		return
	}
	printWarning(w, fmt.Sprintf("short by %s: loads %s", weightUnit(load.Shortfall(), load.Unit), weightUnit(load.TotalAchieved, load.Unit)))
}

func newTableCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "table",
		Short:   "Print the RPE percentage chart",
		GroupID: "calculators",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cols, rows := rpe.Columns(), rpe.Table()
			if opts.jsonOutput {
				return writeJSON(out, map[string]any{"columns": cols, "rows": rows})
			}

			_, _ = labelColor.Fprintf(out, "%4s", "reps")
			for _, c := range cols {
				_, _ = labelColor.Fprintf(out, " %6s", weight(c))
			}
			fmt.Fprintln(out)
			for _, r := range rows {
				_, _ = labelColor.Fprintf(out, "%4d", r.Reps)
				for _, p := range r.Percents {
					fmt.Fprintf(out, " %6s", percent(p))
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}

// parseArgs parses positional numbers, naming the offending argument on error.
func parseArgs(args []string, names ...string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := numparse.ParseDecimal(a)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", names[i], err)
		}
		out[i] = v
	}
	return out, nil
}
