package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/claude/liftcalc/internal/ingest"
	"github.com/claude/liftcalc/internal/ingest/alpha"
	"github.com/claude/liftcalc/internal/models"
	"github.com/claude/liftcalc/internal/plates"
	"github.com/claude/liftcalc/internal/strength"
	"github.com/claude/liftcalc/internal/upload"
	"github.com/spf13/cobra"
)

// collector keeps parsed sets in memory for a dry run.
type collector struct {
	rows []models.LiftSet
}

func (c *collector) InsertLiftSets(ctx context.Context, rows []models.LiftSet) (int64, error) {
	c.rows = append(c.rows, rows...)
	return int64(len(rows)), nil
}

type previewResult struct {
	Result *ingest.Result          `json:"result"`
	Best   []strength.ExerciseBest `json:"best"`
}

func newImportCmd(opts *options) *cobra.Command {
	var serverURL, apiKey, equipment string
	var dryRun bool

	cmd := &cobra.Command{
		Use:     "import FILE",
		Short:   "Import an Alpha Progression CSV export",
		GroupID: "tooling",
		Long: `Import the working sets of an Alpha Progression CSV export.

With --server the export is sent to a liftcalc server and stored in its lift
log. Without it, or with --dry-run, the export is parsed locally and the best
estimated 1RM per exercise is printed. Warmups and bodyweight-plus sets are
skipped. Use "-" as FILE to read stdin.`,
		Example: `  liftcalc import export.csv
  liftcalc import export.csv --equipment barbell
  liftcalc import export.csv --server http://liftcalc:8080 --api-key $LIFTCALC_AUTH_API_KEY`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			ctx := cmd.Context()

			if serverURL == "" || dryRun {
				var c collector
				res, err := alpha.NewProvider(&c, opts.log).Ingest(ctx, bytes.NewReader(data), 0, alpha.Options{Equipment: equipment}, time.Now())
				if err != nil {
					return err
				}
				res.SetsInserted = 0
				preview := previewResult{Result: res, Best: strength.BestByExercise(c.rows)}
				if opts.jsonOutput {
					return writeJSON(out, preview)
				}
				printImport(out, "Import preview", res)
				printBest(out, preview.Best)
				return nil
			}

			if apiKey == "" {
				apiKey = os.Getenv("LIFTCALC_AUTH_API_KEY")
			}
			res, err := upload.NewClient(serverURL, apiKey).SendAlphaCSV(ctx, data, equipment)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return writeJSON(out, res)
			}
			printImport(out, "Imported to "+serverURL, res)
			return nil
		},
	}
	cmd.Flags().StringVar(&serverURL, "server", "", "liftcalc server URL to store the sets")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "server API key (default $LIFTCALC_AUTH_API_KEY)")
	cmd.Flags().StringVar(&equipment, "equipment", "", "only import exercises with this equipment, e.g. barbell")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse locally even when --server is set")
	return cmd
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}
	return data, nil
}

func printImport(w io.Writer, title string, res *ingest.Result) {
	printHeader(w, title)
	printField(w, "Sessions", strconv.Itoa(res.Sessions))
	printField(w, "Sets", strconv.Itoa(res.SetsReceived))
	if res.SetsInserted > 0 || res.SetsSkipped > 0 {
		printField(w, "Inserted", strconv.FormatInt(res.SetsInserted, 10))
		printField(w, "Duplicates", strconv.FormatInt(res.SetsSkipped, 10))
	}
	_, _ = dimColor.Fprintf(w, "  skipped %d warmups, %d bodyweight sets", res.WarmupsSkipped, res.BodyweightSkipped)
	if res.FilteredOut > 0 {
		_, _ = dimColor.Fprintf(w, ", %d by equipment", res.FilteredOut)
	}
	fmt.Fprintln(w)
	for _, reason := range res.RejectedReasons {
		printWarning(w, "rejected "+reason)
	}
}

func printBest(w io.Writer, bests []strength.ExerciseBest) {
	if len(bests) == 0 {
		printWarning(w, "no rated sets to estimate from")
		return
	}
	printHeader(w, "Best estimates")
	for _, b := range bests {
		set := fmt.Sprintf("%s x %d", weightUnit(b.Set.WeightKg, plates.KG), b.Set.Reps)
		if b.Set.RPE != nil {
			set += " @ " + weight(*b.Set.RPE)
		}
		_, _ = labelColor.Fprintf(w, "  %s\n", b.Exercise)
		fmt.Fprintf(w, "    e1RM %s kg (%s)\n", oneDecimal(b.E1RM), set)
	}
}
