package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/claude/liftcalc/internal/plates"
	"github.com/fatih/color"
)

var (
	// fatih/color disables itself when stdout is not a TTY.
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	headerColor  = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
)

func printHeader(w io.Writer, title string) {
	_, _ = headerColor.Fprintf(w, "▸ %s\n", title)
}

func printSuccess(w io.Writer, msg string) {
	_, _ = successColor.Fprintf(w, "✓ %s\n", msg)
}

func printWarning(w io.Writer, msg string) {
	_, _ = warningColor.Fprintf(w, "⚠ %s\n", msg)
}

func printField(w io.Writer, label, value string) {
	_, _ = labelColor.Fprintf(w, "  %-12s", label)
	fmt.Fprintln(w, value)
}

// weight formats a weight to at most two decimals without trailing zeros,
// e.g. 102.5, 140, 1.25.
func weight(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func weightUnit(v float64, u plates.Unit) string {
	return weight(v) + " " + string(u)
}

// oneDecimal formats estimates, which are rarely plate-exact.
func oneDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func percent(p float64) string {
	return strconv.FormatFloat(p*100, 'f', 1, 64) + "%"
}
