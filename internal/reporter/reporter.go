package reporter

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/fjglira/tutorialcheck/internal/domain"
)

// Color modes accepted by New.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Reporter renders per-block outcomes and a final summary to a writer,
// accumulating counts across files so one summary covers a whole
// multi-file run.
type Reporter struct {
	out     io.Writer
	colored bool

	passed  int
	failed  int
	skipped int
	fatals  int
}

// New creates a Reporter. In ColorAuto mode output is colored only when
// the writer is a terminal.
func New(out io.Writer, mode string) *Reporter {
	colored := false
	switch mode {
	case ColorAlways:
		colored = true
		color.NoColor = false
	case ColorAuto:
		if f, ok := out.(*os.File); ok {
			colored = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
	}
	return &Reporter{out: out, colored: colored}
}

// Report writes one line per outcome for a verified file.
func (r *Reporter) Report(file string, outcomes []domain.Outcome) {
	for _, o := range outcomes {
		switch o.Status {
		case domain.StatusPassed:
			r.passed++
		case domain.StatusFailed:
			r.failed++
		case domain.StatusSkipped:
			r.skipped++
		}

		line := fmt.Sprintf("%s  %s:%d %s", r.status(o.Status), file, o.Block.Line, o.Block.Kind)
		if o.Reason != "" {
			line += ": " + o.Reason
		}
		fmt.Fprintln(r.out, line)
	}
}

// Fatal records a fatal per-file error (parse or session start) that
// produced no outcomes.
func (r *Reporter) Fatal(file string, err error) {
	r.fatals++
	fmt.Fprintf(r.out, "%s  %s: %v\n", r.status(domain.StatusFailed), file, err)
}

// Summary writes the final counts.
func (r *Reporter) Summary() {
	fmt.Fprintf(r.out, "\n%d passed, %d failed, %d skipped\n", r.passed, r.failed, r.skipped)
}

// Failed reports whether any outcome failed or any file aborted fatally,
// which determines the process exit status.
func (r *Reporter) Failed() bool {
	return r.failed > 0 || r.fatals > 0
}

func (r *Reporter) status(s domain.Status) string {
	if !r.colored {
		return s.String()
	}
	switch s {
	case domain.StatusPassed:
		return color.GreenString(s.String())
	case domain.StatusFailed:
		return color.RedString(s.String())
	default:
		return color.YellowString(s.String())
	}
}
