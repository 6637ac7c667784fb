// Package report renders the launcher's operator-facing console output.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"go.goodgym.dev/launcher/internal/core/domain"
	"go.goodgym.dev/launcher/internal/ui/output"
	"go.goodgym.dev/launcher/internal/ui/style"
)

const (
	titleWidth  = 40
	bannerWidth = 50
)

// Printer writes styled launcher messages to w.
type Printer struct {
	w      io.Writer
	styles style.Styles
}

// NewPrinter creates a Printer whose colours follow w's terminal profile.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w:      w,
		styles: style.NewStyles(output.NewRenderer(w)),
	}
}

// Title prints the launcher heading.
func (p *Printer) Title() {
	p.println(p.styles.Heading.Render("Good-GYM Exercise API Launcher"))
	p.println(p.styles.Muted.Render(style.Rule("=", titleWidth)))
}

// Checking announces the dependency check.
func (p *Printer) Checking(interpreter string) {
	p.println("Checking dependencies with " + interpreter + "...")
}

// Dependencies prints the outcome of a check, including the remediation list when anything is missing.
func (p *Printer) Dependencies(r domain.CheckReport) {
	if r.OK() {
		p.println(p.styles.Success.Render(style.Check + " All dependencies found!"))
		return
	}

	p.println(p.styles.Failure.Render(style.Cross + " Missing required packages:"))
	packages := make([]string, 0, len(r.Missing))
	for _, req := range r.Missing {
		p.println("   " + style.Bullet + " " + req.Package)
		packages = append(packages, req.Package)
	}
	p.println("")
	p.println("Install missing packages with:")
	p.println("   " + p.styles.Hint.Render("pip install "+strings.Join(packages, " ")))
	p.println("")
	p.println(p.styles.Failure.Render(style.Cross + " Please install missing dependencies and try again."))
}

// Requirements lists every checked requirement with its status.
func (p *Printer) Requirements(r domain.CheckReport) {
	missing := make(map[string]bool, len(r.Missing))
	for _, req := range r.Missing {
		missing[req.Package] = true
	}

	for _, req := range r.Checked {
		if missing[req.Package] {
			p.println("   " + p.styles.Failure.Render(style.Cross) + " " + req.String())
			continue
		}
		p.println("   " + p.styles.Success.Render(style.Check) + " " + req.String())
	}
}

// Banner announces the server and the endpoints it will expose.
func (p *Printer) Banner(m *domain.Manifest) {
	p.println(p.styles.Heading.Render(style.Arrow + " Starting Good-GYM Exercise API..."))
	p.println("   HTTP API:  " + p.styles.Link.Render(m.HTTPURL))
	p.println("   WebSocket: " + p.styles.Link.Render(m.WebSocketURL))
	p.println("   " + p.styles.Hint.Render("Press Ctrl+C to stop"))
	p.println(p.styles.Muted.Render(style.Rule("-", bannerWidth)))
}

// Restarting announces a watch-mode restart caused by path.
func (p *Printer) Restarting(path string) {
	p.println("")
	p.println(p.styles.Warning.Render(style.Warning + " " + path + " changed, restarting server"))
}

// Stopped reports an operator-initiated stop.
func (p *Printer) Stopped() {
	p.println("")
	p.println(p.styles.Muted.Render(style.Stop + " Server stopped by user"))
}

// Status prints the last journaled run of script, or that it never ran.
func (p *Printer) Status(script string, r *domain.RunRecord) {
	if r == nil {
		p.println("No runs recorded for " + script)
		return
	}

	var outcome string
	switch r.Outcome {
	case domain.OutcomeExited:
		outcome = p.styles.Success.Render(style.Check + " " + string(r.Outcome))
	case domain.OutcomeFailed:
		outcome = p.styles.Failure.Render(style.Cross + " " + string(r.Outcome))
	default:
		outcome = p.styles.Muted.Render(style.Stop + " " + string(r.Outcome))
	}

	p.println(p.styles.Heading.Render("Last run of " + r.Script))
	p.println("   Outcome:     " + outcome)
	p.println(fmt.Sprintf("   Exit code:   %d", r.ExitCode))
	p.println("   Interpreter: " + r.Interpreter)
	p.println("   Started:     " + r.StartedAt.Format(time.RFC3339))
	p.println("   Duration:    " + r.Duration().Round(time.Second).String())
	if r.Restarts > 0 {
		p.println(fmt.Sprintf("   Restarts:    %d", r.Restarts))
	}
}

func (p *Printer) println(s string) {
	_, _ = fmt.Fprintln(p.w, s)
}
