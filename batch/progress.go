package batch

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	progressCountStyle = lipgloss.NewStyle().Bold(true)
	progressLabelStyle = lipgloss.NewStyle().Faint(true)
	summaryOKStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	summaryFailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// progress renders a monotonically increasing completed-job count over a
// known total as a single rewritten terminal line. Purely observational: it
// never influences job scheduling or results.
type progress struct {
	mu    sync.Mutex
	out   io.Writer
	total int
	done  int
	dirty bool
}

func newProgress(total int, out io.Writer) *progress {
	return &progress{out: out, total: total}
}

// tick records one completed job. Safe to call from any worker.
func (p *progress) tick(label string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done++
	p.dirty = true
	fmt.Fprintf(p.out, "\r\x1b[K%s %s",
		progressCountStyle.Render(fmt.Sprintf("[%d/%d]", p.done, p.total)),
		progressLabelStyle.Render(label))
}

// finish terminates the progress line so following output starts clean.
func (p *progress) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.dirty {
		fmt.Fprint(p.out, "\r\x1b[K")
	}
}

func summaryLine(succeeded, failed uint64) string {
	ok := summaryOKStyle.Render(fmt.Sprintf("%d succeeded", succeeded))
	if failed == 0 {
		return ok
	}
	return ok + ", " + summaryFailStyle.Render(fmt.Sprintf("%d failed", failed))
}
