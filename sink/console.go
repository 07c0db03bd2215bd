package sink

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/hupe1980/wolfarena/core"
)

var (
	phaseStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	actionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999"))
	speechStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))
	voteStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801"))
	deathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	gameOverStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	revealStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
)

// ConsoleOptions configures the console sink.
type ConsoleOptions struct {
	// Writer receives the rendered narration. Defaults to os.Stdout.
	Writer io.Writer
}

// Console renders notices as styled live narration, one line per notice.
// The game-over notice additionally prints the full role reveal.
type Console struct {
	mu     sync.Mutex
	writer io.Writer
}

var _ core.EventSink = (*Console)(nil)

// NewConsole creates a console sink writing to stdout by default.
func NewConsole(optFns ...func(o *ConsoleOptions)) *Console {
	opts := ConsoleOptions{Writer: os.Stdout}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Console{writer: opts.Writer}
}

// Publish implements core.EventSink. Write errors are swallowed.
func (c *Console) Publish(n core.Notice) {
	line := renderNotice(n)
	if line == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintln(c.writer, line)
}

func renderNotice(n core.Notice) string {
	switch n.Kind {
	case core.NoticePhaseChange:
		return phaseStyle.Render(fmt.Sprintf("== %s ==", n.Message))
	case core.NoticeAction:
		return actionStyle.Render(n.Message)
	case core.NoticeSpeech:
		return speechStyle.Render(n.Message)
	case core.NoticeVote:
		return voteStyle.Render(n.Message)
	case core.NoticeVoteResult:
		return voteStyle.Render(n.Message)
	case core.NoticeDeath, core.NoticeEliminated:
		return deathStyle.Render(n.Message)
	case core.NoticeGameOver:
		return renderGameOver(n)
	default:
		return n.Message
	}
}

func renderGameOver(n core.Notice) string {
	var sb strings.Builder
	sb.WriteString(gameOverStyle.Render(n.Message))
	if n.Outcome == nil {
		return sb.String()
	}
	for _, r := range n.Outcome.Reveals {
		status := "dead"
		if r.Alive {
			status = "alive"
		}
		sb.WriteString("\n")
		sb.WriteString(revealStyle.Render(fmt.Sprintf("  Player %d: %s (%s)", r.PlayerID, r.Role.Label(), status)))
	}
	return sb.String()
}
