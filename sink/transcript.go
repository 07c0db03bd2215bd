package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/wolfarena/core"
	"github.com/hupe1980/wolfarena/logging"
)

// TranscriptOptions configures the transcript sink.
type TranscriptOptions struct {
	// OutputDir is the directory the markdown file is written into.
	// Defaults to "transcripts". Created on demand.
	OutputDir string

	// Logger reports write failures. Defaults to a no-op logger.
	Logger logging.Logger
}

// Transcript collects the full game narration and writes it out as one
// markdown file when the game-over notice arrives. Until then nothing
// touches the filesystem, so an aborted game leaves no partial files.
type Transcript struct {
	filePath string
	logger   logging.Logger

	mu      sync.Mutex
	notices []core.Notice
	written bool
}

var _ core.EventSink = (*Transcript)(nil)

// NewTranscript creates a transcript sink. The target file name is fixed at
// construction from the current time, so Path is stable for the lifetime of
// the sink.
func NewTranscript(optFns ...func(o *TranscriptOptions)) *Transcript {
	opts := TranscriptOptions{
		OutputDir: "transcripts",
		Logger:    logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	fileName := fmt.Sprintf("game-%s.md", time.Now().Format("20060102-150405"))
	return &Transcript{
		filePath: filepath.Join(opts.OutputDir, fileName),
		logger:   opts.Logger,
	}
}

// Path returns the file the transcript will be (or has been) written to.
func (t *Transcript) Path() string { return t.filePath }

// Publish implements core.EventSink. Write failures on game over are
// logged, never returned.
func (t *Transcript) Publish(n core.Notice) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.notices = append(t.notices, n)
	if n.Kind != core.NoticeGameOver || t.written {
		return
	}
	t.written = true
	if err := t.writeToFile(); err != nil {
		t.logger.Error("write transcript", "path", t.filePath, "error", err.Error())
	}
}

func (t *Transcript) writeToFile() error {
	var sb strings.Builder

	sb.WriteString("# Werewolf Game Transcript\n\n")
	sb.WriteString(fmt.Sprintf("Recorded %s.\n\n", time.Now().Format(time.RFC3339)))

	for _, n := range t.notices {
		sb.WriteString(formatNotice(n))
	}

	if err := os.MkdirAll(filepath.Dir(t.filePath), 0755); err != nil {
		return fmt.Errorf("create transcript directory: %w", err)
	}
	return os.WriteFile(t.filePath, []byte(sb.String()), 0644)
}

func formatNotice(n core.Notice) string {
	switch n.Kind {
	case core.NoticePhaseChange:
		return fmt.Sprintf("## %s\n\n", n.Message)
	case core.NoticeAction:
		return fmt.Sprintf("> %s\n\n", n.Message)
	case core.NoticeSpeech:
		if n.Event != nil {
			return fmt.Sprintf("**Player %d:** %s\n\n", n.Event.PlayerID, n.Event.Content)
		}
		return fmt.Sprintf("%s\n\n", n.Message)
	case core.NoticeVote:
		return fmt.Sprintf("- %s\n", n.Message)
	case core.NoticeVoteResult, core.NoticeDeath, core.NoticeEliminated:
		return fmt.Sprintf("\n**%s**\n\n", n.Message)
	case core.NoticeGameOver:
		return formatGameOver(n)
	default:
		return fmt.Sprintf("%s\n\n", n.Message)
	}
}

func formatGameOver(n core.Notice) string {
	var sb strings.Builder
	sb.WriteString("## Outcome\n\n")
	sb.WriteString(fmt.Sprintf("%s\n", n.Message))
	if n.Outcome != nil {
		sb.WriteString("\n")
		for _, r := range n.Outcome.Reveals {
			status := "dead"
			if r.Alive {
				status = "alive"
			}
			sb.WriteString(fmt.Sprintf("- Player %d: %s (%s)\n", r.PlayerID, r.Role.Label(), status))
		}
	}
	return sb.String()
}
