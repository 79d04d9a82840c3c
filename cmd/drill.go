package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/session"
)

var drillCmd = &cobra.Command{
	Use:   "drill",
	Short: "Play a game on plain stdin/stdout",
	Long: `Play a game without the terminal UI. Each line is one command:

  a        put the letter in the next blank
  3 a      put the letter at position 3 (1-based)
  ?        reveal the word (hint)
  (empty)  go to the next word
  q        quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWiring(cmd, false)
		if err != nil {
			return err
		}
		defer w.Close()

		settings := w.settings()
		if err := applyQuizFlags(cmd, &settings); err != nil {
			return err
		}

		out := &drillOutput{w: cmd.OutOrStdout()}
		err = runDrill(cmd.Context(), w, settings, cmd.InOrStdin(), out)
		if perr := w.Persist(context.Background()); perr != nil {
			w.logger.Error("save snapshot", "error", perr)
		}
		return err
	},
}

func init() {
	addQuizFlags(drillCmd)
}

// runDrill plays one session over line input until it finishes, the
// player quits or input ends.
func runDrill(ctx context.Context, w *wiring, settings session.Settings, in io.Reader, out *drillOutput) error {
	r := session.NewRunner(session.Options{
		Corpus:    w.corpus,
		Generator: w.gen,
		Tracker:   w.tracker,
		Sink:      w.emitter,
		Cues:      out,
		Observers: []session.Observer{out},
		Timing:    w.timing(),
		Logger:    w.logger,
	})
	go r.Run(ctx)
	defer r.Close()

	if err := r.Start(settings); err != nil {
		return err
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-r.Finished():
				return
			}
		}
	}()

	for {
		select {
		case <-r.Finished():
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				r.Exit()
				return nil
			}
			if !drillCommand(r, line) {
				out.printf("?? type a letter, \"<pos> <letter>\", ? for a hint, or q to quit\n")
			}
		}
	}
}

// drillCommand applies one input line. It reports false for input it
// could not parse.
func drillCommand(r *session.Runner, line string) bool {
	line = strings.TrimSpace(line)
	switch line {
	case "":
		r.Advance()
		return true
	case "q", "Q":
		r.Exit()
		return true
	case "?":
		r.RequestHint()
		return true
	}

	fields := strings.Fields(line)
	switch len(fields) {
	case 1:
		letter, ok := singleLetter(fields[0])
		if !ok {
			return false
		}
		q, ok := r.State().Current()
		if !ok {
			return true
		}
		r.SubmitLetter(q.NextEmpty(), letter)
		return true
	case 2:
		pos, err := strconv.Atoi(fields[0])
		if err != nil {
			return false
		}
		letter, ok := singleLetter(fields[1])
		if !ok {
			return false
		}
		r.SubmitLetter(pos-1, letter)
		return true
	}
	return false
}

func singleLetter(s string) (rune, bool) {
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || !unicode.IsLetter(r) {
		return 0, false
	}
	return r, true
}

// drillOutput prints engine state changes and cues. Both arrive on the
// runner goroutine while the prompt loop may also write.
type drillOutput struct {
	mu sync.Mutex
	w  io.Writer

	phase    session.Phase
	index    int
	attempts int
	filled   int
	started  bool
}

func (d *drillOutput) printf(format string, args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.w, format, args...)
}

// Cue prints a marker for each audio cue.
func (d *drillOutput) Cue(c session.Cue) {
	d.printf("[%s]\n", c)
}

// SessionChanged prints whatever changed since the last state.
func (d *drillOutput) SessionChanged(s session.State) {
	d.mu.Lock()
	defer d.mu.Unlock()

	first := !d.started
	d.started = true
	prevPhase, prevIndex := d.phase, d.index
	d.phase, d.index = s.Phase, s.Index

	switch s.Phase {
	case session.PhaseActive:
		q, _ := s.Current()
		newQuestion := first || prevPhase != session.PhaseActive || prevIndex != s.Index
		if newQuestion {
			d.attempts, d.filled = q.Attempts, len(q.Filled)
			d.prompt(s)
			return
		}
		if q.Attempts > d.attempts && len(s.Flash) > 0 {
			fmt.Fprintln(d.w, "✗ not that one")
		}
		if q.Attempts != d.attempts || len(q.Filled) != d.filled {
			d.attempts, d.filled = q.Attempts, len(q.Filled)
			fmt.Fprintf(d.w, "  %s\n", spaced(q.Display('_')))
		}

	case session.PhaseFeedback:
		if prevPhase == session.PhaseFeedback || s.Last == nil {
			return
		}
		d.feedback(s)

	case session.PhaseComplete:
		if prevPhase == session.PhaseComplete {
			return
		}
		d.summary(s)

	case session.PhaseExited:
		if prevPhase != session.PhaseExited {
			fmt.Fprintln(d.w, "Bye!")
		}
	}
}

func (d *drillOutput) prompt(s session.State) {
	q, _ := s.Current()
	n, total := s.Progress()
	header := fmt.Sprintf("Word %d/%d  (%s · %s)", n, total, q.Word.Category, q.Word.Difficulty)
	if s.Timed() {
		header += fmt.Sprintf("  %ds left", int(s.Remaining.Seconds()))
	}
	fmt.Fprintln(d.w)
	fmt.Fprintln(d.w, header)
	fmt.Fprintf(d.w, "  %s\n", spaced(q.Display('_')))
}

func (d *drillOutput) feedback(s session.State) {
	res := s.Last
	q := res.Question
	word := strings.ToUpper(q.Word.Text)
	switch {
	case res.ViaHint():
		fmt.Fprintf(d.w, "The word was %s  +%d points\n", word, q.Points)
	case q.Perfect:
		fmt.Fprintf(d.w, "Perfect! %s  +%d points  +%d XP\n", word, q.Points, res.XP())
	default:
		fmt.Fprintf(d.w, "Correct! %s  +%d points  +%d XP\n", word, q.Points, res.XP())
	}
	fmt.Fprintln(d.w, "(press Enter for the next word)")
}

func (d *drillOutput) summary(s session.State) {
	if len(s.Questions) == 0 {
		fmt.Fprintln(d.w, "No words match this category and difficulty.")
		return
	}
	sum := s.Summary
	title := "Session complete!"
	if s.TimedOut {
		title = "Time's up!"
	}
	fmt.Fprintln(d.w)
	fmt.Fprintln(d.w, title)
	fmt.Fprintf(d.w, "Words: %d/%d  Accuracy: %.0f%%  Perfect: %d  Hints: %d\n",
		sum.CorrectAnswers, sum.TotalQuestions, sum.Accuracy*100, sum.PerfectAnswers, sum.HintsUsed)
	fmt.Fprintf(d.w, "Score %d  +%d XP\n", sum.Score, sum.XP)
}

// spaced puts a space between letters so blanks are easy to count.
func spaced(s string) string {
	return strings.Join(strings.Split(s, ""), " ")
}
