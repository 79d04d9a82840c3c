package session

import (
	"slices"
	"time"

	"github.com/abhisek/wordiz/internal/grading"
	"github.com/abhisek/wordiz/internal/hints"
	"github.com/abhisek/wordiz/internal/mastery"
)

// Apply is the session transition function. It never mutates s; events
// that do not apply in the current phase, carry a stale generation, or
// fail validation return s unchanged with no effects.
func Apply(s State, ev Event, now time.Time) (State, []Effect) {
	switch ev := ev.(type) {
	case Started:
		return applyStarted(s, ev, now)
	case LetterSubmitted:
		return applyLetter(s, ev, now)
	case HintRequested:
		return applyHint(s, now)
	case Ticked:
		return applyTick(s, ev, now)
	case AdvanceDue:
		if s.Phase != PhaseFeedback || ev.Gen != s.AdvanceGen {
			return s, nil
		}
		s = s.fork()
		s.AdvanceGen++
		return advance(s, now, nil)
	case AdvanceRequested:
		if s.Phase != PhaseFeedback {
			return s, nil
		}
		s = s.fork()
		s.AdvanceGen++
		return advance(s, now, []Effect{CancelTimer{Key: KeyAdvance}})
	case WrongCleared:
		if s.Phase != PhaseActive || s.FlashGen[ev.Pos] != ev.Gen || ev.Gen == 0 {
			return s, nil
		}
		s = s.fork()
		delete(s.Flash, ev.Pos)
		delete(s.FlashGen, ev.Pos)
		return s, nil
	case ExitRequested:
		return applyExit(s)
	}
	return s, nil
}

func applyStarted(s State, ev Started, now time.Time) (State, []Effect) {
	if s.Phase != PhaseSetup {
		return s, nil
	}

	next := State{
		SessionID:         ev.SessionID,
		Settings:          ev.Settings,
		Timing:            ev.Timing.withDefaults(),
		Questions:         slices.Clone(ev.Questions),
		StartedAt:         now,
		QuestionStartedAt: now,
		TimerGen:          s.TimerGen,
		AdvanceGen:        s.AdvanceGen,
	}
	if len(next.Questions) == 0 {
		return complete(next, false, nil)
	}

	next.Phase = PhaseActive
	var effects []Effect
	if next.Timed() {
		next.Remaining = next.Settings.TimeLimit
		next, effects = armCountdown(next, effects)
	}
	return next, effects
}

func applyLetter(s State, ev LetterSubmitted, now time.Time) (State, []Effect) {
	if s.Phase != PhaseActive {
		return s, nil
	}
	q, ok := s.Current()
	if !ok {
		return s, nil
	}

	updated, verdict := grading.Submit(q, ev.Pos, ev.Letter)
	switch verdict {
	case grading.VerdictInvalid:
		return s, nil

	case grading.VerdictWrong:
		s = s.fork()
		s.Questions[s.Index] = updated
		if s.Flash == nil {
			s.Flash = make(map[int]rune)
			s.FlashGen = make(map[int]uint64)
		}
		s.flashSeq++
		s.Flash[ev.Pos] = ev.Letter
		s.FlashGen[ev.Pos] = s.flashSeq
		return s, []Effect{
			PlayCue{Cue: CueIncorrect},
			ScheduleTimer{
				Key:   FlashKey(ev.Pos),
				After: s.Timing.WrongFlashDelay,
				Event: WrongCleared{Pos: ev.Pos, Gen: s.flashSeq},
			},
		}

	case grading.VerdictAccepted:
		s = s.fork()
		s.Questions[s.Index] = updated
		if _, flashing := s.Flash[ev.Pos]; flashing {
			delete(s.Flash, ev.Pos)
			delete(s.FlashGen, ev.Pos)
			return s, []Effect{CancelTimer{Key: FlashKey(ev.Pos)}}
		}
		return s, nil

	case grading.VerdictSolved:
		s = s.fork()
		s.Questions[s.Index] = updated
		return resolve(s, now, s.Timing.FeedbackDelay)
	}
	return s, nil
}

func applyHint(s State, now time.Time) (State, []Effect) {
	if s.Phase != PhaseActive {
		return s, nil
	}
	q, ok := s.Current()
	if !ok {
		return s, nil
	}
	revealed, ok := hints.Reveal(q)
	if !ok {
		return s, nil
	}
	s = s.fork()
	s.Questions[s.Index] = revealed
	return resolve(s, now, s.Timing.HintDelay)
}

func applyTick(s State, ev Ticked, now time.Time) (State, []Effect) {
	if s.Phase != PhaseActive || !s.Timed() || ev.Gen != s.TimerGen {
		return s, nil
	}
	s = s.fork()
	s.Remaining -= s.Timing.Tick
	if s.Remaining > 0 {
		return s, []Effect{ScheduleTimer{
			Key:   KeyCountdown,
			After: s.Timing.Tick,
			Event: Ticked{Gen: s.TimerGen},
		}}
	}

	s.Remaining = 0
	q, _ := s.Current()
	s.Counters = mastery.Accumulate(s.Counters, mastery.Resolution{
		Question:    q,
		ElapsedMs:   elapsedMs(s.QuestionStartedAt, now),
		Interrupted: true,
	})
	// The expired countdown has nothing left to cancel.
	s.TimerGen++
	effects := clearFlashes(&s, nil)
	return complete(s, true, effects)
}

func applyExit(s State) (State, []Effect) {
	if s.Phase.Terminal() {
		return s, nil
	}
	s = s.fork()
	var effects []Effect
	if s.Timed() {
		effects = append(effects, CancelTimer{Key: KeyCountdown})
	}
	effects = append(effects, CancelTimer{Key: KeyAdvance})
	effects = clearFlashes(&s, effects)
	s.TimerGen++
	s.AdvanceGen++
	s.Phase = PhaseExited
	return s, append(effects, SessionExited{})
}

// resolve moves a just-resolved current question into Feedback.
func resolve(s State, now time.Time, delay time.Duration) (State, []Effect) {
	q := s.Questions[s.Index]
	res := mastery.Resolution{
		Question:  q,
		ElapsedMs: elapsedMs(s.QuestionStartedAt, now),
	}
	s.Counters = mastery.Accumulate(s.Counters, res)
	s.Last = &res

	var effects []Effect
	if s.Timed() {
		effects = append(effects, CancelTimer{Key: KeyCountdown})
		s.TimerGen++
	}
	effects = clearFlashes(&s, effects)

	s.Phase = PhaseFeedback
	s.AdvanceGen++
	effects = append(effects,
		QuestionResolved{Resolution: res},
		PlayCue{Cue: CueCorrect},
		ScheduleTimer{Key: KeyAdvance, After: delay, Event: AdvanceDue{Gen: s.AdvanceGen}},
	)
	return s, effects
}

// advance leaves Feedback for the next question or Complete.
func advance(s State, now time.Time, effects []Effect) (State, []Effect) {
	s.Index++
	s.Last = nil
	if s.Index >= len(s.Questions) {
		s.Index = len(s.Questions)
		return complete(s, false, effects)
	}
	s.Phase = PhaseActive
	s.QuestionStartedAt = now
	if s.Timed() {
		s, effects = armCountdown(s, effects)
	}
	return s, effects
}

func complete(s State, timedOut bool, effects []Effect) (State, []Effect) {
	sum := mastery.Summarize(s.Counters, len(s.Questions))
	s.Phase = PhaseComplete
	s.Summary = &sum
	s.TimedOut = timedOut
	return s, append(effects,
		PlayCue{Cue: CueComplete},
		SessionCompleted{Summary: sum, TimedOut: timedOut},
	)
}

func armCountdown(s State, effects []Effect) (State, []Effect) {
	s.TimerGen++
	return s, append(effects, ScheduleTimer{
		Key:   KeyCountdown,
		After: s.Timing.Tick,
		Event: Ticked{Gen: s.TimerGen},
	})
}

// clearFlashes cancels every pending flash timer in position order.
func clearFlashes(s *State, effects []Effect) []Effect {
	positions := make([]int, 0, len(s.FlashGen))
	for pos := range s.FlashGen {
		positions = append(positions, pos)
	}
	slices.Sort(positions)
	for _, pos := range positions {
		effects = append(effects, CancelTimer{Key: FlashKey(pos)})
	}
	s.Flash = nil
	s.FlashGen = nil
	return effects
}

func elapsedMs(from, to time.Time) int64 {
	if from.IsZero() || to.Before(from) {
		return 0
	}
	return to.Sub(from).Milliseconds()
}
