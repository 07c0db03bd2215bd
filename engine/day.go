package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hupe1980/wolfarena/core"
)

// noStatement is logged in place of an empty or missing day speech so the
// record still shows one entry per living player.
const noStatement = "(no statement)"

// runDay executes the speech round followed by the vote. Nobody dies
// during speeches, so the win condition is re-checked only after the vote
// resolves.
func (e *Engine) runDay(ctx context.Context) error {
	if err := e.speechPhase(ctx); err != nil {
		return err
	}
	return e.votePhase(ctx)
}

// speechPhase gives every living player exactly one statement, in
// ascending id order. Later speakers see earlier statements through the
// public log.
func (e *Engine) speechPhase(ctx context.Context) error {
	e.state.Phase = core.PhaseDaySpeech
	e.logger.Info("day speech begins", "round", e.state.Round, "alive", len(e.state.AliveIDs()))
	e.publish(core.Notice{
		Kind:    core.NoticePhaseChange,
		Round:   e.state.Round,
		Phase:   core.PhaseDaySpeech,
		Message: fmt.Sprintf("Day %d: the table opens for statements.", e.state.Round),
	})

	for _, p := range e.state.Alive() {
		d, err := e.actorFor(p.ID).Act(ctx, e.state, core.ActionKindSpeech)
		if err != nil {
			return err
		}

		text := strings.TrimSpace(d.Speech)
		if text == "" {
			text = noStatement
		}

		ev := core.NewSpeechEvent(e.state.Round, p.ID, text)
		e.state.Log.Append(ev)
		e.logger.Debug("speech recorded", "player", p.ID, "chars", len(text))
		e.publish(core.Notice{
			Kind:    core.NoticeSpeech,
			Round:   e.state.Round,
			Phase:   core.PhaseDaySpeech,
			Message: fmt.Sprintf("Player %d: %s", p.ID, text),
			Event:   &ev,
		})
	}

	return nil
}

// votePhase collects one vote per living player in ascending id order and
// resolves the elimination. A vote counts only when it names a different
// living player; counted votes are logged the moment they are cast. A
// unique highest tally eliminates its target; a tie or an empty tally
// eliminates nobody.
func (e *Engine) votePhase(ctx context.Context) error {
	e.state.Phase = core.PhaseDayVote
	e.logger.Info("day vote begins", "round", e.state.Round)
	e.publish(core.Notice{
		Kind:    core.NoticePhaseChange,
		Round:   e.state.Round,
		Phase:   core.PhaseDayVote,
		Message: fmt.Sprintf("Day %d: the vote begins.", e.state.Round),
	})

	tally := make(map[int]int)
	for _, voter := range e.state.Alive() {
		d, err := e.actorFor(voter.ID).Act(ctx, e.state, core.ActionKindVote)
		if err != nil {
			return err
		}

		target, ok := d.Target()
		if !ok {
			e.logger.Debug("vote skipped, no usable target", "voter", voter.ID)
			continue
		}
		candidate := e.state.PlayerByID(target)
		if candidate == nil || !candidate.Alive || candidate.ID == voter.ID {
			e.logger.Debug("vote discarded", "voter", voter.ID, "target", target)
			continue
		}

		tally[candidate.ID]++
		ev := core.NewVoteEvent(e.state.Round, voter.ID, candidate.ID)
		e.state.Log.Append(ev)
		e.logger.Debug("vote counted", "voter", voter.ID, "target", candidate.ID)
		e.publish(core.Notice{
			Kind:    core.NoticeVote,
			Round:   e.state.Round,
			Phase:   core.PhaseDayVote,
			Message: ev.Content,
			Event:   &ev,
		})
	}

	e.resolveVote(tally)
	return nil
}

// resolveVote applies the tally: a single leader is voted out, a tie or an
// empty tally leaves the table untouched. The elimination notice reveals
// the role to spectators; the public log does not.
func (e *Engine) resolveVote(tally map[int]int) {
	leaders := voteLeaders(tally)

	switch {
	case len(leaders) == 0:
		e.logger.Info("no valid votes were cast", "round", e.state.Round)
		e.publish(core.Notice{
			Kind:    core.NoticeVoteResult,
			Round:   e.state.Round,
			Phase:   core.PhaseDayVote,
			Message: "No valid votes were cast. Nobody is eliminated.",
		})

	case len(leaders) > 1:
		e.logger.Info("vote tied, nobody eliminated", "round", e.state.Round, "leaders", leaders)
		e.publish(core.Notice{
			Kind:    core.NoticeVoteResult,
			Round:   e.state.Round,
			Phase:   core.PhaseDayVote,
			Message: fmt.Sprintf("The vote is tied between %s. Nobody is eliminated.", playerClause(leaders)),
		})

	default:
		id := leaders[0]
		p := e.state.PlayerByID(id)
		p.Kill()

		e.publish(core.Notice{
			Kind:    core.NoticeVoteResult,
			Round:   e.state.Round,
			Phase:   core.PhaseDayVote,
			Message: fmt.Sprintf("Player %d is voted out with %d vote(s).", id, tally[id]),
		})

		ev := core.NewDeathEvent(e.state.Round, core.PhaseDayVote, id, core.CauseVote)
		e.state.Log.Append(ev)
		e.logger.Info("player voted out", "player", id, "votes", tally[id], "role", string(p.Role))
		e.publish(core.Notice{
			Kind:    core.NoticeEliminated,
			Round:   e.state.Round,
			Phase:   core.PhaseDayVote,
			Message: fmt.Sprintf("Player %d was the %s.", id, p.Role.Label()),
			Event:   &ev,
		})
	}
}

// voteLeaders returns the ids holding the highest vote count, in ascending
// order. An empty tally yields nil.
func voteLeaders(tally map[int]int) []int {
	max := 0
	for _, n := range tally {
		if n > max {
			max = n
		}
	}
	if max == 0 {
		return nil
	}

	var leaders []int
	for id, n := range tally {
		if n == max {
			leaders = append(leaders, id)
		}
	}
	sort.Ints(leaders)
	return leaders
}

func playerClause(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("Player %d", id)
	}
	return strings.Join(parts, ", ")
}
