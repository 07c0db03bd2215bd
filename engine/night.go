package engine

import (
	"context"
	"fmt"

	"github.com/hupe1980/wolfarena/core"
)

// runNight executes the fixed night sub-phases in order: wolf kill, seer
// investigation, witch potions, then resolution. Each sub-phase runs at
// most once and deaths apply only during resolution, so the kill target is
// still treated as alive while the seer and the witch decide.
func (e *Engine) runNight(ctx context.Context) error {
	e.state.Phase = core.PhaseNight
	e.logger.Info("night begins", "round", e.state.Round, "alive", len(e.state.AliveIDs()))
	e.publish(core.Notice{
		Kind:    core.NoticePhaseChange,
		Round:   e.state.Round,
		Phase:   core.PhaseNight,
		Message: fmt.Sprintf("Night %d falls over the village.", e.state.Round),
	})

	if err := e.wolfKill(ctx); err != nil {
		return err
	}
	if err := e.seerInvestigate(ctx); err != nil {
		return err
	}
	saved, poisoned, err := e.witchAct(ctx)
	if err != nil {
		return err
	}

	e.resolveNight(saved, poisoned)
	return nil
}

// wolfKill lets the pack pick tonight's victim. The lowest-id living wolf
// decides for the pack; a target that does not name a living player leaves
// the night without a kill.
func (e *Engine) wolfKill(ctx context.Context) error {
	wolves := e.state.AliveWithRole(core.RoleWolf)
	if len(wolves) == 0 {
		return nil
	}
	deciding := wolves[0]

	e.publish(core.Notice{
		Kind:    core.NoticeAction,
		Round:   e.state.Round,
		Phase:   core.PhaseNight,
		Message: "The werewolves are choosing their prey.",
	})

	d, err := e.actorFor(deciding.ID).Act(ctx, e.state, core.ActionKindNight)
	if err != nil {
		return err
	}

	target, ok := d.Target()
	if !ok {
		e.logger.Debug("wolves named no usable target", "wolf", deciding.ID)
		return nil
	}
	victim := e.state.PlayerByID(target)
	if victim == nil || !victim.Alive {
		e.logger.Debug("wolf kill target invalid, skipping", "wolf", deciding.ID, "target", target)
		return nil
	}

	e.state.SetKillTarget(victim.ID)
	e.logger.Debug("wolf kill target set", "wolf", deciding.ID, "target", victim.ID)
	return nil
}

// seerInvestigate runs the seer's nightly check. A verdict is recorded
// only for a living player the seer has not investigated before; recorded
// verdicts are permanent.
func (e *Engine) seerInvestigate(ctx context.Context) error {
	seers := e.state.AliveWithRole(core.RoleSeer)
	if len(seers) == 0 {
		return nil
	}
	seer := seers[0]

	e.publish(core.Notice{
		Kind:    core.NoticeAction,
		Round:   e.state.Round,
		Phase:   core.PhaseNight,
		Message: "The seer peers into someone's soul.",
	})

	d, err := e.actorFor(seer.ID).Act(ctx, e.state, core.ActionKindNight)
	if err != nil {
		return err
	}

	target, ok := d.Target()
	if !ok {
		e.logger.Debug("seer named no usable target", "seer", seer.ID)
		return nil
	}
	subject := e.state.PlayerByID(target)
	if subject == nil || !subject.Alive || seer.Knows(subject.ID) {
		e.logger.Debug("seer investigation target invalid, skipping", "seer", seer.ID, "target", target)
		return nil
	}

	verdict := core.VerdictFor(subject.Role)
	seer.RecordVerdict(subject.ID, verdict)
	e.logger.Debug("seer verdict recorded", "seer", seer.ID, "target", subject.ID, "verdict", string(verdict))
	return nil
}

// witchAct runs the witch's turn and reports the saved and poisoned ids
// (0 for none). At most one potion is used per night. A potion already
// spent, a missing target or a dead target makes the action ineffective
// without consuming anything.
func (e *Engine) witchAct(ctx context.Context) (saved, poisoned int, err error) {
	witches := e.state.AliveWithRole(core.RoleWitch)
	if len(witches) == 0 {
		return 0, 0, nil
	}
	witch := witches[0]

	e.publish(core.Notice{
		Kind:    core.NoticeAction,
		Round:   e.state.Round,
		Phase:   core.PhaseNight,
		Message: "The witch weighs her potions.",
	})

	d, err := e.actorFor(witch.ID).Act(ctx, e.state, core.ActionKindNight)
	if err != nil {
		return 0, 0, err
	}
	if d.Action == nil {
		return 0, 0, nil
	}

	switch d.Action.Type {
	case core.ActionSave:
		target := e.state.PlayerByID(d.Action.Target)
		if !witch.HasAntidote || target == nil || !target.Alive {
			e.logger.Debug("witch save has no effect", "witch", witch.ID, "target", d.Action.Target)
			return 0, 0, nil
		}
		witch.UseAntidote()
		e.logger.Debug("witch used antidote", "witch", witch.ID, "target", target.ID)
		return target.ID, 0, nil

	case core.ActionPoison:
		target := e.state.PlayerByID(d.Action.Target)
		if !witch.HasPoison || target == nil || !target.Alive {
			e.logger.Debug("witch poison has no effect", "witch", witch.ID, "target", d.Action.Target)
			return 0, 0, nil
		}
		witch.UsePoison()
		e.logger.Debug("witch used poison", "witch", witch.ID, "target", target.ID)
		return 0, target.ID, nil

	default:
		e.logger.Debug("witch held her potions", "witch", witch.ID)
		return 0, 0, nil
	}
}

// nightDeath pairs a victim with the mechanic that killed them.
type nightDeath struct {
	id    int
	cause core.DeathCause
}

// resolveNight turns the night's private actions into the public death
// set. The antidote counteracts only the wolf kill: a poisoned player dies
// even when the witch saved the same id. The transient kill target is
// cleared afterwards.
func (e *Engine) resolveNight(saved, poisoned int) {
	var deaths []nightDeath
	if kt := e.state.KillTarget; kt != nil && *kt != saved {
		deaths = append(deaths, nightDeath{id: *kt, cause: core.CauseWolfKill})
	}
	if poisoned > 0 && (len(deaths) == 0 || deaths[0].id != poisoned) {
		deaths = append(deaths, nightDeath{id: poisoned, cause: core.CausePoison})
	}

	if len(deaths) == 0 {
		e.logger.Info("peaceful night, nobody died", "round", e.state.Round)
		e.publish(core.Notice{
			Kind:    core.NoticeAction,
			Round:   e.state.Round,
			Phase:   core.PhaseNight,
			Message: "Dawn breaks. Nobody died last night.",
		})
	}

	for _, death := range deaths {
		p := e.state.PlayerByID(death.id)
		if p == nil || !p.Alive {
			continue
		}
		p.Kill()

		ev := core.NewDeathEvent(e.state.Round, core.PhaseNight, p.ID, death.cause)
		e.state.Log.Append(ev)
		e.logger.Info("night death", "player", p.ID, "cause", string(death.cause))
		e.publish(core.Notice{
			Kind:    core.NoticeDeath,
			Round:   e.state.Round,
			Phase:   core.PhaseNight,
			Message: ev.Content,
			Event:   &ev,
		})
	}

	e.state.ClearKillTarget()
}
