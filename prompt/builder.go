package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hupe1980/wolfarena/core"
	"github.com/hupe1980/wolfarena/internal/util"
)

const (
	// DefaultEventWindow is how many of the newest public events a
	// situation shows. The journal itself is never truncated.
	DefaultEventWindow = 10

	// DefaultThoughtWindow is how many of the player's newest private
	// thoughts a situation shows.
	DefaultThoughtWindow = 3
)

// DefaultSystemContext is the system message sent with every turn unless an
// Options override replaces it.
const DefaultSystemContext = `You are an AI player in a game of Werewolf, a social deduction game. You must:
1. Decide according to your role and its victory condition
2. Conceal or reveal information deliberately when you speak
3. Reason about the other players' identities from the public record
4. Reply strictly in the requested JSON format

Important: your "thought" is a private inner monologue no other player can
see. Your "speech" is public and heard by everyone at the table.`

// Section markers, also used by scripted gateways and tests to recognize
// what a situation is asking for.
const (
	MarkerSpeech     = "## Your Turn to Speak"
	MarkerVote       = "## Time to Vote"
	MarkerNightWolf  = "## Night Action: Werewolf Kill"
	MarkerNightSeer  = "## Night Action: Seer Investigation"
	MarkerNightWitch = "## Night Action: Witch Potions"
	MarkerEligible   = "Eligible targets:"
)

const fence = "```"

// Options configures a Builder.
type Options struct {
	// SystemContext is the system message for every turn. Static text may
	// use template variables: {{.PlayerID}}, {{.Role}}, {{.Round}},
	// {{.PlayerCount}} and {{.AliveCount}}.
	SystemContext Instruction

	// EventWindow bounds how many recent public events a situation shows.
	EventWindow int

	// ThoughtWindow bounds how many recent private thoughts a situation
	// shows.
	ThoughtWindow int
}

// Builder renders gateway request segments for agent turns. The zero-config
// builder produced by NewBuilder matches the reference six-player game.
type Builder struct {
	opts Options
}

// Compile-time check that Builder satisfies core.SituationBuilder.
var _ core.SituationBuilder = (*Builder)(nil)

// NewBuilder creates a Builder with default options, customized by optFns.
func NewBuilder(optFns ...func(o *Options)) *Builder {
	opts := Options{
		SystemContext: NewInstructionFromText(DefaultSystemContext),
		EventWindow:   DefaultEventWindow,
		ThoughtWindow: DefaultThoughtWindow,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Builder{opts: opts}
}

// Build renders the system context and the situation text for one turn of
// the given player.
func (b *Builder) Build(p *core.Player, st *core.GameState, kind core.ActionKind) (string, string, error) {
	sys, err := b.systemContext(p, st)
	if err != nil {
		return "", "", fmt.Errorf("resolve system context: %w", err)
	}

	sections := []string{
		rulesSection,
		roleSection(p),
		personalitySection(p),
		b.contextSection(p, st),
		b.thoughtSection(p),
		actionSection(p, st, kind),
		outputSection(kind),
	}

	nonEmpty := make([]string, 0, len(sections))
	for _, s := range sections {
		if strings.TrimSpace(s) != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	return sys, strings.Join(nonEmpty, "\n\n"), nil
}

func (b *Builder) systemContext(p *core.Player, st *core.GameState) (string, error) {
	text, err := b.opts.SystemContext.Resolve(p, st)
	if err != nil {
		return "", err
	}
	return util.RenderTemplate(text, map[string]any{
		"PlayerID":    p.ID,
		"Role":        p.Role.Label(),
		"Round":       st.Round,
		"PlayerCount": len(st.Players),
		"AliveCount":  len(st.AliveIDs()),
	})
}

const rulesSection = `# Werewolf: Game Rules

## Objective
- Good camp (villagers, seer, witch): find and banish every werewolf
- Wolf camp: survive until the wolves equal or outnumber the good players

## Roles
- Werewolf: kills one player each night, knows its packmates
- Seer: investigates one player each night, learning good or wolf
- Witch: holds one antidote (saves tonight's victim) and one poison (kills), each usable once
- Villager: no special power, wins through debate and votes

## Flow
1. Night: wolves strike, then the seer investigates, then the witch acts
2. Day: deaths are announced, everyone speaks in seat order, then the table votes to banish one player`

func roleSection(p *core.Player) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## Your Identity\n")
	fmt.Fprintf(&sb, "- You are **Player %d**\n", p.ID)
	fmt.Fprintf(&sb, "- Your role is **%s**\n", p.Role.Label())
	fmt.Fprintf(&sb, "- Your camp is **%s**", campLabel(p.Role.Side()))

	if p.Role == core.RoleWolf && len(p.Teammates) > 0 {
		fmt.Fprintf(&sb, "\n- Your packmates are: %s", playerList(p.Teammates))
	}

	if p.Role == core.RoleSeer && len(p.Investigated) > 0 {
		sb.WriteString("\n- Your investigation record:")
		ids := make([]int, 0, len(p.Investigated))
		for id := range p.Investigated {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			fmt.Fprintf(&sb, "\n  - Player %d is **%s**", id, verdictLabel(p.Investigated[id]))
		}
	}

	if p.Role == core.RoleWitch {
		fmt.Fprintf(&sb, "\n- Antidote: %s", potionLabel(p.HasAntidote))
		fmt.Fprintf(&sb, "\n- Poison: %s", potionLabel(p.HasPoison))
	}

	return sb.String()
}

func personalitySection(p *core.Player) string {
	if p.Personality.Style == "" {
		return ""
	}
	return fmt.Sprintf("## Your Personality\n%s\nEvery statement and decision should stay in character.",
		strings.TrimSpace(p.Personality.Style))
}

func (b *Builder) contextSection(p *core.Player, st *core.GameState) string {
	aliveIDs := st.AliveIDs()
	var deadIDs []int
	for _, pl := range st.Players {
		if !pl.Alive {
			deadIDs = append(deadIDs, pl.ID)
		}
	}

	var sb strings.Builder
	sb.WriteString("## Current Situation\n")
	fmt.Fprintf(&sb, "- Round **%d**\n", st.Round)
	fmt.Fprintf(&sb, "- Phase: **%s**\n", phaseLabel(st.Phase))
	fmt.Fprintf(&sb, "- Living players: %s (%d alive)", playerList(aliveIDs), len(aliveIDs))
	if len(deadIDs) > 0 {
		fmt.Fprintf(&sb, "\n- Dead players: %s", playerList(deadIDs))
	}

	// Only the witch learns the pending strike, and only while choosing.
	if p.Role == core.RoleWitch && st.Phase == core.PhaseNight {
		if st.KillTarget != nil {
			fmt.Fprintf(&sb, "\n- Witch intel: the wolves struck **Player %d** tonight", *st.KillTarget)
		} else {
			sb.WriteString("\n- Witch intel: nobody was attacked tonight")
		}
	}

	if st.Log != nil && st.Log.Len() > 0 {
		sb.WriteString("\n\n### Recent public record")
		for _, ev := range st.Log.Recent(b.opts.EventWindow) {
			fmt.Fprintf(&sb, "\n- [%s] %s", ev.Phase, formatEvent(ev))
		}
	}

	return sb.String()
}

func (b *Builder) thoughtSection(p *core.Player) string {
	if p.Memory == nil || p.Memory.Len() == 0 {
		return ""
	}
	recent := p.Memory.Recent(b.opts.ThoughtWindow)
	total := p.Memory.Len()

	var sb strings.Builder
	sb.WriteString("## Your Private Reflections (visible only to you)")
	for i, thought := range recent {
		fmt.Fprintf(&sb, "\nThought %d: %s", total-len(recent)+i+1, thought)
	}
	return sb.String()
}

func actionSection(p *core.Player, st *core.GameState, kind core.ActionKind) string {
	switch kind {
	case core.ActionKindSpeech:
		return MarkerSpeech + `
Make your statement to the table. You may:
- analyze the state of play and name suspects
- defend yourself or accuse others
- conceal or reveal information as your role strategy demands

Keep it to two to four natural, conversational sentences.`

	case core.ActionKindVote:
		return fmt.Sprintf(`%s
Choose one player to banish.
%s %s

Choose carefully. One vote can decide the game.`,
			MarkerVote, MarkerEligible, playerList(othersAlive(p, st)))

	case core.ActionKindNight:
		return nightSection(p, st)
	}
	return ""
}

func nightSection(p *core.Player, st *core.GameState) string {
	others := othersAlive(p, st)

	switch p.Role {
	case core.RoleWolf:
		return fmt.Sprintf(`%s
You and your packmates choose one player to attack.
%s %s

Pick whichever target serves the pack best.`,
			MarkerNightWolf, MarkerEligible, playerList(others))

	case core.RoleSeer:
		var fresh []int
		for _, id := range others {
			if !p.Knows(id) {
				fresh = append(fresh, id)
			}
		}
		targets := playerList(fresh)
		if len(fresh) == 0 {
			targets = "none, you have already checked every living player"
		}
		return fmt.Sprintf(`%s
You may learn whether one player is good or a wolf.
%s %s

Pick the player whose identity matters most right now.`,
			MarkerNightSeer, MarkerEligible, targets)

	case core.RoleWitch:
		var sb strings.Builder
		sb.WriteString(MarkerNightWitch + "\n")
		switch {
		case p.HasAntidote && st.KillTarget != nil:
			fmt.Fprintf(&sb, "- You may use your **antidote** to save Player %d\n", *st.KillTarget)
		case !p.HasAntidote:
			sb.WriteString("- Your antidote is already spent\n")
		default:
			sb.WriteString("- Nobody was attacked tonight, so the antidote has no use\n")
		}
		if p.HasPoison {
			fmt.Fprintf(&sb, "- You may use your **poison** on one player: %s\n", playerList(others))
		} else {
			sb.WriteString("- Your poison is already spent\n")
		}
		sb.WriteString("\nYou may save, poison, or do nothing tonight. One action only.")
		return sb.String()
	}

	// Villagers have no night power; the engine never asks, but a custom
	// composition might.
	return "## Night\nYou have no special ability. Wait for dawn."
}

func outputSection(kind core.ActionKind) string {
	var sb strings.Builder
	sb.WriteString("## Required Output Format\n")
	sb.WriteString("Reply with exactly the following JSON and nothing else:\n\n")
	sb.WriteString(fence + "json\n")

	switch kind {
	case core.ActionKindSpeech:
		sb.WriteString(`{
    "thought": "your private reasoning, as detailed as you like (no other player sees this)",
    "speech": "your public statement, two to four sentences"
}`)
		sb.WriteString("\n" + fence)

	case core.ActionKindVote:
		sb.WriteString(`{
    "thought": "your private reasoning (no other player sees this)",
    "speech": "an optional short remark as you vote",
    "action": {
        "type": "vote",
        "target": <player number>,
        "reason": "why this player"
    }
}`)
		sb.WriteString("\n" + fence)

	case core.ActionKindNight:
		sb.WriteString(`{
    "thought": "your private reasoning (no other player sees this)",
    "action": {
        "type": "<action type>",
        "target": <player number>,
        "reason": "why this target"
    }
}`)
		sb.WriteString("\n" + fence)
		sb.WriteString(`

Action types by role:
- Werewolf: {"type": "kill", "target": <number>, "reason": "..."}
- Seer: {"type": "investigate", "target": <number>, "reason": "..."}
- Witch: {"type": "save", "target": <number>} or {"type": "poison", "target": <number>} or {"type": "idle"}`)
	}

	return sb.String()
}

// othersAlive lists the living players other than p, ascending by id.
func othersAlive(p *core.Player, st *core.GameState) []int {
	var ids []int
	for _, id := range st.AliveIDs() {
		if id != p.ID {
			ids = append(ids, id)
		}
	}
	return ids
}

func playerList(ids []int) string {
	if len(ids) == 0 {
		return "none"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("Player %d", id)
	}
	return strings.Join(parts, ", ")
}

func campLabel(s core.Side) string {
	if s == core.SideWolf {
		return "Wolf camp"
	}
	return "Good camp"
}

func verdictLabel(v core.Verdict) string {
	if v == core.VerdictEvil {
		return "a werewolf"
	}
	return "good"
}

func potionLabel(available bool) string {
	if available {
		return "available"
	}
	return "already used"
}

func phaseLabel(ph core.Phase) string {
	switch ph {
	case core.PhaseNight:
		return "Night"
	case core.PhaseDaySpeech:
		return "Day, statements"
	case core.PhaseDayVote:
		return "Day, voting"
	default:
		return string(ph)
	}
}

func formatEvent(ev core.PublicEvent) string {
	if ev.Kind == core.EventSpeech {
		return fmt.Sprintf("Player %d said: %q", ev.PlayerID, ev.Content)
	}
	return ev.Content
}
