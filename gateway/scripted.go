package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/wolfarena/core"
	"github.com/hupe1980/wolfarena/prompt"
)

// ScriptedOptions configures a Scripted gateway.
type ScriptedOptions struct {
	// Rand drives every random choice. Defaults to a time-seeded source;
	// inject a seeded one for reproducible games.
	Rand *rand.Rand
}

// Scripted is an offline core.Gateway that recognizes what a situation asks
// for from its section markers and answers with plausible canned decisions.
// It picks only targets the situation itself offered, so a scripted game
// always progresses and terminates. Useful for demos, smoke tests and
// development without provider credentials.
type Scripted struct {
	mu sync.Mutex
	r  *rand.Rand
}

// Compile-time check that Scripted satisfies core.Gateway.
var _ core.Gateway = (*Scripted)(nil)

// NewScripted creates a scripted gateway, customized by optFns.
func NewScripted(optFns ...func(o *ScriptedOptions)) *Scripted {
	opts := ScriptedOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Scripted{r: opts.Rand}
}

// Name identifies the gateway in logs.
func (s *Scripted) Name() string { return "scripted" }

// Respond inspects the situation markers and fabricates a decision.
func (s *Scripted) Respond(ctx context.Context, req core.GatewayRequest) (core.GatewayResponse, error) {
	if err := ctx.Err(); err != nil {
		return core.GatewayResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	situation := req.Situation
	switch {
	case strings.Contains(situation, prompt.MarkerNightWolf):
		return s.wolfReply(situation), nil
	case strings.Contains(situation, prompt.MarkerNightSeer):
		return s.seerReply(situation), nil
	case strings.Contains(situation, prompt.MarkerNightWitch):
		return s.witchReply(situation), nil
	case strings.Contains(situation, prompt.MarkerVote):
		return s.voteReply(situation), nil
	case strings.Contains(situation, prompt.MarkerSpeech):
		return s.speechReply(), nil
	}
	return reply(core.Decision{
		Thought: "let me think...",
		Speech:  "I need more information before I can judge.",
	}), nil
}

func (s *Scripted) wolfReply(situation string) core.GatewayResponse {
	target, ok := s.pickEligible(situation)
	if !ok {
		return reply(core.Decision{Thought: "no target tonight", Action: &core.Action{Type: core.ActionIdle}})
	}
	return reply(core.Decision{
		Thought: fmt.Sprintf("player %d feels dangerous to the pack, strike there", target),
		Action:  &core.Action{Type: core.ActionTarget, Target: target},
	})
}

func (s *Scripted) seerReply(situation string) core.GatewayResponse {
	target, ok := s.pickEligible(situation)
	if !ok {
		return reply(core.Decision{Thought: "everyone is already checked", Action: &core.Action{Type: core.ActionIdle}})
	}
	return reply(core.Decision{
		Thought: fmt.Sprintf("check player %d tonight", target),
		Action:  &core.Action{Type: core.ActionTarget, Target: target},
	})
}

var savePattern = regexp.MustCompile(`to save Player (\d+)`)

func (s *Scripted) witchReply(situation string) core.GatewayResponse {
	// Roughly half the time the witch holds both potions; otherwise she
	// prefers the antidote when it is on offer.
	roll := s.r.Float64()

	if m := savePattern.FindStringSubmatch(situation); m != nil && roll < 0.5 {
		target, _ := strconv.Atoi(m[1])
		return reply(core.Decision{
			Thought: fmt.Sprintf("player %d is worth saving", target),
			Action:  &core.Action{Type: core.ActionSave, Target: target},
		})
	}
	if poisonTargets := s.lineTargets(situation, "use your **poison**"); len(poisonTargets) > 0 && roll >= 0.8 {
		target := poisonTargets[s.r.Intn(len(poisonTargets))]
		return reply(core.Decision{
			Thought: fmt.Sprintf("player %d has to go", target),
			Action:  &core.Action{Type: core.ActionPoison, Target: target},
		})
	}
	return reply(core.Decision{Thought: "hold the potions for now", Action: &core.Action{Type: core.ActionIdle}})
}

func (s *Scripted) voteReply(situation string) core.GatewayResponse {
	target, ok := s.pickEligible(situation)
	if !ok {
		return reply(core.Decision{Thought: "nobody to vote for"})
	}
	return reply(core.Decision{
		Thought: fmt.Sprintf("player %d is the most suspicious", target),
		Speech:  fmt.Sprintf("My vote goes to Player %d.", target),
		Action:  &core.Action{Type: core.ActionTarget, Target: target},
	})
}

var cannedSpeeches = []core.Decision{
	{Thought: "keep a low profile", Speech: "I am just an ordinary villager and I learned nothing last night. Everyone should speak up so we can compare stories."},
	{Thought: "steer the vote", Speech: "Some of you are dodging the question. I suggest we look hard at the quiet ones."},
	{Thought: "play the victim", Speech: "I have a feeling the wolves considered me last night. They are hiding right here among us."},
	{Thought: "follow the crowd", Speech: "I agree with the last analysis. We should vote for whoever looks most suspicious."},
	{Thought: "take a stance", Speech: "Let us stay rational and not pile onto anyone without a reason. Tell the table what you saw."},
}

func (s *Scripted) speechReply() core.GatewayResponse {
	return reply(cannedSpeeches[s.r.Intn(len(cannedSpeeches))])
}

// pickEligible draws a random id from the situation's eligible-target line.
func (s *Scripted) pickEligible(situation string) (int, bool) {
	targets := s.lineTargets(situation, prompt.MarkerEligible)
	if len(targets) == 0 {
		return 0, false
	}
	return targets[s.r.Intn(len(targets))], true
}

var numberPattern = regexp.MustCompile(`\d+`)

// lineTargets extracts every number from the line containing marker.
func (s *Scripted) lineTargets(situation, marker string) []int {
	idx := strings.Index(situation, marker)
	if idx < 0 {
		return nil
	}
	line := situation[idx:]
	if nl := strings.IndexByte(line, '\n'); nl >= 0 {
		line = line[:nl]
	}
	var targets []int
	for _, raw := range numberPattern.FindAllString(line, -1) {
		if n, err := strconv.Atoi(raw); err == nil {
			targets = append(targets, n)
		}
	}
	return targets
}

// reply encodes a decision the way a cooperative model would: fenced JSON.
func reply(d core.Decision) core.GatewayResponse {
	b, err := json.Marshal(d)
	if err != nil {
		// core.Decision always marshals; this guards future field changes.
		return core.GatewayResponse{Text: core.PlaceholderResponse}
	}
	return core.GatewayResponse{Text: "```json\n" + string(b) + "\n```"}
}
