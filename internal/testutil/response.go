package testutil

import (
	"encoding/json"
	"fmt"

	"github.com/hupe1980/wolfarena/core"
)

// Response encodes a decision the way a well-behaved agent would reply.
func Response(d core.Decision) string {
	b, err := json.Marshal(d)
	if err != nil {
		panic(fmt.Sprintf("testutil: marshal decision: %v", err))
	}
	return string(b)
}

// KillResponse is a wolf night reply targeting the given player.
func KillResponse(target int) string {
	return Response(core.Decision{
		Thought: fmt.Sprintf("strike player %d", target),
		Action:  &core.Action{Type: core.ActionTarget, Target: target},
	})
}

// InvestigateResponse is a seer night reply targeting the given player.
func InvestigateResponse(target int) string {
	return Response(core.Decision{
		Thought: fmt.Sprintf("check player %d", target),
		Action:  &core.Action{Type: core.ActionTarget, Target: target},
	})
}

// SaveResponse is a witch night reply spending the antidote on target.
func SaveResponse(target int) string {
	return Response(core.Decision{
		Thought: fmt.Sprintf("save player %d", target),
		Action:  &core.Action{Type: core.ActionSave, Target: target},
	})
}

// PoisonResponse is a witch night reply spending the poison on target.
func PoisonResponse(target int) string {
	return Response(core.Decision{
		Thought: fmt.Sprintf("poison player %d", target),
		Action:  &core.Action{Type: core.ActionPoison, Target: target},
	})
}

// IdleResponse is a witch night reply doing nothing.
func IdleResponse() string {
	return Response(core.Decision{
		Thought: "hold both potions",
		Action:  &core.Action{Type: core.ActionIdle},
	})
}

// SpeechResponse is a day statement reply.
func SpeechResponse(text string) string {
	return Response(core.Decision{Thought: "say my piece", Speech: text})
}

// VoteResponse is a day vote reply targeting the given player.
func VoteResponse(target int) string {
	return Response(core.Decision{
		Thought: fmt.Sprintf("vote player %d", target),
		Action:  &core.Action{Type: core.ActionTarget, Target: target},
	})
}
