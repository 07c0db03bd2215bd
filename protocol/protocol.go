package protocol

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/hupe1980/wolfarena/core"
)

const (
	// fallbackMarker prefixes the thought of a fallback decision so the
	// failure stays visible in the player's private memory.
	fallbackMarker = "[unparseable response] "

	// fallbackSpeech is the stalling line spoken when a day statement could
	// not be decoded. It reads like hesitation rather than a stack trace.
	fallbackSpeech = "I need a moment to collect my thoughts..."

	// fallbackKeep bounds how many runes of the raw completion are preserved
	// in the fallback thought.
	fallbackKeep = 200
)

var (
	jsonFence = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	anyFence  = regexp.MustCompile("(?s)```\\s*(.*?)\\s*```")
)

// Parse turns a raw completion into a core.Decision. The boolean reports
// whether structured decoding succeeded; when it is false the returned
// decision is the fallback (truncated raw text as thought, a stalling
// speech, no action). Parse never fails: every input maps to a decision.
func Parse(raw string) (core.Decision, bool) {
	candidate := extract(raw)

	var w wireDecision
	if err := json.Unmarshal([]byte(candidate), &w); err != nil {
		return fallback(raw), false
	}

	return core.Decision{
		Thought: w.Thought,
		Speech:  w.Speech,
		Action:  decodeAction(w.Action),
	}, true
}

// wireDecision is the tolerant wire shape. Action stays raw so it can be a
// number, a string or an object.
type wireDecision struct {
	Thought string          `json:"thought"`
	Speech  string          `json:"speech"`
	Action  json.RawMessage `json:"action"`
}

// extract isolates the JSON candidate from a completion. Strategies are
// tried in fixed order and the first match wins; the raw text itself is the
// final strategy so extraction always terminates with a candidate.
func extract(raw string) string {
	if m := jsonFence.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	if m := anyFence.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			return raw[start : end+1]
		}
	}
	return strings.TrimSpace(raw)
}

// fallback builds the decision substituted for undecodable output.
func fallback(raw string) core.Decision {
	return core.Decision{
		Thought: fallbackMarker + truncate(raw, fallbackKeep),
		Speech:  fallbackSpeech,
	}
}

// decodeAction interprets the action payload. Absent or null actions yield
// nil; unrecognized shapes also yield nil rather than an error, the caller
// treats both as "no action".
func decodeAction(raw json.RawMessage) *core.Action {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	if target, ok := decodeTarget(raw); ok {
		return &core.Action{Type: core.ActionTarget, Target: target}
	}

	var obj struct {
		Type   string          `json:"type"`
		Target json.RawMessage `json:"target"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}

	action := &core.Action{Type: actionType(obj.Type)}
	if target, ok := decodeTarget(obj.Target); ok {
		action.Target = target
	}
	return action
}

// decodeTarget accepts a JSON number or a numeric string as a player id.
func decodeTarget(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n, true
		}
	}

	return 0, false
}

// actionType normalizes the declared action type. Only the witch verbs and
// idle are distinguished; kill, investigate, vote and anything unknown all
// collapse to plain target selection, the phase decides what a target means.
func actionType(t string) core.ActionType {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "save":
		return core.ActionSave
	case "poison":
		return core.ActionPoison
	case "idle":
		return core.ActionIdle
	default:
		return core.ActionTarget
	}
}

// truncate caps s at n runes without splitting a multi-byte character.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
