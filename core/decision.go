package core

// ActionKind names the kind of turn an actor is asked to take. It selects
// the instruction block of the situation text and how the decision's action
// payload is interpreted.
type ActionKind string

const (
	ActionKindNight  ActionKind = "night_action"
	ActionKindSpeech ActionKind = "speech"
	ActionKindVote   ActionKind = "vote"
)

// ActionType discriminates the structured action payload of a Decision.
// Plain target selections (kill, investigate, vote) use ActionTarget; the
// witch's night turn uses ActionSave, ActionPoison or ActionIdle.
type ActionType string

const (
	ActionTarget ActionType = "target"
	ActionSave   ActionType = "save"
	ActionPoison ActionType = "poison"
	ActionIdle   ActionType = "idle"
)

// Action is the optional structured part of a Decision. Target is a player
// id; zero means the agent named no usable target.
type Action struct {
	Type   ActionType `json:"type"`
	Target int        `json:"target,omitempty"`
}

// Decision is the structured result of one agent turn. Thought is private
// reasoning that the actor appends to its player's memory. Speech is the
// public statement, meaningful during the day speech phase. Action carries
// the structured choice and is absent when the agent declined to act or its
// output could not be decoded.
type Decision struct {
	Thought string  `json:"thought"`
	Speech  string  `json:"speech,omitempty"`
	Action  *Action `json:"action,omitempty"`
}

// Target returns the decision's action target and true when a usable target
// is present.
func (d Decision) Target() (int, bool) {
	if d.Action == nil || d.Action.Target <= 0 {
		return 0, false
	}
	return d.Action.Target, true
}
