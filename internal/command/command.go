package command

// Action is the canonical command type raw input resolves to.
type Action int

const (
	ActionAdvance Action = iota
	ActionAnswer
	ActionChoose
	ActionTake
	ActionDrop
	ActionLook
	ActionConsume
	ActionActivate
	ActionUse
	ActionInventory
	ActionStatus
	ActionHelp
	ActionSave
	ActionLoad
	ActionMap
	ActionUnknown
)

var actionNames = map[Action]string{
	ActionAdvance:   "advance",
	ActionAnswer:    "answer",
	ActionChoose:    "choose",
	ActionTake:      "take",
	ActionDrop:      "drop",
	ActionLook:      "look",
	ActionConsume:   "consume",
	ActionActivate:  "activate",
	ActionUse:       "use",
	ActionInventory: "inventory",
	ActionStatus:    "status",
	ActionHelp:      "help",
	ActionSave:      "save",
	ActionLoad:      "load",
	ActionMap:       "map",
	ActionUnknown:   "unknown",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Command is the parsed form of one line of player input. Target is the
// argument text after the action token; for unknown commands it carries the
// unmatched token so callers can echo it back.
type Command struct {
	Action Action
	Target string
	Raw    string
}
