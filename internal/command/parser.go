package command

import "strings"

// Parser resolves raw input lines to canonical commands through an alias
// table. It holds no game state and has no side effects.
type Parser struct {
	aliases map[string]Action
}

func NewParser() *Parser {
	p := &Parser{aliases: map[string]Action{}}

	p.alias(ActionAdvance, "advance", "next", "continue", "go", "seguir", "avanzar")
	p.alias(ActionAnswer, "answer", "respond", "ans", "responder", "contestar")
	p.alias(ActionChoose, "choose", "choice", "pick", "elegir", "a", "b", "c")
	p.alias(ActionTake, "take", "get", "grab", "pickup", "coger", "tomar")
	p.alias(ActionDrop, "drop", "discard", "dejar", "soltar")
	p.alias(ActionLook, "look", "l", "examine", "observe", "mirar", "ver")
	p.alias(ActionConsume, "consume", "eat", "drink", "comer", "beber")
	p.alias(ActionActivate, "activate", "arm", "light", "activar", "encender")
	p.alias(ActionUse, "use", "u", "usar")
	p.alias(ActionInventory, "inventory", "inv", "i", "pack", "inventario")
	p.alias(ActionStatus, "status", "stats", "st", "estado")
	p.alias(ActionHelp, "help", "h", "?", "commands", "ayuda")
	p.alias(ActionSave, "save", "guardar")
	p.alias(ActionLoad, "load", "restore", "cargar")
	p.alias(ActionMap, "map", "m", "mapa")

	return p
}

func (p *Parser) alias(a Action, names ...string) {
	for _, name := range names {
		p.aliases[name] = a
	}
}

// Parse splits a raw line into an action token and argument text. Lookup is
// case-insensitive and only the first token is matched. Empty input means
// the player just pressed enter, which reads as "keep going".
func (p *Parser) Parse(raw string) Command {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Command{Action: ActionAdvance, Raw: raw}
	}

	fields := strings.Fields(trimmed)
	token := strings.ToLower(fields[0])
	target := strings.Join(fields[1:], " ")

	action, ok := p.aliases[token]
	if !ok {
		return Command{Action: ActionUnknown, Target: fields[0], Raw: raw}
	}

	// A bare choice letter is its own argument.
	if action == ActionChoose && target == "" && len(token) == 1 {
		target = token
	}

	return Command{Action: action, Target: target, Raw: raw}
}
