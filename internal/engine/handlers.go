package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/driftline/castaway/internal/command"
	"github.com/driftline/castaway/internal/display"
	"github.com/driftline/castaway/internal/game"
)

// dynamiteFuseTicks is how many commands the player gets once a fuse is lit
// by hand rather than by a chapter effect.
const dynamiteFuseTicks = 5

func (e *Engine) handleTake(name string) (string, error) {
	if name == "" {
		return "", command.NewUserError("Take what?")
	}

	roomKey := e.player.RoomKey()
	for _, item := range e.world.RoomItems(roomKey) {
		if item.MatchName(name) && !item.Takeable {
			return "", command.NewUserError(fmt.Sprintf("%s won't be moved.", display.Capitalize(item.Name)))
		}
	}

	item := e.world.TakeItem(roomKey, name)
	if item == nil {
		return "", command.NewUserError(fmt.Sprintf("There's no %s here.", name))
	}

	if err := e.player.Inventory().Add(item); err != nil {
		// Undo the move so the item isn't lost.
		_ = e.world.PlaceItem(roomKey, item)
		return "", command.NewUserError("Your pack is full. Drop something first.")
	}

	e.logf("took item: %s", item.Name)
	return fmt.Sprintf("You take the %s.", strings.ToLower(item.Name)), nil
}

func (e *Engine) handleDrop(name string) (string, error) {
	if name == "" {
		return "", command.NewUserError("Drop what?")
	}

	item := e.player.Inventory().Remove(name)
	if item == nil {
		return "", command.NewUserError(fmt.Sprintf("You're not carrying a %s.", name))
	}

	if err := e.world.PlaceItem(e.player.RoomKey(), item); err != nil {
		// The player is nowhere yet; put it back rather than void it.
		_ = e.player.Inventory().Add(item)
		return "", command.NewUserError("There's nowhere to put that down.")
	}

	e.logf("dropped item: %s", item.Name)
	return fmt.Sprintf("You set the %s down.", strings.ToLower(item.Name)), nil
}

func (e *Engine) handleLook() (string, error) {
	room := e.world.Room(e.player.RoomKey())
	if room == nil {
		return "", command.NewUserError("Everything is a blur. Press enter to let the story place you.")
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("%s\n%s", room.Name, room.Description))

	if room.Dangerous {
		parts = append(parts, room.DangerDesc)
	}

	if items := e.world.RoomItems(e.player.RoomKey()); len(items) > 0 {
		names := make([]string, len(items))
		for i, item := range items {
			names[i] = item.Name
		}
		parts = append(parts, "You can see: "+strings.Join(names, ", "))
	}

	if len(room.Exits) > 0 {
		dirs := make([]string, 0, len(room.Exits))
		for dir := range room.Exits {
			dirs = append(dirs, dir)
		}
		sort.Strings(dirs)
		parts = append(parts, "Paths lead: "+strings.Join(dirs, ", "))
	}

	return display.Paragraphs(parts...), nil
}

func (e *Engine) handleConsume(name string) (string, error) {
	if name == "" {
		return "", command.NewUserError("Eat or drink what?")
	}

	item := e.player.Inventory().Find(name)
	if item == nil {
		return "", command.NewUserError(fmt.Sprintf("You're not carrying a %s.", name))
	}
	if !item.Consumable() {
		return "", command.NewUserError(fmt.Sprintf("You can't stomach the %s.", strings.ToLower(item.Name)))
	}

	return e.consume(item), nil
}

// consume applies a consumable's health effect and spends a use, discarding
// the item once it's gone.
func (e *Engine) consume(item *game.Item) string {
	if item.Exhausted() {
		return fmt.Sprintf("The %s is used up.", strings.ToLower(item.Name))
	}

	e.player.AdjustHealth(item.HealthBoost)
	item.Spend()

	text := fmt.Sprintf("You consume the %s. %s", strings.ToLower(item.Name), statDelta("health", item.HealthBoost))
	if item.Exhausted() {
		e.player.Inventory().Remove(item.Name)
		text += " That was the last of it."
	}
	e.logf("consumed item: %s", item.Name)
	return text
}

func (e *Engine) handleActivate(target string) (string, error) {
	// Bare 'activate' restarts the current chapter's puzzle after a loss.
	if target == "" {
		if !e.started || e.cursor >= len(e.chapters) {
			return "", command.NewUserError("There's nothing to activate.")
		}
		ch := e.chapters[e.cursor]
		if ch.MiniGame == "" || e.completed {
			return "", command.NewUserError("There's nothing to activate.")
		}
		intro, err := e.startMiniGame(ch.MiniGame)
		if err != nil {
			return "", fmt.Errorf("restarting mini-game %q: %w", ch.MiniGame, err)
		}
		e.logf("chapter %d mini-game restarted", e.cursor)
		return intro, nil
	}

	item := e.player.Inventory().Find(target)
	if item == nil {
		return "", command.NewUserError(fmt.Sprintf("You're not carrying a %s.", target))
	}

	if strings.EqualFold(item.Name, "dynamite") {
		if e.flags.DynamiteActive {
			return "", command.NewUserError("The fuse is already burning.")
		}
		e.flags.DynamiteActive = true
		e.flags.DynamiteTimer = dynamiteFuseTicks
		e.logf("dynamite armed")
		return "You strike a match against the crate and the fuse catches. Move.", nil
	}

	return "", command.NewUserError(fmt.Sprintf("The %s doesn't do anything when activated.", strings.ToLower(item.Name)))
}

func (e *Engine) handleUse(name string) (string, error) {
	if name == "" {
		return "", command.NewUserError("Use what?")
	}

	item := e.player.Inventory().Find(name)
	if item == nil {
		return "", command.NewUserError(fmt.Sprintf("You're not carrying a %s.", name))
	}

	switch item.Type {
	case game.ItemTypeFood, game.ItemTypeMedicine:
		return e.consume(item), nil

	case game.ItemTypeKey:
		room := e.world.Room(e.player.RoomKey())
		if room != nil && strings.Contains(strings.ToLower(room.Name), "hatch") && !e.flags.HatchOpened {
			e.flags.HatchOpened = true
			e.logf("hatch opened")
			return "The mechanism grinds, then gives. The hatch is open.", nil
		}
		return fmt.Sprintf("There's no lock here for the %s.", strings.ToLower(item.Name)), nil

	case game.ItemTypeDocument:
		return fmt.Sprintf("You read the %s:\n%s", strings.ToLower(item.Name), item.Description), nil

	case game.ItemTypeTool, game.ItemTypeWeapon:
		if item.Exhausted() {
			return fmt.Sprintf("The %s is spent.", strings.ToLower(item.Name)), nil
		}
		item.Spend()
		return fmt.Sprintf("You put the %s to work. %s", strings.ToLower(item.Name), item.Description), nil

	case game.ItemTypeArtifact:
		e.player.AdjustSanity(5)
		return fmt.Sprintf("Holding the %s steadies you. %s", strings.ToLower(item.Name), statDelta("sanity", 5)), nil

	default:
		return fmt.Sprintf("You turn the %s over in your hands. %s", strings.ToLower(item.Name), item.Description), nil
	}
}

func (e *Engine) handleInventory() (string, error) {
	inv := e.player.Inventory()
	items := inv.Items()
	if len(items) == 0 {
		return "Your pack is empty.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your pack (%d/%d):\n", inv.Len(), inv.Capacity())
	for _, item := range items {
		fmt.Fprintf(&b, "  %s (%s)", item.Name, item.Type)
		if item.UsesRemaining > 0 {
			fmt.Fprintf(&b, " x%d", item.UsesRemaining)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (e *Engine) handleStatus() (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s — %s\n", e.player.Name(), e.statusSummary())

	if room := e.world.Room(e.player.RoomKey()); room != nil {
		fmt.Fprintf(&b, "Location: %s\n", room.Name)
	}

	if e.cursor < len(e.chapters) {
		state := "not yet started"
		if e.completed {
			state = "completed"
		} else if e.started {
			state = "in progress"
		}
		fmt.Fprintf(&b, "Chapter %d of %d: %s (%s)", e.cursor+1, len(e.chapters), e.chapters[e.cursor].Title, state)
	} else {
		b.WriteString("All chapters behind you.")
	}

	return b.String(), nil
}

func (e *Engine) handleHelp() (string, error) {
	return strings.TrimSpace(`
Commands:
  (enter)            continue the story
  answer <text>      answer the current chapter
  a / b / c          pick a choice when one is offered
  take / drop <item> move an item between the ground and your pack
  look               look around
  use <item>         use something you carry
  eat / drink <item> consume food or medicine
  activate           face a chapter's task again (or light certain items)
  inventory          what you're carrying
  status             how you're holding up
  map                what you know of the island
  save / load <slot> keep or restore your place
  help               this text
`), nil
}

func (e *Engine) handleMap() (string, error) {
	var b strings.Builder
	b.WriteString("What you know of the island:\n")

	for _, key := range e.world.RoomKeys() {
		room := e.world.Room(key)
		marker := "  "
		if key == e.player.RoomKey() {
			marker = "* "
		}

		dirs := make([]string, 0, len(room.Exits))
		for dir, dest := range room.Exits {
			if destRoom := e.world.Room(dest); destRoom != nil {
				dirs = append(dirs, fmt.Sprintf("%s→%s", dir, destRoom.Name))
			}
		}
		sort.Strings(dirs)

		fmt.Fprintf(&b, "%s%s", marker, room.Name)
		if len(dirs) > 0 {
			fmt.Fprintf(&b, "  (%s)", strings.Join(dirs, ", "))
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n"), nil
}
