package game

const (
	MaxHealth = 100
	MaxSanity = 100
)

// Player is the single protagonist of a session. Health and sanity are
// clamped to [0, max] on every mutation; the room is referenced by key so
// the player never owns a piece of the world graph.
type Player struct {
	name         string
	health       int
	sanity       int
	daysOnIsland int
	inventory    *Inventory
	roomKey      string
}

func NewPlayer(name string, inventoryCapacity int) *Player {
	return &Player{
		name:         name,
		health:       MaxHealth,
		sanity:       MaxSanity,
		daysOnIsland: 1,
		inventory:    NewInventory(inventoryCapacity),
	}
}

func (p *Player) Name() string { return p.name }

func (p *Player) Health() int { return p.health }

func (p *Player) Sanity() int { return p.sanity }

func (p *Player) DaysOnIsland() int { return p.daysOnIsland }

func (p *Player) Inventory() *Inventory { return p.inventory }

func (p *Player) RoomKey() string { return p.roomKey }

// MoveTo relocates the player. The key is not resolved here; the world
// arena is the only place that can.
func (p *Player) MoveTo(roomKey string) {
	p.roomKey = roomKey
}

// AdjustHealth applies a signed delta and returns the clamped result.
func (p *Player) AdjustHealth(delta int) int {
	p.health = clamp(p.health+delta, 0, MaxHealth)
	return p.health
}

// AdjustSanity applies a signed delta and returns the clamped result.
func (p *Player) AdjustSanity(delta int) int {
	p.sanity = clamp(p.sanity+delta, 0, MaxSanity)
	return p.sanity
}

// SetHealth overwrites health, clamped. Used when restoring a snapshot.
func (p *Player) SetHealth(v int) {
	p.health = clamp(v, 0, MaxHealth)
}

// SetSanity overwrites sanity, clamped. Used when restoring a snapshot.
func (p *Player) SetSanity(v int) {
	p.sanity = clamp(v, 0, MaxSanity)
}

// SetDaysOnIsland overwrites the day count, floored at day one.
func (p *Player) SetDaysOnIsland(days int) {
	if days < 1 {
		days = 1
	}
	p.daysOnIsland = days
}

func (p *Player) AdvanceDay() {
	p.daysOnIsland++
}

func (p *Player) Alive() bool {
	return p.health > 0
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
