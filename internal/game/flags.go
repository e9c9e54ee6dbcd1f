package game

// EventFlags tracks one-time and timed narrative events. The timers are
// command-driven countdowns: the engine decrements them as input arrives,
// never from a background clock.
type EventFlags struct {
	HatchOpened       bool
	BlackRockExplored bool
	JacobMet          bool
	TempleBathed      bool

	DynamiteActive    bool
	DynamiteTimer     int
	SmokeMonsterTimer int
	OthersTimer       int
}
