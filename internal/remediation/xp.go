package remediation

// DefaultXPPerEvent is the flat award for every completed event.
const DefaultXPPerEvent = 10

// LevelThreshold is one row of the level table.
type LevelThreshold struct {
	Level int
	XP    int
	Title string
}

// LevelTable maps cumulative XP to levels, lowest first.
var LevelTable = []LevelThreshold{
	{1, 0, "Wanderer"},
	{2, 100, "Thread Bearer"},
	{3, 250, "Maze Walker"},
	{4, 500, "Pathfinder"},
	{5, 1000, "Labyrinth Cartographer"},
	{6, 2000, "Minotaur Hunter"},
	{7, 4000, "Minotaur Slayer"},
	{8, 8000, "Master of the Labyrinth"},
}

// LevelFor returns the highest level whose threshold the given total
// XP meets.
func LevelFor(xp int) LevelThreshold {
	current := LevelTable[0]
	for _, lt := range LevelTable {
		if xp >= lt.XP {
			current = lt
		}
	}
	return current
}

// XPState is the cumulative experience ledger. Total is monotonically
// non-decreasing; weekly resets never touch it.
type XPState struct {
	Total          int `json:"total"`
	LifetimeEvents int `json:"lifetimeEvents"`
}

// Award adds amount XP and reports whether a level boundary was
// crossed, returning the level reached.
func (s *XPState) Award(amount int) (leveledUp bool, level LevelThreshold) {
	if amount < 0 {
		amount = 0
	}
	before := LevelFor(s.Total)
	s.Total += amount
	after := LevelFor(s.Total)
	return after.Level > before.Level, after
}

// RecordEvent bumps the lifetime event counter.
func (s *XPState) RecordEvent() {
	s.LifetimeEvents++
}
