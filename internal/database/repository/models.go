package repository

import "time"

// Team represents a team row.
type Team struct {
	ID   string
	Code string
	Name string
	City string
}

// FullName is "City Name", the way schedules usually print it.
func (t Team) FullName() string {
	if t.City == "" {
		return t.Name
	}
	return t.City + " " + t.Name
}

// GameStatus mirrors the schedule feed's game state.
type GameStatus string

const (
	StatusFuture     GameStatus = "future"
	StatusInProgress GameStatus = "in_progress"
	StatusFinished   GameStatus = "finished"
)

// ParseGameStatus accepts the feed spellings; empty means future.
func ParseGameStatus(s string) (GameStatus, bool) {
	switch s {
	case "", "future", "Future", "scheduled":
		return StatusFuture, true
	case "in_progress", "InProgress", "inprogress", "live":
		return StatusInProgress, true
	case "finished", "Finished", "final", "Final":
		return StatusFinished, true
	}
	return "", false
}

// Game represents a game row. Visitor and Home are filled by ListWeek.
type Game struct {
	ID           string
	Week         int
	VisitorID    string
	HomeID       string
	Kickoff      time.Time
	Status       GameStatus
	VisitorScore int
	HomeScore    int
	SortOrder    int

	Visitor Team
	Home    Team
}

// Started reports whether picks for g are closed at now.
func (g Game) Started(now time.Time) bool {
	return g.Status != StatusFuture || !now.Before(g.Kickoff)
}
