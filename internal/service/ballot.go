package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/jask/pickboard/internal/database/repository"
)

// Side is which team of a game was picked.
type Side int

const (
	NoPick Side = iota
	PickVisitor
	PickHome
)

func (s Side) String() string {
	switch s {
	case PickVisitor:
		return "visitor"
	case PickHome:
		return "home"
	}
	return "none"
}

// Entry is one board row at submit time.
type Entry struct {
	GameID     string
	Pick       Side
	Confidence int
}

// Selection is one validated pick.
type Selection struct {
	GameID     string    `json:"game_id"`
	Team       string    `json:"team"`
	TeamCode   string    `json:"team_code"`
	Confidence int       `json:"confidence"`
	When       time.Time `json:"when"`
}

// Ballot is a week's picks, ordered by descending confidence.
type Ballot struct {
	Week       int         `json:"week"`
	Submitted  time.Time   `json:"submitted"`
	Selections []Selection `json:"selections"`
}

// BallotService validates and exports ballots.
type BallotService struct {
	Games *repository.GameRepo
	Log   *zap.Logger
}

// Build validates entries against the week's schedule at now.
// Confidences must be unique and within 1..games in the week.
func (s *BallotService) Build(ctx context.Context, week int, entries []Entry, now time.Time) (Ballot, error) {
	games, err := s.Games.ListWeek(ctx, week)
	if err != nil {
		return Ballot{}, fmt.Errorf("list week %d: %w", week, err)
	}
	byID := make(map[string]repository.Game, len(games))
	for _, g := range games {
		byID[g.ID] = g
	}

	b := Ballot{Week: week, Submitted: now.UTC()}
	used := make(map[int]repository.Team, len(entries))
	for _, e := range entries {
		g, ok := byID[e.GameID]
		if !ok {
			return Ballot{}, fmt.Errorf("%w: %s", ErrUnknownGame, e.GameID)
		}
		if g.Started(now) {
			return Ballot{}, fmt.Errorf("%w: %s at %s", ErrGameStarted, g.Visitor.Name, g.Home.Name)
		}
		var team repository.Team
		switch e.Pick {
		case PickVisitor:
			team = g.Visitor
		case PickHome:
			team = g.Home
		default:
			return Ballot{}, fmt.Errorf("%w: %s at %s", ErrNoPick, g.Visitor.Name, g.Home.Name)
		}
		if e.Confidence < 1 || e.Confidence > len(games) {
			return Ballot{}, fmt.Errorf("%w: %d not in 1..%d", ErrConfidenceRange, e.Confidence, len(games))
		}
		if prev, dup := used[e.Confidence]; dup {
			return Ballot{}, fmt.Errorf("%w: %s and %s both have %d", ErrDuplicateConfidence, prev.Name, team.Name, e.Confidence)
		}
		used[e.Confidence] = team
		b.Selections = append(b.Selections, Selection{
			GameID:     g.ID,
			Team:       team.Name,
			TeamCode:   team.Code,
			Confidence: e.Confidence,
			When:       now.UTC(),
		})
	}
	sort.SliceStable(b.Selections, func(i, j int) bool {
		return b.Selections[i].Confidence > b.Selections[j].Confidence
	})

	s.logger().Info("ballot built", zap.Int("week", week), zap.Int("picks", len(b.Selections)))
	return b, nil
}

// Export writes b as indented JSON.
func (s *BallotService) Export(w io.Writer, b Ballot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encode ballot: %w", err)
	}
	return nil
}

func (s *BallotService) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}
