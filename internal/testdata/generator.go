package testdata

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jask/pickboard/internal/database/repository"
	"github.com/jask/pickboard/internal/service"
)

// Repos bundles repos used by SeedWeek.
type Repos struct {
	Teams *repository.TeamRepo
	Games *repository.GameRepo
}

// SeedWeek fills week with a sample slate around now: a Thursday game that
// is already final, a block of Sunday games and a Monday night game.
// It does nothing when the week already has games.
func SeedWeek(ctx context.Context, repos Repos, week int, now time.Time, seed int64) (int, error) {
	existing, err := repos.Games.ListWeek(ctx, week)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	teams, err := repos.Teams.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(teams) < 2 {
		return 0, fmt.Errorf("seed week: need teams, have %d", len(teams))
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(teams), func(i, j int) { teams[i], teams[j] = teams[j], teams[i] })
	if len(teams) > 28 {
		teams = teams[:28] // a few byes
	}

	sunday := now.Truncate(24 * time.Hour).Add(72*time.Hour + 17*time.Hour)
	n := 0
	for i := 0; i+1 < len(teams); i += 2 {
		g := repository.Game{
			Week:      week,
			VisitorID: teams[i].ID,
			HomeID:    teams[i+1].ID,
			Status:    repository.StatusFuture,
			SortOrder: n,
		}
		switch {
		case n == 0:
			g.Kickoff = now.Add(-26 * time.Hour)
			g.Status = repository.StatusFinished
			g.VisitorScore, g.HomeScore = 3*rng.Intn(10), 7*rng.Intn(5)
		case i+2 >= len(teams)-1:
			g.Kickoff = sunday.Add(27*time.Hour + 15*time.Minute)
		case n%3 == 0:
			g.Kickoff = sunday.Add(3*time.Hour + 25*time.Minute)
		default:
			g.Kickoff = sunday
		}
		g.ID = service.GameID(week, g.VisitorID, g.HomeID)
		if err := repos.Games.Upsert(ctx, g); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
