package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/pickboard/internal/database/repository"
)

func openTestDB(t *testing.T) (string, *repository.TeamRepo, *repository.GameRepo) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")
	require.NoError(t, RunMigrations(dbPath))
	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, SeedDefaults(context.Background(), db))
	return dbPath, repository.NewTeamRepo(db), repository.NewGameRepo(db)
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	t.Parallel()
	dbPath, _, _ := openTestDB(t)
	require.NoError(t, RunMigrations(dbPath))

	v, dirty, err := SchemaVersion(dbPath)
	require.NoError(t, err)
	require.False(t, dirty)
	require.Equal(t, uint(1), v)
}

func TestSeedDefaultsTeamsAndAliases(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, teams, _ := openTestDB(t)

	list, err := teams.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 32)

	gb, err := teams.ByCode(ctx, "gb")
	require.NoError(t, err)
	require.Equal(t, "Packers", gb.Name)
	require.Equal(t, TeamID("GB"), gb.ID)

	aliases, err := teams.Aliases(ctx)
	require.NoError(t, err)
	require.Equal(t, gb.ID, aliases["green bay"])
	require.Equal(t, gb.ID, aliases["green bay packers"])
	require.Equal(t, TeamID("LAR"), aliases["los angeles"])
	require.Equal(t, TeamID("LV"), aliases["oakland"])
	_, shared := aliases["new york"]
	require.False(t, shared)
}

func TestGameRepoWeekLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, _, games := openTestDB(t)

	kick := time.Date(2026, 9, 13, 17, 0, 0, 0, time.UTC)
	g1 := repository.Game{ID: "g1", Week: 2, VisitorID: TeamID("DAL"), HomeID: TeamID("NYG"),
		Kickoff: kick, Status: repository.StatusFuture, SortOrder: 1}
	g0 := repository.Game{ID: "g0", Week: 2, VisitorID: TeamID("BUF"), HomeID: TeamID("MIA"),
		Kickoff: kick.Add(-time.Hour), Status: repository.StatusFuture, SortOrder: 0}
	require.NoError(t, games.Upsert(ctx, g1))
	require.NoError(t, games.Upsert(ctx, g0))

	ok, err := games.Exists(ctx, "g1")
	require.NoError(t, err)
	require.True(t, ok)

	list, err := games.ListWeek(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "g0", list[0].ID)
	require.Equal(t, "Bills", list[0].Visitor.Name)
	require.Equal(t, "Giants", list[1].Home.Name)
	require.True(t, list[1].Kickoff.Equal(kick))

	require.NoError(t, games.UpdateStatus(ctx, "g1", repository.StatusFinished, 20, 17))
	list, err = games.ListWeek(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, repository.StatusFinished, list[1].Status)
	require.Equal(t, 20, list[1].VisitorScore)
	require.Error(t, games.UpdateStatus(ctx, "nope", repository.StatusFinished, 0, 0))

	weeks, err := games.Weeks(ctx)
	require.NoError(t, err)
	require.Equal(t, []int{2}, weeks)
}

func TestGameStarted(t *testing.T) {
	t.Parallel()
	kick := time.Date(2026, 9, 13, 17, 0, 0, 0, time.UTC)
	g := repository.Game{Kickoff: kick, Status: repository.StatusFuture}
	require.False(t, g.Started(kick.Add(-time.Minute)))
	require.True(t, g.Started(kick))
	g.Status = repository.StatusInProgress
	require.True(t, g.Started(kick.Add(-time.Hour)))
}
