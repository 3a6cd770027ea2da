package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/jask/pickboard/internal/database/repository"
)

type seedTeam struct {
	code, city, name string
}

var leagueTeams = []seedTeam{
	{"ARI", "Arizona", "Cardinals"},
	{"ATL", "Atlanta", "Falcons"},
	{"BAL", "Baltimore", "Ravens"},
	{"BUF", "Buffalo", "Bills"},
	{"CAR", "Carolina", "Panthers"},
	{"CHI", "Chicago", "Bears"},
	{"CIN", "Cincinnati", "Bengals"},
	{"CLE", "Cleveland", "Browns"},
	{"DAL", "Dallas", "Cowboys"},
	{"DEN", "Denver", "Broncos"},
	{"DET", "Detroit", "Lions"},
	{"GB", "Green Bay", "Packers"},
	{"HOU", "Houston", "Texans"},
	{"IND", "Indianapolis", "Colts"},
	{"JAX", "Jacksonville", "Jaguars"},
	{"KC", "Kansas City", "Chiefs"},
	{"LV", "Las Vegas", "Raiders"},
	{"LAC", "Los Angeles", "Chargers"},
	{"LAR", "Los Angeles", "Rams"},
	{"MIA", "Miami", "Dolphins"},
	{"MIN", "Minnesota", "Vikings"},
	{"NE", "New England", "Patriots"},
	{"NO", "New Orleans", "Saints"},
	{"NYG", "New York", "Giants"},
	{"NYJ", "New York", "Jets"},
	{"PHI", "Philadelphia", "Eagles"},
	{"PIT", "Pittsburgh", "Steelers"},
	{"SF", "San Francisco", "49ers"},
	{"SEA", "Seattle", "Seahawks"},
	{"TB", "Tampa Bay", "Buccaneers"},
	{"TEN", "Tennessee", "Titans"},
	{"WAS", "Washington", "Commanders"},
}

// Spellings older schedules still use, plus the shared-city defaults.
var extraAliases = map[string]string{
	"Los Angeles":         "LAR",
	"LA Rams":             "LAR",
	"St. Louis Rams":      "LAR",
	"LA Chargers":         "LAC",
	"San Diego":           "LAC",
	"San Diego Chargers":  "LAC",
	"Oakland":             "LV",
	"Oakland Raiders":     "LV",
	"NY Giants":           "NYG",
	"NY Jets":             "NYJ",
	"Washington Redskins": "WAS",
}

// TeamID is the deterministic id for a team code.
func TeamID(code string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("team:"+code)).String()
}

// SeedDefaults ensures the league's teams and their aliases exist.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	teamRepo := repository.NewTeamRepo(db)
	existing, err := teamRepo.List(ctx)
	if err == nil && len(existing) >= len(leagueTeams) {
		return nil
	}

	cities := make(map[string]int)
	for _, st := range leagueTeams {
		cities[st.city]++
	}
	for _, st := range leagueTeams {
		t := repository.Team{ID: TeamID(st.code), Code: st.code, Name: st.name, City: st.city}
		if err := teamRepo.Upsert(ctx, t); err != nil {
			return fmt.Errorf("seed team %s: %w", st.code, err)
		}
		aliases := []string{st.code, st.name, t.FullName()}
		if cities[st.city] == 1 {
			aliases = append(aliases, st.city)
		}
		for _, a := range aliases {
			if err := teamRepo.AddAlias(ctx, a, t.ID); err != nil {
				return fmt.Errorf("seed alias %q: %w", a, err)
			}
		}
	}
	for alias, code := range extraAliases {
		if err := teamRepo.AddAlias(ctx, alias, TeamID(code)); err != nil {
			return fmt.Errorf("seed alias %q: %w", alias, err)
		}
	}
	return nil
}
