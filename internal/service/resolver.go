package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/pickboard/internal/database/repository"
)

// TeamResolver maps schedule spellings to team ids.
type TeamResolver struct {
	aliases map[string]string
	// MaxDistance bounds fuzzy matches. Zero picks a length-based default.
	MaxDistance int
}

// NewTeamResolver loads every alias from the repo.
func NewTeamResolver(ctx context.Context, teams *repository.TeamRepo) (*TeamResolver, error) {
	aliases, err := teams.Aliases(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aliases: %w", err)
	}
	return &TeamResolver{aliases: aliases}, nil
}

// Resolve returns the team id for name: exact alias first, then the single
// nearest alias by edit distance.
func (r *TeamResolver) Resolve(name string) (string, error) {
	key := strings.ToLower(strings.Join(strings.Fields(name), " "))
	if key == "" {
		return "", fmt.Errorf("%w: empty name", ErrUnknownTeam)
	}
	if id, ok := r.aliases[key]; ok {
		return id, nil
	}

	limit := r.MaxDistance
	if limit <= 0 {
		limit = max(1, len(key)/4)
	}
	best, bestID, tie := limit+1, "", false
	for alias, id := range r.aliases {
		d := levenshtein.ComputeDistance(key, alias)
		switch {
		case d < best:
			best, bestID, tie = d, id, false
		case d == best && id != bestID:
			tie = true
		}
	}
	if bestID == "" || tie {
		return "", fmt.Errorf("%w: %q", ErrUnknownTeam, name)
	}
	return bestID, nil
}
