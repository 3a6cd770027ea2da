package service

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/jask/pickboard/internal/database/repository"
)

// ImportResults reads rows of: visitor, home, visitor_score, home_score[, status]
// and records them on the week's games. Status defaults to finished. A first
// row starting with "visitor" is a header.
func (s *ScheduleService) ImportResults(ctx context.Context, r io.Reader, week int) (ImportResult, error) {
	res := ImportResult{}
	if week < 1 {
		return res, fmt.Errorf("week must be >= 1, got %d", week)
	}
	resolver, err := NewTeamResolver(ctx, s.Teams)
	if err != nil {
		return res, err
	}

	csvr := csv.NewReader(bufio.NewReader(r))
	csvr.TrimLeadingSpace = true
	csvr.FieldsPerRecord = -1
	records := 0
	for {
		rec, line, err := readRecord(csvr)
		if err == io.EOF {
			break
		}
		if err != nil {
			if line == 0 {
				return res, fmt.Errorf("read results: %w", err)
			}
			res.Errors = append(res.Errors, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		records++
		if records == 1 && isHeader(rec, "visitor") {
			continue
		}
		if err := s.recordResult(ctx, rec, week, resolver); err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		res.Updated++
	}
	s.logger().Info("results imported",
		zap.Int("week", week),
		zap.Int("updated", res.Updated),
		zap.Int("errors", len(res.Errors)))
	return res, nil
}

func (s *ScheduleService) recordResult(ctx context.Context, rec []string, week int, resolver *TeamResolver) error {
	if len(rec) < 4 {
		return errors.New("expected at least 4 columns (visitor, home, visitor_score, home_score)")
	}
	visitorID, err := resolver.Resolve(rec[0])
	if err != nil {
		return fmt.Errorf("visitor: %w", err)
	}
	homeID, err := resolver.Resolve(rec[1])
	if err != nil {
		return fmt.Errorf("home: %w", err)
	}
	vs, err := parseScore(rec[2])
	if err != nil {
		return fmt.Errorf("visitor_score: %w", err)
	}
	hs, err := parseScore(rec[3])
	if err != nil {
		return fmt.Errorf("home_score: %w", err)
	}
	status := repository.StatusFinished
	if len(rec) > 4 && strings.TrimSpace(rec[4]) != "" {
		st, ok := repository.ParseGameStatus(strings.TrimSpace(rec[4]))
		if !ok || st == repository.StatusFuture {
			return fmt.Errorf("status %q", rec[4])
		}
		status = st
	}

	err = s.Games.UpdateStatus(ctx, GameID(week, visitorID, homeID), status, vs, hs)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s at %s in week %d", ErrUnknownGame, strings.TrimSpace(rec[0]), strings.TrimSpace(rec[1]), week)
	}
	return err
}

// ScoreLine is one selection with the points it has earned so far.
type ScoreLine struct {
	Selection
	Status repository.GameStatus
	Result string
	Points int
}

// Score totals a ballot against the stored game states.
type Score struct {
	Week    int
	Points  int
	Pending int // confidence still riding on games that have not kicked off
	Lines   []ScoreLine
}

// Decode reads a ballot written by Export.
func (s *BallotService) Decode(r io.Reader) (Ballot, error) {
	var b Ballot
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return Ballot{}, fmt.Errorf("decode ballot: %w", err)
	}
	if b.Week < 1 {
		return Ballot{}, fmt.Errorf("decode ballot: week must be >= 1, got %d", b.Week)
	}
	return b, nil
}

// Score credits each selection whose team leads a live or finished game
// with its confidence. Ties and trailing picks earn nothing.
func (s *BallotService) Score(ctx context.Context, b Ballot) (Score, error) {
	games, err := s.Games.ListWeek(ctx, b.Week)
	if err != nil {
		return Score{}, fmt.Errorf("list week %d: %w", b.Week, err)
	}
	byID := make(map[string]repository.Game, len(games))
	for _, g := range games {
		byID[g.ID] = g
	}

	sc := Score{Week: b.Week}
	for _, sel := range b.Selections {
		g, ok := byID[sel.GameID]
		if !ok {
			return Score{}, fmt.Errorf("%w: %s", ErrUnknownGame, sel.GameID)
		}
		line := ScoreLine{Selection: sel, Status: g.Status}
		switch g.Status {
		case repository.StatusFuture:
			line.Result = "pending"
			sc.Pending += sel.Confidence
		default:
			line.Result = fmt.Sprintf("%s %d, %s %d", g.Visitor.Code, g.VisitorScore, g.Home.Code, g.HomeScore)
			if leader(g) == sel.TeamCode {
				line.Points = sel.Confidence
			}
		}
		sc.Points += line.Points
		sc.Lines = append(sc.Lines, line)
	}
	s.logger().Info("ballot scored", zap.Int("week", b.Week), zap.Int("points", sc.Points), zap.Int("pending", sc.Pending))
	return sc, nil
}

// leader is the code of the team ahead, or "" when level.
func leader(g repository.Game) string {
	switch {
	case g.VisitorScore > g.HomeScore:
		return g.Visitor.Code
	case g.HomeScore > g.VisitorScore:
		return g.Home.Code
	}
	return ""
}
