package service

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jask/pickboard/internal/database/repository"
)

const (
	scheduleDateLayout = "2006-01-02"
	scheduleTimeLayout = "3:04 PM"
)

// ScheduleService imports weekly schedules.
type ScheduleService struct {
	Teams *repository.TeamRepo
	Games *repository.GameRepo
	Log   *zap.Logger
}

type ImportResult struct {
	Imported int
	Updated  int
	Errors   []error
}

// GameID is deterministic so re-importing a week updates in place.
func GameID(week int, visitorID, homeID string) string {
	key := fmt.Sprintf("game:%d:%s:%s", week, visitorID, homeID)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}

// ImportCSV reads rows of: date, time, visitor, home[, status[, visitor_score, home_score]].
// Dates and times are local to tz. A first row starting with "date" is a header.
func (s *ScheduleService) ImportCSV(ctx context.Context, r io.Reader, week int, tz *time.Location) (ImportResult, error) {
	res := ImportResult{}
	if week < 1 {
		return res, fmt.Errorf("week must be >= 1, got %d", week)
	}
	if tz == nil {
		tz = time.Local
	}
	resolver, err := NewTeamResolver(ctx, s.Teams)
	if err != nil {
		return res, err
	}
	log := s.logger()

	csvr := csv.NewReader(bufio.NewReader(r))
	csvr.TrimLeadingSpace = true
	csvr.FieldsPerRecord = -1
	records, order := 0, 0
	for {
		rec, line, err := readRecord(csvr)
		if err == io.EOF {
			break
		}
		if err != nil {
			if line == 0 {
				return res, fmt.Errorf("read schedule: %w", err)
			}
			res.Errors = append(res.Errors, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		records++
		if records == 1 && isHeader(rec, "date") {
			continue
		}
		g, err := parseScheduleRow(rec, week, tz, resolver)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		g.SortOrder = order
		order++

		existed, err := s.Games.Exists(ctx, g.ID)
		if err != nil {
			return res, fmt.Errorf("line %d lookup: %w", line, err)
		}
		if err := s.Games.Upsert(ctx, g); err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d insert: %w", line, err))
			continue
		}
		if existed {
			res.Updated++
		} else {
			res.Imported++
		}
	}
	log.Info("schedule imported",
		zap.Int("week", week),
		zap.Int("imported", res.Imported),
		zap.Int("updated", res.Updated),
		zap.Int("errors", len(res.Errors)))
	return res, nil
}

func isHeader(rec []string, first string) bool {
	return strings.EqualFold(strings.TrimSpace(rec[0]), first)
}

// readRecord returns the next record and the physical line it starts on.
// Blank lines and quoted newlines are counted. The line is 0 when the
// error did not come from parsing.
func readRecord(r *csv.Reader) ([]string, int, error) {
	rec, err := r.Read()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, pe.StartLine, pe.Err
		}
		return nil, 0, err
	}
	line, _ := r.FieldPos(0)
	return rec, line, nil
}

func parseScheduleRow(rec []string, week int, tz *time.Location, resolver *TeamResolver) (repository.Game, error) {
	if len(rec) < 4 {
		return repository.Game{}, errors.New("expected at least 4 columns (date, time, visitor, home)")
	}
	kickoff, err := parseKickoff(rec[0], rec[1], tz)
	if err != nil {
		return repository.Game{}, fmt.Errorf("kickoff: %w", err)
	}
	visitorID, err := resolver.Resolve(rec[2])
	if err != nil {
		return repository.Game{}, fmt.Errorf("visitor: %w", err)
	}
	homeID, err := resolver.Resolve(rec[3])
	if err != nil {
		return repository.Game{}, fmt.Errorf("home: %w", err)
	}
	if visitorID == homeID {
		return repository.Game{}, fmt.Errorf("team %q plays itself", rec[2])
	}

	g := repository.Game{
		ID:        GameID(week, visitorID, homeID),
		Week:      week,
		VisitorID: visitorID,
		HomeID:    homeID,
		Kickoff:   kickoff,
		Status:    repository.StatusFuture,
	}
	if len(rec) > 4 {
		st, ok := repository.ParseGameStatus(strings.TrimSpace(rec[4]))
		if !ok {
			return repository.Game{}, fmt.Errorf("status %q", rec[4])
		}
		g.Status = st
	}
	if len(rec) > 6 {
		if g.VisitorScore, err = parseScore(rec[5]); err != nil {
			return repository.Game{}, fmt.Errorf("visitor_score: %w", err)
		}
		if g.HomeScore, err = parseScore(rec[6]); err != nil {
			return repository.Game{}, fmt.Errorf("home_score: %w", err)
		}
	}
	return g, nil
}

func parseKickoff(date, clock string, loc *time.Location) (time.Time, error) {
	d := strings.TrimSpace(date)
	c := strings.ToUpper(strings.TrimSpace(clock))
	t, err := time.ParseInLocation(scheduleDateLayout+" "+scheduleTimeLayout, d+" "+c, loc)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func parseScore(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative score %d", n)
	}
	return n, nil
}

func (s *ScheduleService) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}
