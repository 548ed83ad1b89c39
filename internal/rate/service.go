package rate

import (
	"context"
	"errors"
	"fxbot/internal/domain"
	"strings"

	"github.com/sirupsen/logrus"
)

type Outcome string

const (
	OutcomeUsage      Outcome = "usage"
	OutcomeListing    Outcome = "listing"
	OutcomeFound      Outcome = "found"
	OutcomeNotFound   Outcome = "not_found"
	OutcomeNoSnapshot Outcome = "no_snapshot"
)

type Reply struct {
	Text    string
	Outcome Outcome
}

type SnapshotReader interface {
	Latest(ctx context.Context) (domain.Snapshot, error)
}

type Service struct {
	snapshots SnapshotReader
	formatter *Formatter
}

// Answer turns one chat message into reply text. Input problems never become errors;
// only an unreachable store does.
func (s *Service) Answer(ctx context.Context, text string) (Reply, error) {
	normalized := Normalize(text)

	switch command(normalized) {
	case "", "/start", "/help":
		return Reply{Text: UsageText, Outcome: OutcomeUsage}, nil
	case "/all", "all":
		snap, ok, err := s.latest(ctx)
		if err != nil || !ok {
			return Reply{Text: NoSnapshotText, Outcome: OutcomeNoSnapshot}, err
		}
		return Reply{Text: s.formatter.Listing(snap), Outcome: OutcomeListing}, nil
	}

	query := ParseQuery(normalized)
	code := ResolveCode(query.ItemText)

	snap, ok, err := s.latest(ctx)
	if err != nil || !ok {
		return Reply{Text: NoSnapshotText, Outcome: OutcomeNoSnapshot}, err
	}

	quote, found := snap.Lookup(code)
	if !found {
		return Reply{Text: s.formatter.NotFound(query.ItemText), Outcome: OutcomeNotFound}, nil
	}
	return Reply{Text: s.formatter.Report(query, code, quote, snap.FetchedAt), Outcome: OutcomeFound}, nil
}

func (s *Service) GetByCode(ctx context.Context, code string) (View, error) {
	snap, ok, err := s.latest(ctx)
	if err != nil {
		return View{}, err
	}
	if !ok {
		return View{}, domain.ErrSnapshotNotFound
	}
	quote, found := snap.Lookup(code)
	if !found {
		return View{}, domain.ErrRateNotFound
	}
	return View{Code: code, Sell: quote.Sell, Buy: quote.Buy, FetchedAt: snap.FetchedAt}, nil
}

func (s *Service) GetCodes(ctx context.Context) (CodesView, error) {
	snap, ok, err := s.latest(ctx)
	if err != nil {
		return CodesView{}, err
	}
	if !ok {
		return CodesView{}, domain.ErrSnapshotNotFound
	}
	return CodesView{Codes: snap.QuotedCodes(), FetchedAt: snap.FetchedAt}, nil
}

// latest reports ok=false when no usable snapshot exists yet. A snapshot that fails
// to decode counts as missing; the next refresh overwrites it.
func (s *Service) latest(ctx context.Context) (domain.Snapshot, bool, error) {
	snap, err := s.snapshots.Latest(ctx)
	switch {
	case err == nil:
		return snap, true, nil
	case errors.Is(err, domain.ErrSnapshotNotFound):
		return domain.Snapshot{}, false, nil
	case errors.Is(err, domain.ErrSnapshotInvalid):
		logrus.WithError(err).Warn("Stored snapshot is unreadable, treating as missing")
		return domain.Snapshot{}, false, nil
	default:
		return domain.Snapshot{}, false, err
	}
}

// command strips a "@botname" suffix from slash commands.
func command(normalized string) string {
	if strings.HasPrefix(normalized, "/") {
		if at := strings.IndexByte(normalized, '@'); at > 0 && !strings.ContainsAny(normalized, " \t\n") {
			return normalized[:at]
		}
	}
	return normalized
}

func NewService(snapshots SnapshotReader, formatter *Formatter) *Service {
	return &Service{snapshots: snapshots, formatter: formatter}
}
