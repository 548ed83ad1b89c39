package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

const (
	sellSuffix = "1"
	buySuffix  = "2"
)

// quoteFieldPattern matches provider fields like "usd1" (sell) and "usd2" (buy).
var quoteFieldPattern = regexp.MustCompile(`^([a-z0-9]{2,})[12]$`)

type Quote struct {
	Sell decimal.Decimal
	Buy  decimal.Decimal
}

// Snapshot is one fetched rate table. It is never mutated after construction;
// a refresh produces a new Snapshot that replaces the stored one.
type Snapshot struct {
	FetchedAt time.Time
	Source    string
	fields    map[string]string
}

func NewSnapshot(fetchedAt time.Time, source string, fields map[string]string) Snapshot {
	cp := make(map[string]string, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	return Snapshot{FetchedAt: fetchedAt, Source: source, fields: cp}
}

func (s Snapshot) Len() int { return len(s.fields) }

func (s Snapshot) Field(key string) (string, bool) {
	v, ok := s.fields[key]
	return v, ok
}

// Lookup returns the sell/buy pair for code. Both sides must be present and numeric.
func (s Snapshot) Lookup(code string) (Quote, bool) {
	rawSell, ok := s.fields[code+sellSuffix]
	if !ok {
		return Quote{}, false
	}
	rawBuy, ok := s.fields[code+buySuffix]
	if !ok {
		return Quote{}, false
	}
	sell, ok := ParseQuoteValue(rawSell)
	if !ok {
		return Quote{}, false
	}
	buy, ok := ParseQuoteValue(rawBuy)
	if !ok {
		return Quote{}, false
	}
	return Quote{Sell: sell, Buy: buy}, true
}

// Codes lists every base code that has at least one quote field, sorted.
func (s Snapshot) Codes() []string {
	set := make(map[string]struct{}, len(s.fields)/2)
	for key := range s.fields {
		if m := quoteFieldPattern.FindStringSubmatch(key); m != nil {
			set[m[1]] = struct{}{}
		}
	}
	codes := make([]string, 0, len(set))
	for code := range set {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// QuotedCodes is the subset of Codes whose sell and buy quotes both parse.
func (s Snapshot) QuotedCodes() []string {
	codes := s.Codes()
	quoted := codes[:0]
	for _, code := range codes {
		if _, ok := s.Lookup(code); ok {
			quoted = append(quoted, code)
		}
	}
	return quoted
}

type persistedSnapshot struct {
	FetchedAtMs int64             `json:"fetchedAtMs"`
	Source      string            `json:"source"`
	Data        map[string]string `json:"data"`
}

func EncodeSnapshot(s Snapshot) ([]byte, error) {
	b, err := json.Marshal(persistedSnapshot{
		FetchedAtMs: s.FetchedAt.UnixMilli(),
		Source:      s.Source,
		Data:        s.fields,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return b, nil
}

func DecodeSnapshot(b []byte) (Snapshot, error) {
	var p persistedSnapshot
	if err := json.Unmarshal(b, &p); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrSnapshotInvalid, err)
	}
	if p.FetchedAtMs <= 0 || p.Data == nil {
		return Snapshot{}, fmt.Errorf("%w: missing fetchedAtMs or data", ErrSnapshotInvalid)
	}
	return NewSnapshot(time.UnixMilli(p.FetchedAtMs).UTC(), p.Source, p.Data), nil
}
