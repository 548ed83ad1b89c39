package rate

import (
	"fmt"
	"strings"
	"time"

	"fxbot/internal/domain"

	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

// ListingLimit caps the number of codes shown by /all.
const ListingLimit = 120

const timeLayout = "2006-01-02 15:04:05"

const (
	UsageText = "👋 Send a currency name or code to get the latest rates.\n\n" +
		"Examples:\n" +
		"  دلار\n" +
		"  2 usd\n" +
		"  eur 150\n" +
		"  sekke\n\n" +
		"/all lists every available code."
	NoSnapshotText = "⏳ Rates are not loaded yet, please try again shortly."
)

type Formatter struct {
	loc *time.Location
}

func (f *Formatter) timestamp(t time.Time) string {
	return t.In(f.loc).Format(timeLayout)
}

// Report renders unit rates and totals for one item.
func (f *Formatter) Report(q ParsedQuery, code string, quote domain.Quote, fetchedAt time.Time) string {
	title := strings.ToUpper(code)
	if q.ItemText != "" && q.ItemText != code {
		title = fmt.Sprintf("%s (%s)", q.ItemText, strings.ToUpper(code))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "💱 %s\n", title)
	fmt.Fprintf(&b, "Sell: %s\n", FormatGrouped(quote.Sell))
	fmt.Fprintf(&b, "Buy: %s\n\n", FormatGrouped(quote.Buy))
	fmt.Fprintf(&b, "× %s\n", q.Amount.String())
	fmt.Fprintf(&b, "Sell total: %s\n", FormatGrouped(quote.Sell.Mul(q.Amount)))
	fmt.Fprintf(&b, "Buy total: %s\n\n", FormatGrouped(quote.Buy.Mul(q.Amount)))
	fmt.Fprintf(&b, "🕒 %s", f.timestamp(fetchedAt))
	return b.String()
}

func (f *Formatter) NotFound(itemText string) string {
	return fmt.Sprintf("❓ No rate found for \"%s\".\nSend /all to see every available code.", itemText)
}

// Listing renders the header and at most ListingLimit code lines in sorted order.
func (f *Formatter) Listing(snap domain.Snapshot) string {
	codes := snap.Codes()

	var b strings.Builder
	fmt.Fprintf(&b, "📋 All rates (%d codes)\n", len(codes))
	fmt.Fprintf(&b, "🕒 %s\n", f.timestamp(snap.FetchedAt))
	if len(codes) == 0 {
		b.WriteString("\nNo rates available.")
		return b.String()
	}

	if len(codes) > ListingLimit {
		codes = codes[:ListingLimit]
	}
	b.WriteString("\n")
	for i, code := range codes {
		sell, buy := "-", "-"
		if q, ok := snap.Lookup(code); ok {
			sell, buy = FormatGrouped(q.Sell), FormatGrouped(q.Buy)
		}
		fmt.Fprintf(&b, "%s: %s | %s", strings.ToUpper(code), sell, buy)
		if i < len(codes)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// FormatGrouped rounds half away from zero and groups digits by three with commas.
func FormatGrouped(d decimal.Decimal) string {
	ac := accounting.Accounting{Symbol: "", Precision: 0, Thousand: ",", Decimal: "."}
	return ac.FormatMoneyDecimal(d.Round(0))
}

func NewFormatter(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.UTC
	}
	return &Formatter{loc: loc}
}
