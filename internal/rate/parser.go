package rate

import (
	"strings"

	"fxbot/internal/domain"

	"github.com/shopspring/decimal"
)

const defaultItem = "usd"

type ParsedQuery struct {
	Amount   decimal.Decimal
	ItemText string
}

// ParseQuery accepts "<qty> <item>" and "<item> <qty>". Only the first and the last
// token are checked for a quantity; everything else is item text.
func ParseQuery(normalized string) ParsedQuery {
	tokens := strings.Fields(normalized)
	if len(tokens) == 0 {
		return ParsedQuery{Amount: decimal.NewFromInt(1), ItemText: ""}
	}

	if amount, ok := domain.ParseNumber(tokens[0]); ok {
		item := strings.Join(tokens[1:], " ")
		if item == "" {
			item = defaultItem
		}
		return ParsedQuery{Amount: clampAmount(amount), ItemText: item}
	}

	if len(tokens) >= 2 {
		if amount, ok := domain.ParseNumber(tokens[len(tokens)-1]); ok {
			return ParsedQuery{Amount: clampAmount(amount), ItemText: strings.Join(tokens[:len(tokens)-1], " ")}
		}
	}

	return ParsedQuery{Amount: decimal.NewFromInt(1), ItemText: normalized}
}

func clampAmount(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
