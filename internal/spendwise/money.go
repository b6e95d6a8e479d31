package spendwise

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spendwise/spendwise-e2e/internal/errs"
)

// FormatAmount renders signed centavos as the display currency string,
// e.g. -150000 → "-₱ 1,500.00". The exact shape (sign, peso sign, space,
// comma-grouped integer part, two decimals) is asserted by the UI suite.
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	whole := cents / 100
	frac := cents % 100
	return fmt.Sprintf("%s₱ %s.%02d", sign, groupThousands(whole), frac)
}

func groupThousands(n int64) string {
	digits := strconv.FormatInt(n, 10)
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// ParseAmount converts a user-entered peso amount ("1500", "1,500.50")
// to centavos.
func ParseAmount(raw string) (int64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	negative := strings.HasPrefix(cleaned, "-")
	cleaned = strings.TrimPrefix(cleaned, "-")
	cleaned = strings.TrimPrefix(cleaned, "₱")
	cleaned = strings.TrimSpace(cleaned)
	if negative {
		cleaned = "-" + cleaned
	}
	if cleaned == "" {
		return 0, errs.New(errs.InvalidArgument, "amount must not be empty")
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, errs.Wrap(errs.InvalidArgument, fmt.Sprintf("invalid amount %q", raw), err)
	}
	return int64(math.Round(value * 100)), nil
}
