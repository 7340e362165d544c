package formatter

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// FormatDate renders a date as YYYY-MM-DD, or a dash when unset.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format(dateLayout)
}

// FormatMoney renders a cent amount as dollars, e.g. 123456 -> "$1,234.56".
func FormatMoney(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	dollars := cents / 100
	rem := cents % 100
	return fmt.Sprintf("%s$%s.%02d", sign, groupThousands(dollars), rem)
}

func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}

// FormatDays renders a day count with its unit.
func FormatDays(days int) string {
	if days == 1 || days == -1 {
		return fmt.Sprintf("%d day", days)
	}
	return fmt.Sprintf("%d days", days)
}
