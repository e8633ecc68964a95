// Package format renders market figures for display.
package format

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NA is shown for absent figures.
const NA = "N/A"

var printer = message.NewPrinter(language.English)

// fixed renders v with exactly places decimals and grouped thousands.
func fixed(v float64, places int32) string {
	d := decimal.NewFromFloat(v)
	neg := d.IsNegative()
	s := d.Abs().StringFixed(places)

	intPart, frac, _ := strings.Cut(s, ".")
	if n, err := strconv.ParseInt(intPart, 10, 64); err == nil {
		intPart = printer.Sprintf("%d", n)
	}

	out := intPart
	if frac != "" {
		out += "." + frac
	}
	if neg && strings.Trim(out, "0.,") != "" {
		out = "-" + out
	}
	return out
}

// pricePlaces picks more decimals for smaller magnitudes.
func pricePlaces(v float64) int32 {
	a := v
	if a < 0 {
		a = -a
	}
	switch {
	case a < 0.01:
		return 8
	case a < 1:
		return 6
	case a < 10:
		return 4
	default:
		return 2
	}
}

// Price formats a token price: 8 decimals below 0.01, 6 below 1, 4 below 10,
// otherwise 2 with grouped thousands. Absent or zero prices render "0.00".
func Price(p *float64) string {
	if p == nil || *p == 0 {
		return "0.00"
	}
	return fixed(*p, pricePlaces(*p))
}

// Currency formats a dollar amount with precision chosen like Price, except
// that amounts of 1 and above always use 2 decimals.
func Currency(v *float64) string {
	if v == nil || *v == 0 {
		return "$0.00"
	}
	places := pricePlaces(*v)
	if places == 4 {
		places = 2
	}
	s := fixed(*v, places)
	if strings.HasPrefix(s, "-") {
		return "-$" + s[1:]
	}
	return "$" + s
}

// Compact formats large figures with K, M and B suffixes.
// 1234567 -> "1.23M"
func Compact(v *float64) string {
	if v == nil || *v == 0 {
		return "0"
	}
	n := *v
	a := n
	if a < 0 {
		a = -a
	}
	switch {
	case a >= 1e9:
		return fixed(n/1e9, 2) + "B"
	case a >= 1e6:
		return fixed(n/1e6, 2) + "M"
	case a >= 1e3:
		return fixed(n/1e3, 2) + "K"
	default:
		return fixed(n, 0)
	}
}

// Percent formats a signed percentage: "+1.23%", "-4.50%", or NA when absent.
func Percent(v *float64) string {
	if v == nil {
		return NA
	}
	s := decimal.NewFromFloat(*v).StringFixed(2)
	if !strings.HasPrefix(s, "-") {
		s = "+" + s
	}
	return s + "%"
}

// Rank formats a rank with its ordinal suffix, or NA for zero.
func Rank(r int) string {
	if r <= 0 {
		return NA
	}
	suffix := "th"
	switch r % 100 {
	case 11, 12, 13:
	default:
		switch r % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(r) + suffix
}

// Truncate shortens s to max runes, appending "...".
func Truncate(s string, max int) string {
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

// Ago renders the time elapsed since t in the largest whole unit.
func Ago(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	secs := int64(now.Sub(t) / time.Second)
	units := []struct {
		name string
		secs int64
	}{
		{"y", 31536000},
		{"mo", 2592000},
		{"w", 604800},
		{"d", 86400},
		{"h", 3600},
		{"m", 60},
		{"s", 1},
	}
	for _, u := range units {
		if n := secs / u.secs; n >= 1 {
			return strconv.FormatInt(n, 10) + u.name + " ago"
		}
	}
	return "just now"
}
