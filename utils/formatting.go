package utils

import (
	"strconv"
	"strings"

	"github.com/sosodev/duration"
)

// Do not escape ampersands, because they are not parsed by Telegram
var htmlTelegramEscaper = strings.NewReplacer(
	`'`, "&#39;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&#34;",
)

func Escape(s string) string {
	return htmlTelegramEscaper.Replace(s)
}

func EmbedGUID(guid string) string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString("(<code>")
	sb.WriteString(guid)
	sb.WriteString("</code>)")
	return sb.String()
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

// HumanizeDuration renders d like "1d 2h 3m 4s", omitting zero parts.
func HumanizeDuration(d *duration.Duration) string {
	var parts []string

	add := func(v float64, unit string) {
		if n := int(v); n > 0 {
			parts = append(parts, strconv.Itoa(n)+unit)
		}
	}

	add(d.Years, "y")
	add(d.Months, "M")
	add(d.Weeks, "w")
	add(d.Days, "d")
	add(d.Hours, "h")
	add(d.Minutes, "m")
	add(d.Seconds, "s")

	if len(parts) == 0 {
		return "0s"
	}
	return strings.Join(parts, " ")
}

func FormatThousand(n int64) string {
	in := strconv.FormatInt(n, 10)
	numOfDigits := len(in)
	if n < 0 {
		numOfDigits--
	}
	numOfCommas := (numOfDigits - 1) / 3

	out := make([]byte, len(in)+numOfCommas)
	if n < 0 {
		in, out[0] = in[1:], '-'
	}

	for i, j, k := len(in)-1, len(out)-1, 0; ; i, j = i-1, j-1 {
		out[j] = in[i]
		if i == 0 {
			return string(out)
		}
		if k++; k == 3 {
			j, k = j-1, 0
			out[j] = '.'
		}
	}
}
