package mapper

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// All monetary and date fields on the view model go through these helpers so
// there is exactly one formatting rule per concern: tr-TR currency grouping
// and Europe/Istanbul display times.

var istanbul = loadIstanbul()

func loadIstanbul() *time.Location {
	loc, err := time.LoadLocation("Europe/Istanbul")
	if err != nil {
		// Istanbul has been UTC+3 year-round since 2016.
		return time.FixedZone("+03", 3*60*60)
	}
	return loc
}

var turkishMonths = [...]string{
	"Oca", "Şub", "Mar", "Nis", "May", "Haz",
	"Tem", "Ağu", "Eyl", "Eki", "Kas", "Ara",
}

// FormatTRY renders an amount as tr-TR Turkish lira, e.g. "1.234,56 ₺".
func FormatTRY(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	fixed := strconv.FormatFloat(amount, 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	return fmt.Sprintf("%s%s,%s ₺", sign, b.String(), fracPart)
}

// FormatCreatedDate renders an order timestamp as "02.01.2006 15:04" in
// Istanbul time.
func FormatCreatedDate(t time.Time) string {
	return t.In(istanbul).Format("02.01.2006 15:04")
}

// FormatDeliveryWindow renders the scheduled delivery slot as a one hour
// window, e.g. "02 Eyl (14:00-15:00)": start as given, end is start + 1h.
func FormatDeliveryWindow(start time.Time) string {
	s := start.In(istanbul)
	e := s.Add(time.Hour)
	return fmt.Sprintf("%02d %s (%s-%s)",
		s.Day(), turkishMonths[s.Month()-1], s.Format("15:04"), e.Format("15:04"))
}

// FormatCount renders an item count without trailing zeros ("2", "1.5").
func FormatCount(count float64) string {
	return strconv.FormatFloat(count, 'f', -1, 64)
}
