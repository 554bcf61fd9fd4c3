package humanize

import "fmt"

// SI prefixes only: link and capture rates are quoted in powers of 1000.
const siUnitBase = 1000

var siUnits = []string{"", "K", "M", "G", "T", "P", "E"}

func Bytes(n uint64) string { return FormatSIUnit(float64(n), "B") }

func Count(n uint64) string {
	if n < siUnitBase {
		return fmt.Sprintf("%d", n)
	}
	return FormatSIUnit(float64(n), "")
}

func BitsRate(bps float64) string { return FormatSIUnit(bps, "bps") }

func PacketsRate(pps float64) string { return FormatSIUnit(pps, "pps") }

func FormatSIUnit(v float64, suffix string) string {
	if v < siUnitBase {
		return fmt.Sprintf("%.0f %s", v, suffix)
	}
	for i := 1; i < len(siUnits); i++ {
		v /= siUnitBase
		if v < siUnitBase || i == len(siUnits)-1 {
			return fmt.Sprintf("%.1f %s%s", v, siUnits[i], suffix)
		}
	}
	return ""
}
