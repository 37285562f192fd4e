package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/dkgw-corpus/dkgw/internal/report"
)

// Date strings are checked structurally. Locale-aware parsing of zone names
// differs between operating systems, so the zone name, zone offset and year
// are each located by pattern instead.
var (
	zoneNamePattern   = regexp.MustCompile(`[A-Z]{3}`)
	zoneOffsetPattern = regexp.MustCompile(`[+-]\d{4}`)
	yearPattern       = regexp.MustCompile(`[\s\p{Zs}](\d{4})`)
)

const (
	msgMissingZoneName   = "Missing timezone as string from meta date: %s"
	msgMissingZoneOffset = "Missing timezone as offset from meta date: %s"
	msgMissingYear       = "Missing year in meta date: %s"
	msgFutureYear        = "Year %d is higher than current year %d in meta date: %s"
)

// CheckDate validates the structure of a metadata date string such as
// "Tue, 15 Mar 2022 10:00:00 CET +0100". Each sub-check runs regardless of the
// others. now supplies the current year.
func CheckDate(s string, now time.Time) *report.Report {
	r := report.New("")

	if zoneNamePattern.MatchString(s) {
		r.Pass(1)
	} else {
		r.Fail(fmt.Sprintf(msgMissingZoneName, s))
	}

	if zoneOffsetPattern.MatchString(s) {
		r.Pass(1)
	} else {
		r.Fail(fmt.Sprintf(msgMissingZoneOffset, s))
	}

	m := yearPattern.FindStringSubmatch(s)
	if m == nil {
		r.Fail(fmt.Sprintf(msgMissingYear, s))
		return r
	}
	year, _ := strconv.Atoi(m[1])
	if currentYear := now.Year(); year > currentYear {
		r.Fail(fmt.Sprintf(msgFutureYear, year, currentYear, s))
	} else {
		r.Pass(1)
	}

	return r
}
