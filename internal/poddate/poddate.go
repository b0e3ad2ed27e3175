// Package poddate formats and parses the dd-mmm-yyyy date token used in pod
// names and start dates (for example "06-Feb-2026").
package poddate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Layout documents the external date representation.
const Layout = "dd-mmm-yyyy"

// ErrInvalidDate indicates a start date string that does not match Layout.
var ErrInvalidDate = errors.New("invalid pod date")

var monthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

var monthIndex = func() map[string]time.Month {
	index := make(map[string]time.Month, len(monthNames))
	for i, name := range monthNames {
		index[name] = time.Month(i + 1)
	}
	return index
}()

// Format renders a calendar date as dd-mmm-yyyy with a zero-padded day and a
// 3-letter English month abbreviation.
func Format(date time.Time) string {
	return fmt.Sprintf("%02d-%s-%d", date.Day(), monthNames[date.Month()-1], date.Year())
}

// Parse reads a dd-mmm-yyyy string back into a calendar date. The result is
// midnight UTC on the named day; Format(Parse(s)) reproduces s for any valid
// input.
func Parse(value string) (time.Time, error) {
	parts := strings.Split(value, "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q is not %s", ErrInvalidDate, value, Layout)
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: day %q: %v", ErrInvalidDate, parts[0], err)
	}

	month, ok := monthIndex[parts[1]]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: unrecognized month %q", ErrInvalidDate, parts[1])
	}

	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: year %q: %v", ErrInvalidDate, parts[2], err)
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
}
