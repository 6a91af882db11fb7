package booking

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fspruce/helpful-living/internal/httperr"
)

// Availability windows are stored as 4-digit zero-padded HHMM strings.
// They are times of day only, no timezone semantics apply.

// ComposeHHMM coerces an hour/minute pair into the stored HHMM form.
func ComposeHHMM(hour, min string) (string, error) {
	h, err := strconv.Atoi(strings.TrimSpace(hour))
	if err != nil || h < 0 || h > 23 {
		return "", httperr.ErrBusiness("invalid_time")
	}

	m, err := strconv.Atoi(strings.TrimSpace(min))
	if err != nil || m < 0 || m > 59 {
		return "", httperr.ErrBusiness("invalid_time")
	}

	return fmt.Sprintf("%02d%02d", h, m), nil
}

// WindowOrdered reports whether latest falls strictly after earliest.
// Both arguments must already be HHMM strings, so a lexicographic
// comparison is exact.
func WindowOrdered(earliest, latest string) bool {
	return latest > earliest
}

// FormatHHMM renders a stored HHMM string as HH:MM for display.
func FormatHHMM(hhmm string) string {
	if len(hhmm) != 4 {
		return hhmm
	}
	return hhmm[:2] + ":" + hhmm[2:]
}
