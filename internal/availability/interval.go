package availability

import (
	"fmt"
	"strconv"
	"strings"
)

// Interval is a half-open [Start, End) span of minutes since midnight.
type Interval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// IsValid reports whether the interval has positive length.
func (iv Interval) IsValid() bool {
	return iv.End > iv.Start
}

// Overlaps reports whether two half-open intervals share any minute.
// Intervals that merely touch at an endpoint do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// Contains reports whether other lies fully inside iv.
func (iv Interval) Contains(other Interval) bool {
	return other.Start >= iv.Start && other.End <= iv.End
}

// Duration returns the interval length in minutes.
func (iv Interval) Duration() int {
	return iv.End - iv.Start
}

func (iv Interval) String() string {
	return FormatClock(iv.Start) + "-" + FormatClock(iv.End)
}

// Subtract removes every busy interval from base and returns the maximal
// uncovered sub-intervals in ascending order. The result is independent of
// the order of busy entries.
func Subtract(base Interval, busy []Interval) []Interval {
	if !base.IsValid() {
		return nil
	}
	free := []Interval{base}
	for _, b := range busy {
		if !b.IsValid() {
			continue
		}
		next := make([]Interval, 0, len(free)+1)
		for _, cur := range free {
			if !cur.Overlaps(b) {
				next = append(next, cur)
				continue
			}
			if before := (Interval{Start: cur.Start, End: b.Start}); before.IsValid() {
				next = append(next, before)
			}
			if after := (Interval{Start: b.End, End: cur.End}); after.IsValid() {
				next = append(next, after)
			}
		}
		free = next
	}
	return free
}

// Quantize chops base into fixed blocks of blockMinutes starting at base.Start.
// A trailing partial block is kept only when it is at least minBlockMinutes
// long.
func Quantize(base Interval, blockMinutes, minBlockMinutes int) []Interval {
	if !base.IsValid() || blockMinutes <= 0 {
		return nil
	}
	var blocks []Interval
	for t := base.Start; t < base.End; t += blockMinutes {
		end := t + blockMinutes
		if end > base.End {
			end = base.End
		}
		if end-t < blockMinutes && end-t < minBlockMinutes {
			break
		}
		blocks = append(blocks, Interval{Start: t, End: end})
	}
	return blocks
}

// ParseClock converts a "HH:MM" wall-clock string into minutes since midnight.
// A trailing ":SS" component is tolerated and ignored.
func ParseClock(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("empty clock value")
	}
	parts := strings.Split(raw, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("malformed clock value %q", raw)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed clock value %q", raw)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed clock value %q", raw)
	}
	if hours < 0 || hours > 24 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("clock value %q out of range", raw)
	}
	total := hours*60 + minutes
	if total > 24*60 {
		return 0, fmt.Errorf("clock value %q out of range", raw)
	}
	return total, nil
}

// FormatClock renders minutes since midnight as zero-padded "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// parseInterval builds an Interval from boundary clock strings. It returns
// false for malformed or non-positive spans so callers can skip the entry.
func parseInterval(start, end string) (Interval, bool) {
	s, err := ParseClock(start)
	if err != nil {
		return Interval{}, false
	}
	e, err := ParseClock(end)
	if err != nil {
		return Interval{}, false
	}
	iv := Interval{Start: s, End: e}
	if !iv.IsValid() {
		return Interval{}, false
	}
	return iv, true
}
