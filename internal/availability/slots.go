package availability

import "time"

// Generator defaults mirroring the student booking calendar.
const (
	DefaultWeeksAhead      = 8
	DefaultBlockMinutes    = 60
	DefaultMinBlockMinutes = 30
)

// Slot is a bookable quantized block on a concrete date.
type Slot struct {
	Date  time.Time `json:"date"`
	Day   Weekday   `json:"weekday"`
	Start int       `json:"start"`
	End   int       `json:"end"`
}

// SlotOptions tune quantized slot generation. Now must be anchored to the
// academy's operating timezone; the engine never reads an ambient clock.
type SlotOptions struct {
	Now             time.Time
	WeeksAhead      int
	BlockMinutes    int
	MinBlockMinutes int
}

func (o SlotOptions) withDefaults() SlotOptions {
	if o.WeeksAhead <= 0 {
		o.WeeksAhead = DefaultWeeksAhead
	}
	if o.BlockMinutes <= 0 {
		o.BlockMinutes = DefaultBlockMinutes
	}
	if o.MinBlockMinutes <= 0 {
		o.MinBlockMinutes = DefaultMinBlockMinutes
	}
	return o
}

// Slots walks a rolling horizon starting at the current week's Sunday and
// emits every quantized block that falls inside work hours and clears both
// breaks and bookings. Dates before today are skipped. Output is ordered by
// date then start time.
func (s *Schedule) Slots(opts SlotOptions) []Slot {
	opts = opts.withDefaults()
	today := truncateToDay(opts.Now)
	weekStart := today.AddDate(0, 0, -int(today.Weekday()))

	var slots []Slot
	for i := 0; i < opts.WeeksAhead*7; i++ {
		date := weekStart.AddDate(0, 0, i)
		if date.Before(today) {
			continue
		}
		day := WeekdayOf(date)
		if !s.IsWorkingDay(day) {
			continue
		}
		breaks := s.BreakIntervals(day)
		booked := s.BookedIntervals(date, "")
		for _, work := range s.WorkIntervals(day) {
			for _, block := range Quantize(work, opts.BlockMinutes, opts.MinBlockMinutes) {
				if overlapsAny(block, breaks) || overlapsAny(block, booked) {
					continue
				}
				slots = append(slots, Slot{Date: date, Day: day, Start: block.Start, End: block.End})
			}
		}
	}
	return slots
}

// DayOverview is one column of the coordinator weekly matrix. A holiday day
// carries no intervals at all.
type DayOverview struct {
	Date    time.Time  `json:"date"`
	Day     Weekday    `json:"weekday"`
	Holiday bool       `json:"holiday"`
	Free    []Interval `json:"free"`
	Breaks  []Interval `json:"breaks"`
	Classes []Interval `json:"classes"`
}

// Overview is the weekly matrix result: per-day maximal free intervals plus
// the padded minute bounds a caller can use to size a time axis.
type Overview struct {
	Days      []DayOverview `json:"days"`
	AxisStart int           `json:"axisStart"`
	AxisEnd   int           `json:"axisEnd"`
}

const axisPaddingMinutes = 30

// WeekOverview computes maximal free intervals for every date in the
// inclusive range. Non-working weekdays yield a holiday marker instead of
// interval math.
func (s *Schedule) WeekOverview(rangeStart, rangeEnd time.Time) Overview {
	overview := Overview{}
	minSeen, maxSeen := -1, -1
	touch := func(iv Interval) {
		if minSeen < 0 || iv.Start < minSeen {
			minSeen = iv.Start
		}
		if iv.End > maxSeen {
			maxSeen = iv.End
		}
	}

	for date := truncateToDay(rangeStart); !date.After(truncateToDay(rangeEnd)); date = date.AddDate(0, 0, 1) {
		day := WeekdayOf(date)
		if !s.IsWorkingDay(day) {
			overview.Days = append(overview.Days, DayOverview{Date: date, Day: day, Holiday: true})
			continue
		}
		breaks := s.BreakIntervals(day)
		booked := s.BookedIntervals(date, "")
		busy := make([]Interval, 0, len(breaks)+len(booked))
		busy = append(busy, breaks...)
		busy = append(busy, booked...)

		var free []Interval
		for _, work := range s.WorkIntervals(day) {
			touch(work)
			free = append(free, Subtract(work, busy)...)
		}
		for _, iv := range breaks {
			touch(iv)
		}
		for _, iv := range booked {
			touch(iv)
		}
		overview.Days = append(overview.Days, DayOverview{
			Date:    date,
			Day:     day,
			Free:    free,
			Breaks:  breaks,
			Classes: booked,
		})
	}

	if minSeen < 0 {
		overview.AxisStart, overview.AxisEnd = 0, 24*60
		return overview
	}
	overview.AxisStart = clampMinute(minSeen - axisPaddingMinutes)
	overview.AxisEnd = clampMinute(maxSeen + axisPaddingMinutes)
	return overview
}

func overlapsAny(iv Interval, others []Interval) bool {
	for _, other := range others {
		if iv.Overlaps(other) {
			return true
		}
	}
	return false
}

func clampMinute(m int) int {
	if m < 0 {
		return 0
	}
	if m > 24*60 {
		return 24 * 60
	}
	return m
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
