package sales

import "time"

// DateLayout is the calendar day format used for trend keys
const DateLayout = "2006-01-02"

// Window is a half-open time range [Start, End)
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Windows are the aggregation ranges anchored to one as-of time
type Windows struct {
	Today        Window
	Month        Window
	Year         Window
	PreviousYear Window
	Trend        Window
}

// Midnight truncates t to the start of its calendar day in t's location
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WindowsFor builds the windows for asOf. The trend window covers trendDays
// calendar days ending with asOf's day.
func WindowsFor(asOf time.Time, trendDays int) Windows {
	if trendDays <= 0 {
		trendDays = DefaultTrendDays
	}
	loc := asOf.Location()
	today := Midnight(asOf)
	y, m, _ := today.Date()

	return Windows{
		Today:        Window{Start: today, End: today.AddDate(0, 0, 1)},
		Month:        Window{Start: time.Date(y, m, 1, 0, 0, 0, 0, loc), End: time.Date(y, m+1, 1, 0, 0, 0, 0, loc)},
		Year:         Window{Start: time.Date(y, 1, 1, 0, 0, 0, 0, loc), End: time.Date(y+1, 1, 1, 0, 0, 0, 0, loc)},
		PreviousYear: Window{Start: time.Date(y-1, 1, 1, 0, 0, 0, 0, loc), End: time.Date(y, 1, 1, 0, 0, 0, 0, loc)},
		Trend:        Window{Start: today.AddDate(0, 0, -(trendDays - 1)), End: today.AddDate(0, 0, 1)},
	}
}

// Span returns the smallest period covering every window
func (w Windows) Span() Period {
	from := w.PreviousYear.Start
	if w.Trend.Start.Before(from) {
		from = w.Trend.Start
	}
	return Period{From: from, To: w.Year.End}
}

// Period bounds a fetch. A zero From or To leaves that side open.
type Period struct {
	From time.Time
	To   time.Time
}

func (p Period) Contains(t time.Time) bool {
	if !p.From.IsZero() && t.Before(p.From) {
		return false
	}
	if !p.To.IsZero() && !t.Before(p.To) {
		return false
	}
	return true
}

// Union returns the smallest period covering p and o
func (p Period) Union(o Period) Period {
	out := p
	if p.From.IsZero() || o.From.IsZero() {
		out.From = time.Time{}
	} else if o.From.Before(p.From) {
		out.From = o.From
	}
	if p.To.IsZero() || o.To.IsZero() {
		out.To = time.Time{}
	} else if o.To.After(p.To) {
		out.To = o.To
	}
	return out
}
