package article

import "time"

type Classification string

const (
	InRange     Classification = "in_range"
	OutOfRange  Classification = "out_of_range"
	UndatedKept Classification = "undated_kept"
)

// Window is the reporting date range [End-days, End] in the reference
// timezone.
type Window struct {
	Start time.Time
	End   time.Time
}

func NewWindow(now time.Time, days int, loc *time.Location) Window {
	end := now.In(loc)
	return Window{
		Start: end.Add(-time.Duration(days) * 24 * time.Hour),
		End:   end,
	}
}

// Classify places an article's publication date relative to the window. A
// missing date never drops the article: it is kept and counted separately.
func (w Window) Classify(publishedAt *time.Time) Classification {
	if publishedAt == nil {
		return UndatedKept
	}
	t := *publishedAt
	if t.Before(w.Start) || t.After(w.End) {
		return OutOfRange
	}
	return InRange
}
