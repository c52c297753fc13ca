package gantt

import (
	"math"
	"sort"
	"time"

	"github.com/tobiasvance/remedy/internal/domain"
)

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

const (
	// minTaskWidthPct keeps zero/negative-duration tasks visible.
	minTaskWidthPct = 2.0
	// milestoneMarkerPct is the fixed thin marker for single-date milestones.
	milestoneMarkerPct = 1.0
)

// Bar is one positioned item on the normalized [0,100] horizontal axis.
type Bar struct {
	ID           string
	Name         string
	LeftPercent  float64
	WidthPercent float64
	IsMilestone  bool
	IsCritical   bool
}

// Tick is a header boundary marker for the chosen granularity.
type Tick struct {
	Label       string
	LeftPercent float64
}

// Layout is the full renderable projection; it carries no rendering
// technology of its own.
type Layout struct {
	Bars  []Bar
	Ticks []Tick
	// TodayPercent is nil when the clock falls outside the timeline range.
	TodayPercent *float64
}

// Project maps the timeline's tasks and milestones onto a normalized
// horizontal axis. Granularity affects only tick generation; bar math always
// runs against the full date range. A non-positive date range is a
// configuration error, never a division by zero.
func Project(tl domain.Timeline, tasks []domain.Task, milestones []domain.Milestone, g Granularity, now time.Time) (*Layout, error) {
	start, end := tl.StartDate, tl.TargetCompletion
	total := end.Sub(start)
	if total <= 0 {
		return nil, &domain.ValidationError{Field: "target_completion", Msg: "must be after start_date"}
	}

	layout := &Layout{}

	for _, t := range tasks {
		itemStart := t.CreatedAt
		itemEnd := itemStart
		if t.DueDate != nil {
			itemEnd = *t.DueDate
		}

		// Keep the left edge far enough in that the width floor survives
		// clamping for tasks starting at or past the timeline's end.
		left := math.Min(percentOf(itemStart, start, total), 100-minTaskWidthPct)
		width := float64(itemEnd.Sub(itemStart)) / float64(total) * 100
		width = math.Max(width, minTaskWidthPct)
		if left+width > 100 {
			width = 100 - left
		}

		layout.Bars = append(layout.Bars, Bar{
			ID:           t.ID,
			Name:         t.Title,
			LeftPercent:  left,
			WidthPercent: width,
			IsCritical:   tl.OnCriticalPath(t.ID),
		})
	}

	for _, m := range milestones {
		left := math.Min(percentOf(m.TargetDate, start, total), 100-milestoneMarkerPct)
		width := milestoneMarkerPct
		layout.Bars = append(layout.Bars, Bar{
			ID:           m.ID,
			Name:         m.Name,
			LeftPercent:  left,
			WidthPercent: width,
			IsMilestone:  true,
		})
	}

	sort.SliceStable(layout.Bars, func(i, j int) bool {
		if layout.Bars[i].LeftPercent != layout.Bars[j].LeftPercent {
			return layout.Bars[i].LeftPercent < layout.Bars[j].LeftPercent
		}
		return layout.Bars[i].ID < layout.Bars[j].ID
	})

	layout.Ticks = buildTicks(start, end, total, g)

	if !now.Before(start) && !now.After(end) {
		pct := percentOf(now, start, total)
		layout.TodayPercent = &pct
	}

	return layout, nil
}

func percentOf(t, start time.Time, total time.Duration) float64 {
	pct := float64(t.Sub(start)) / float64(total) * 100
	return domain.ClampFloat(pct, 0, 100)
}

// buildTicks emits boundary markers from the first granularity boundary at
// or after start up to end.
func buildTicks(start, end time.Time, total time.Duration, g Granularity) []Tick {
	var ticks []Tick
	for cursor := firstBoundary(start, g); !cursor.After(end); cursor = nextBoundary(cursor, g) {
		ticks = append(ticks, Tick{
			Label:       tickLabel(cursor, g),
			LeftPercent: percentOf(cursor, start, total),
		})
	}
	return ticks
}

func firstBoundary(start time.Time, g Granularity) time.Time {
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	switch g {
	case GranularityWeek:
		// Align to Monday.
		for day.Weekday() != time.Monday {
			day = day.AddDate(0, 0, 1)
		}
		return day
	case GranularityMonth:
		month := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
		if month.Before(start) {
			month = month.AddDate(0, 1, 0)
		}
		return month
	default:
		if day.Before(start) {
			day = day.AddDate(0, 0, 1)
		}
		return day
	}
}

func nextBoundary(cursor time.Time, g Granularity) time.Time {
	switch g {
	case GranularityWeek:
		return cursor.AddDate(0, 0, 7)
	case GranularityMonth:
		return cursor.AddDate(0, 1, 0)
	default:
		return cursor.AddDate(0, 0, 1)
	}
}

func tickLabel(cursor time.Time, g Granularity) string {
	if g == GranularityMonth {
		return cursor.Format("Jan 2006")
	}
	return cursor.Format("Jan 2")
}
