package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkHappinessCrash BookmarkType = "happiness_crash"
	BookmarkBusyDay        BookmarkType = "busy_day"
	BookmarkNeglect        BookmarkType = "neglect"
	BookmarkThriving       BookmarkType = "thriving"
	BookmarkCareerChosen   BookmarkType = "career_chosen"
	BookmarkPromotion      BookmarkType = "promotion"
)

const (
	thrivingHappiness = 75
	thrivingDays      = 5
	neglectHunger     = 20
	neglectEnergy     = 10
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Day         int          `csv:"day"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"day", b.Day,
		"description", b.Description,
	)
}

// BookmarkDetector detects notable days in a pet's life.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []DayStats
	historySize int
	historyIdx  int
	historyFull bool

	last        *DayStats
	thrivingRun int
	neglected   bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:     make([]DayStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest day and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats DayStats) []Bookmark {
	var bookmarks []Bookmark
	add := func(b *Bookmark) {
		if b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	add(bd.checkHappinessCrash(stats))
	add(bd.checkBusyDay(stats))
	add(bd.checkNeglect(stats))
	add(bd.checkThriving(stats))
	add(bd.checkCareer(stats))

	bd.addToHistory(stats)
	bd.last = &stats
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats DayStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []DayStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkHappinessCrash(stats DayStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}
	var sum float64
	for _, h := range history {
		sum += h.HappinessMean
	}
	avg := sum / float64(len(history))
	if avg == 0 {
		return nil
	}

	drop := 1 - stats.HappinessMean/avg
	if drop > 0.30 && avg-stats.HappinessMean > 10 {
		return &Bookmark{
			Type:        BookmarkHappinessCrash,
			Day:         stats.Day,
			Description: fmt.Sprintf("Happiness fell %.0f%% to %.1f from a %.1f average", drop*100, stats.HappinessMean, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkBusyDay(stats DayStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}
	var total int
	for _, h := range history {
		total += h.Actions
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 {
		return nil
	}

	if float64(stats.Actions) > avg*2 && stats.Actions >= 5 {
		return &Bookmark{
			Type:        BookmarkBusyDay,
			Day:         stats.Day,
			Description: fmt.Sprintf("%d actions is %.1fx the average (%.1f)", stats.Actions, float64(stats.Actions)/avg, avg),
		}
	}
	return nil
}

// checkNeglect fires once when a need bottoms out and re-arms after recovery.
func (bd *BookmarkDetector) checkNeglect(stats DayStats) *Bookmark {
	if stats.Samples == 0 {
		return nil
	}
	low := stats.HungerP10 < neglectHunger || stats.EnergyP10 < neglectEnergy
	if !low {
		bd.neglected = false
		return nil
	}
	if bd.neglected {
		return nil
	}
	bd.neglected = true
	return &Bookmark{
		Type:        BookmarkNeglect,
		Day:         stats.Day,
		Description: fmt.Sprintf("Needs ran low (hunger p10 %.1f, energy p10 %.1f)", stats.HungerP10, stats.EnergyP10),
	}
}

func (bd *BookmarkDetector) checkThriving(stats DayStats) *Bookmark {
	if stats.HappinessMean < thrivingHappiness {
		bd.thrivingRun = 0
		return nil
	}
	bd.thrivingRun++
	if bd.thrivingRun == thrivingDays {
		return &Bookmark{
			Type:        BookmarkThriving,
			Day:         stats.Day,
			Description: fmt.Sprintf("Happiness above %d for %d days", thrivingHappiness, thrivingDays),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkCareer(stats DayStats) *Bookmark {
	if stats.Career == "" || bd.last == nil {
		return nil
	}
	if bd.last.Career == "" {
		return &Bookmark{
			Type:        BookmarkCareerChosen,
			Day:         stats.Day,
			Description: fmt.Sprintf("Became a %s", stats.Career),
		}
	}
	if stats.CareerLevel > bd.last.CareerLevel {
		return &Bookmark{
			Type:        BookmarkPromotion,
			Day:         stats.Day,
			Description: fmt.Sprintf("%s reached level %d", stats.Career, stats.CareerLevel),
		}
	}
	return nil
}
