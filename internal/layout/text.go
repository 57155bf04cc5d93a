package layout

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jwnbm/familytree/internal/i18n"
	"github.com/jwnbm/familytree/internal/tree"
)

// Event node sizing, slightly tighter than person nodes.
const (
	eventFontSize   = 13.0
	eventPaddingV   = 16.0
	eventNodeHeight = eventFontSize + eventPaddingV
	eventCharWidth  = 13.0
	eventPaddingH   = 20.0
	eventMinWidth   = 120.0
	eventMaxWidth   = 250.0
)

// referenceYear is the fixed "current" year used when computing the age of a
// living person. Ages are naive year differences, not calendar arithmetic.
const referenceYear = 2026

// PersonLabel returns the canvas label for a person, "Unknown" for an
// absent id.
func PersonLabel(t *tree.FamilyTree, id tree.PersonID) string {
	if p := t.Persons[id]; p != nil {
		return p.Name
	}
	return "Unknown"
}

// yearOf extracts the leading year from a "YYYY-MM-DD"-style string.
func yearOf(date string) (int, bool) {
	head, _, _ := strings.Cut(date, "-")
	year, err := strconv.Atoi(head)
	return year, err == nil
}

// ageOf computes end year minus birth year. endDate == nil means the person
// is alive and the reference year is used.
func ageOf(birth string, endDate *string) (int, bool) {
	birthYear, ok := yearOf(birth)
	if !ok {
		return 0, false
	}
	endYear := referenceYear
	if endDate != nil {
		endYear, ok = yearOf(*endDate)
		if !ok {
			return 0, false
		}
	}
	return endYear - birthYear, true
}

// PersonTooltip builds the localized hover text for a person: name, birth
// date with computed age, death information, and memo.
func PersonTooltip(t *tree.FamilyTree, id tree.PersonID, lang i18n.Language) string {
	p := t.Persons[id]
	if p == nil {
		return "Unknown"
	}
	get := func(key string) string { return i18n.Lookup(lang, key, nil) }

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", get("tooltip_name"), p.Name)

	if p.Birth != nil && *p.Birth != "" {
		fmt.Fprintf(&b, "\n%s: %s", get("tooltip_birth"), *p.Birth)
		if p.Deceased {
			if age, ok := ageOf(*p.Birth, p.Death); ok {
				fmt.Fprintf(&b, " (%s %d%s) ", get("tooltip_died_at"), age, get("tooltip_age"))
			}
		} else if age, ok := ageOf(*p.Birth, nil); ok {
			fmt.Fprintf(&b, " (%d%s)", age, get("tooltip_age"))
		}
	}

	if p.Deceased {
		if p.Death != nil && *p.Death != "" {
			fmt.Fprintf(&b, "\n%s: %s", get("tooltip_death"), *p.Death)
		} else {
			fmt.Fprintf(&b, "\n%s: %s", get("tooltip_deceased"), get("tooltip_yes"))
		}
	}

	if p.Memo != "" {
		fmt.Fprintf(&b, "\n%s: %s", get("tooltip_memo"), p.Memo)
	}
	return b.String()
}

// EventNodeSize estimates the rendered size of an event node. An empty name
// falls back to the localized "new event" placeholder.
func EventNodeSize(eventName string, lang i18n.Language) (width, height float32) {
	text := eventName
	if text == "" {
		text = i18n.Lookup(lang, "new_event", nil)
	}
	width = float32(utf8.RuneCountInString(text))*eventCharWidth + eventPaddingH
	if width < eventMinWidth {
		width = eventMinWidth
	}
	if width > eventMaxWidth {
		width = eventMaxWidth
	}
	return width, eventNodeHeight
}

// EventScreenRect maps one event into screen space for the given camera.
func EventScreenRect(e *tree.Event, origin tree.Point, zoom float32, pan tree.Point, lang i18n.Language) Rect {
	w, h := EventNodeSize(e.Name, lang)
	pos := toScreen(e.Position, origin, zoom, pan)
	return Rect{X: pos.X, Y: pos.Y, W: w * zoom, H: h * zoom}
}

// EventScreenRects maps every event into screen space.
func EventScreenRects(events map[tree.EventID]*tree.Event, origin tree.Point, zoom float32, pan tree.Point, lang i18n.Language) map[tree.EventID]Rect {
	rects := make(map[tree.EventID]Rect, len(events))
	for id, e := range events {
		rects[id] = EventScreenRect(e, origin, zoom, pan, lang)
	}
	return rects
}
