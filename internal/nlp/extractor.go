package nlp

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/vansh-agarwal/Agent/internal/models"
)

// Entity extraction patterns. Time patterns are matched against the lowercased
// utterance; name-shaped patterns (attendees, location) keep the original case.
var (
	reRelativeDay  = regexp.MustCompile(`(?i)(today|tomorrow|yesterday)`)
	reWeekday      = regexp.MustCompile(`(?i)(monday|tuesday|wednesday|thursday|friday|saturday|sunday)`)
	reRelativeTime = regexp.MustCompile(`(?i)in\s+(\d+)\s+(minute|hour|day|week|month)s?`)
	reAbsoluteTime = regexp.MustCompile(`(?i)(?:at\s+)?(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)
	reDate         = regexp.MustCompile(`(\d{1,2})[/\-](\d{1,2})(?:[/\-](\d{2,4}))?`)
	reEmail        = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	reAttendees    = regexp.MustCompile(`(?:with|@)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`)
	reDuration     = regexp.MustCompile(`(?:for\s+)?(\d+)\s+(minute|hour)s?`)
	reLocation     = regexp.MustCompile(`(?:at|in)\s+([A-Z][A-Za-z\s]+?)(?:\s+(?:on|at|with|for|$))`)
	reSpaces       = regexp.MustCompile(`\s+`)
)

// Ordered: the first matching keyword wins.
var priorityKeywords = []struct {
	priority models.TaskPriority
	words    []string
}{
	{models.PriorityUrgent, []string{"urgent", "asap", "critical", "emergency", "important"}},
	{models.PriorityHigh, []string{"high priority", "important", "high"}},
	{models.PriorityMedium, []string{"medium", "normal"}},
	{models.PriorityLow, []string{"low priority", "low", "whenever"}},
}

// Explicit title markers, tried in order before the strip-everything fallback.
var titleExplicit = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:called|titled|named)\s+["']?([^"']+?)["']?\s*(?:at|on|for|with|tomorrow|today|$)`),
	regexp.MustCompile(`(?i)(?:called|titled|named)\s+["']?(.+?)["']?$`),
	regexp.MustCompile(`(?i)about\s+["']?([^"']+?)["']?\s*(?:at|on|for|with|tomorrow|today|$)`),
	regexp.MustCompile(`(?i)meeting\s+(?:with\s+)?["']?([A-Z][a-zA-Z\s]+)["']?\s*(?:at|on|for|tomorrow|today|$)`),
}

// Intent-trigger phrases removed from the utterance when deriving a title.
var titleStrip = []*regexp.Regexp{
	regexp.MustCompile(`(?i)create\s+(?:a\s+)?task\s+(?:to\s+)?`),
	regexp.MustCompile(`(?i)add\s+(?:a\s+)?task\s+(?:to\s+)?`),
	regexp.MustCompile(`(?i)add\s+(?:a\s+)?task\s+(?:called|titled|named)\s+`),
	regexp.MustCompile(`(?i)schedule\s+(?:a\s+)?(?:meeting|event)\s+(?:about|for|to\s+discuss|called|titled|named)?\s*`),
	regexp.MustCompile(`(?i)create\s+(?:an?\s+)?event\s+(?:called|titled|named)?\s*`),
	regexp.MustCompile(`(?i)remind\s+me\s+to\s+`),
	regexp.MustCompile(`(?i)i\s+need\s+to\s+`),
	regexp.MustCompile(`(?i)todo:\s*`),
	regexp.MustCompile(`(?i)task:\s*`),
}

// Applied in this order when stripping time expressions out of a title.
var timeStrip = []*regexp.Regexp{
	reAbsoluteTime,
	reRelativeDay,
	reWeekday,
	reRelativeTime,
	reDate,
}

var priorityStrip []*regexp.Regexp

func init() {
	for _, row := range priorityKeywords {
		for _, w := range row.words {
			priorityStrip = append(priorityStrip, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(w)+`\b`))
		}
	}
}

var weekdayIndex = map[string]int{
	"monday": 0, "tuesday": 1, "wednesday": 2, "thursday": 3,
	"friday": 4, "saturday": 5, "sunday": 6,
}

// Extractor pulls structured entities out of free text. It never fails; absent
// entities are simply omitted from the result map.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(text string, intent models.IntentType, now time.Time) map[string]any {
	lower := strings.ToLower(strings.TrimSpace(text))
	entities := map[string]any{}

	if timeInfo := e.extractTime(lower, now); timeInfo != nil {
		for k, v := range timeInfo {
			entities[k] = v
		}
	}

	if p, ok := extractPriority(lower); ok {
		entities["priority"] = string(p)
	}

	if emails := reEmail.FindAllString(text, -1); len(emails) > 0 {
		entities["emails"] = emails
	}

	if matches := reAttendees.FindAllStringSubmatch(text, -1); len(matches) > 0 {
		attendees := make([]string, 0, len(matches))
		for _, m := range matches {
			attendees = append(attendees, m[1])
		}
		entities["attendees"] = attendees
	}

	if m := reDuration.FindStringSubmatch(lower); m != nil {
		amount, _ := strconv.Atoi(m[1])
		if m[2] == "hour" {
			amount *= 60
		}
		entities["duration"] = amount
	}

	entities["title"] = extractTitle(text)

	if intent == models.IntentCreateEvent {
		if m := reLocation.FindStringSubmatch(text); m != nil {
			entities["location"] = strings.TrimSpace(m[1])
		}
	}

	return entities
}

// extractTime resolves a date in order: relative day, named weekday, relative
// offset, then an absolute clock time merged onto whatever date was already
// resolved (default: now). A month is approximated as 30 days; tests pin the
// constant.
func (e *Extractor) extractTime(text string, now time.Time) map[string]any {
	var date time.Time
	haveDate := false

	if m := reRelativeDay.FindStringSubmatch(text); m != nil {
		switch m[1] {
		case "today":
			date = now
		case "tomorrow":
			date = now.AddDate(0, 0, 1)
		case "yesterday":
			date = now.AddDate(0, 0, -1)
		}
		haveDate = true
	}

	if m := reWeekday.FindStringSubmatch(text); m != nil {
		target := weekdayIndex[m[1]]
		current := (int(now.Weekday()) + 6) % 7 // Monday = 0
		ahead := ((target-current)%7 + 7) % 7
		if ahead == 0 {
			ahead = 7
		}
		date = now.AddDate(0, 0, ahead)
		haveDate = true
	}

	if m := reRelativeTime.FindStringSubmatch(text); m != nil {
		amount, _ := strconv.Atoi(m[1])
		switch m[2] {
		case "minute":
			date = now.Add(time.Duration(amount) * time.Minute)
		case "hour":
			date = now.Add(time.Duration(amount) * time.Hour)
		case "day":
			date = now.AddDate(0, 0, amount)
		case "week":
			date = now.AddDate(0, 0, 7*amount)
		case "month":
			date = now.AddDate(0, 0, 30*amount)
		}
		haveDate = true
	}

	if m := reAbsoluteTime.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		switch m[3] {
		case "pm":
			if hour < 12 {
				hour += 12
			}
		case "am":
			if hour == 12 {
				hour = 0
			}
		}
		// A bare number can match here; only merge a plausible clock time.
		if hour <= 23 && minute <= 59 {
			base := now
			if haveDate {
				base = date
			}
			date = time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, base.Location())
			haveDate = true
		}
	}

	if !haveDate {
		return nil
	}
	return map[string]any{
		"datetime": date.Format(time.RFC3339),
		"date":     date.Format("2006-01-02"),
	}
}

func extractPriority(text string) (models.TaskPriority, bool) {
	for _, row := range priorityKeywords {
		for _, w := range row.words {
			if strings.Contains(text, w) {
				return row.priority, true
			}
		}
	}
	return "", false
}

func extractTitle(text string) string {
	for _, re := range titleExplicit {
		if m := re.FindStringSubmatch(text); m != nil {
			if t := strings.TrimSpace(m[1]); len(t) > 2 {
				return t
			}
		}
	}

	title := text
	for _, re := range titleStrip {
		title = re.ReplaceAllString(title, "")
	}
	for _, re := range timeStrip {
		title = re.ReplaceAllString(title, "")
	}
	for _, re := range priorityStrip {
		title = re.ReplaceAllString(title, "")
	}

	title = strings.TrimSpace(reSpaces.ReplaceAllString(title, " "))
	title = strings.TrimSpace(strings.Trim(title, ".,;:!?"))
	if title == "" {
		return "Untitled"
	}
	return title
}
