package load

import (
	"sort"
	"strings"
	"time"
)

// Score contributions for the field scan. A load matching on all four
// scannable fields plus the recency bonus is clamped to 100.
const (
	fieldMatchPoints  = 25
	recencyNearBonus  = 15
	recencyWeekBonus  = 5
	exactIDMatchScore = 100
)

// Classify inspects free-form chat text against the load corpus and decides
// whether it is a lookup of one specific load, a broader load search, or
// general chat for the assistant. Deterministic given the same text, corpus
// and clock; no-match is a valid outcome, not an error.
func Classify(text string, corpus []Load, now func() time.Time) RoutingResult {
	if now == nil {
		now = time.Now
	}
	routing := RoutingResult{QueryType: QueryGeneralChat, Query: text}
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return routing
	}

	// Exact ID match wins outright.
	for _, l := range corpus {
		if tokens[strings.ToLower(l.ID)] {
			routing.QueryType = QuerySpecificLoad
			routing.Results = []SearchResult{{
				Load:        l,
				Score:       exactIDMatchScore,
				MatchReason: "Exact ID match",
			}}
			return routing
		}
	}

	// Keyword scan over broker, origin, destination and status.
	lower := strings.ToLower(text)
	ts := now()
	var results []SearchResult
	for _, l := range corpus {
		var matched []string
		if fieldMatches(tokens, l.Broker) {
			matched = append(matched, "broker")
		}
		if fieldMatches(tokens, l.Origin) {
			matched = append(matched, "origin")
		}
		if fieldMatches(tokens, l.Destination) {
			matched = append(matched, "destination")
		}
		if statusMatches(lower, l.Status) {
			matched = append(matched, "status")
		}
		if len(matched) == 0 {
			continue
		}
		score := len(matched) * fieldMatchPoints
		score += recencyBonus(ts, l.PickupTime)
		if score > 100 {
			score = 100
		}
		results = append(results, SearchResult{
			Load:        l,
			Score:       score,
			MatchReason: "Matches " + strings.Join(matched, ", "),
		})
	}
	if len(results) == 0 {
		return routing
	}

	// Descending score, ties broken by ascending load ID for determinism.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Load.ID < results[j].Load.ID
	})
	routing.QueryType = QueryLoadSearch
	routing.Results = results
	return routing
}

// tokenize lowercases and splits on anything that is not a letter, digit or
// hyphen, stripping a leading '#' so "load #1234" still hits ID "1234".
func tokenize(text string) map[string]bool {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r == '-' || r == '#' ||
			(r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'))
	})
	tokens := make(map[string]bool, len(fields))
	for _, f := range fields {
		f = strings.TrimPrefix(f, "#")
		if f != "" {
			tokens[f] = true
		}
	}
	return tokens
}

// fieldMatches reports whether any meaningful token of the field value
// appears in the query tokens. Short tokens ("TX", "to") are skipped to keep
// city/state fields from matching on noise.
func fieldMatches(tokens map[string]bool, field string) bool {
	for ft := range tokenize(field) {
		if len(ft) < 3 {
			continue
		}
		if tokens[ft] {
			return true
		}
	}
	return false
}

func statusMatches(lowerQuery string, status Status) bool {
	switch status {
	case StatusPendingPickup:
		return containsAny(lowerQuery, []string{"pending pickup", "pending", "not picked up"})
	case StatusInTransit:
		return containsAny(lowerQuery, []string{"in transit", "transit", "on the road", "moving"})
	case StatusDelivered:
		return containsAny(lowerQuery, []string{"delivered", "completed", "dropped off"})
	}
	return false
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// recencyBonus favors loads whose pickup sits close to now, on either side.
func recencyBonus(now, pickup time.Time) int {
	if pickup.IsZero() {
		return 0
	}
	d := now.Sub(pickup)
	if d < 0 {
		d = -d
	}
	switch {
	case d <= 48*time.Hour:
		return recencyNearBonus
	case d <= 7*24*time.Hour:
		return recencyWeekBonus
	}
	return 0
}
