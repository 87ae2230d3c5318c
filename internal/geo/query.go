// Package geo turns free-text location queries into geocoding requests and
// picks the best candidate out of the provider's ranked results.
package geo

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	"weather-dashboard/internal/models"
)

// ErrNoMatch is returned when geocoding produced zero candidates for a query.
var ErrNoMatch = errors.New("no matching city found")

// Want carries the disambiguation preference extracted from a query: a
// desired state/province code and/or country code, both upper-cased.
type Want struct {
	State   string
	Country string
}

// Query is the parsed form of a free-text location string.
type Query struct {
	// Param is the percent-encoded q= value for the direct geocoding call.
	Param string
	Want  Want
}

var twoLetter = regexp.MustCompile(`^[A-Z]{2}$`)

// ParseQuery normalizes a free-text location string such as "City",
// "City, ST", "City, Country" or "City, State, Country" into a geocoding
// query and a disambiguation preference. It is a pure string transformation
// and always produces a best-effort result.
func ParseQuery(input string) Query {
	raw := strings.Join(strings.Fields(input), " ")

	parts := splitParts(raw)

	// "Springfield IL" with no comma: last token is a region hint.
	if len(parts) == 1 && !strings.Contains(raw, ",") {
		words := strings.Fields(raw)
		if len(words) > 1 {
			parts = []string{
				strings.Join(words[:len(words)-1], " "),
				words[len(words)-1],
			}
		}
	}

	switch len(parts) {
	case 0:
		return Query{Param: url.QueryEscape(raw)}
	case 1:
		return Query{Param: url.QueryEscape(parts[0])}
	case 2:
		city, region := parts[0], parts[1]
		st := strings.ToUpper(region)
		if twoLetter.MatchString(st) {
			// Two-letter region reads as a US state code.
			return Query{
				Param: url.QueryEscape(city + "," + st + ",US"),
				Want:  Want{State: st, Country: "US"},
			}
		}
		return Query{
			Param: url.QueryEscape(city + "," + region),
			Want:  Want{Country: st},
		}
	default:
		city, state, country := parts[0], parts[1], parts[2]
		return Query{
			Param: url.QueryEscape(city + "," + state + "," + country),
			Want: Want{
				State:   strings.ToUpper(state),
				Country: strings.ToUpper(country),
			},
		}
	}
}

func splitParts(raw string) []string {
	var parts []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// PickBest selects the candidate matching want, degrading to provider rank
// order when the hints match nothing. Only an empty candidate list fails.
func PickBest(candidates []models.GeoCandidate, want Want) (models.GeoCandidate, error) {
	if len(candidates) == 0 {
		return models.GeoCandidate{}, ErrNoMatch
	}

	pool := candidates
	if want.Country != "" {
		var filtered []models.GeoCandidate
		for _, c := range candidates {
			if strings.EqualFold(c.Country, want.Country) {
				filtered = append(filtered, c)
			}
		}
		if len(filtered) > 0 {
			pool = filtered
		}
	}

	if want.State != "" {
		for _, c := range pool {
			if strings.HasPrefix(strings.ToUpper(c.State), want.State) {
				return c, nil
			}
		}
	}
	return pool[0], nil
}

// Label builds the human-readable location label by joining name, state and
// country, skipping absent fields.
func Label(c models.GeoCandidate) string {
	parts := make([]string, 0, 3)
	for _, s := range []string{c.Name, c.State, c.Country} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}
