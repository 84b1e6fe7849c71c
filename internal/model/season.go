package model

import (
	"errors"
	"strconv"
)

// ErrEmptyCatalog is returned when no gameweek deadlines are available.
var ErrEmptyCatalog = errors.New("catalog has no gameweek deadlines")

// SeasonSpan derives the cache partition key from gameweek deadlines:
// "2023" when every deadline falls in one year, "2023-2024" otherwise.
func SeasonSpan(gameweeks []Gameweek) (string, error) {
	minYear, maxYear := 0, 0
	for _, gw := range gameweeks {
		if gw.Deadline.IsZero() {
			continue
		}
		y := gw.Deadline.UTC().Year()
		if minYear == 0 || y < minYear {
			minYear = y
		}
		if y > maxYear {
			maxYear = y
		}
	}
	if minYear == 0 {
		return "", ErrEmptyCatalog
	}
	if minYear == maxYear {
		return strconv.Itoa(minYear), nil
	}
	return strconv.Itoa(minYear) + "-" + strconv.Itoa(maxYear), nil
}

// SeasonStartYear returns the first year of a span ("2023-2024" -> 2023).
func SeasonStartYear(span string) (int, error) {
	if len(span) < 4 {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(span[:4])
}
