package model

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sorter orders todos for display. Pending todos come first, completed ones
// sink to the bottom, and each group is ordered by title under the collation
// rules of Lang.
type Sorter struct {
	Lang language.Tag
}

// NewSorter returns a Sorter for a BCP 47 locale such as "en" or "de-CH".
// Unparseable locales fall back to English.
func NewSorter(locale string) Sorter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return Sorter{Lang: tag}
}

// Sort returns a new, ordered slice. The input is left untouched.
func (s Sorter) Sort(todos []Todo) []Todo {
	// Collators carry scratch buffers, so each call gets its own.
	c := collate.New(s.Lang)
	byTitle := func(a, b Todo) int { return c.CompareString(a.Title, b.Title) }

	pending := make([]Todo, 0, len(todos))
	var done []Todo
	for _, t := range todos {
		if t.Completed {
			done = append(done, t)
		} else {
			pending = append(pending, t)
		}
	}
	slices.SortStableFunc(pending, byTitle)
	slices.SortStableFunc(done, byTitle)
	return append(pending, done...)
}

// SortTodos orders todos with English collation.
func SortTodos(todos []Todo) []Todo {
	return Sorter{Lang: language.English}.Sort(todos)
}
