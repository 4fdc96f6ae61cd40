package models

import (
	"sort"
	"time"
)

// Prayer is a meditation prayer journal entry. Several may exist per day.
type Prayer struct {
	ID         string     `json:"id"`
	Date       time.Time  `json:"date"` // creation timestamp
	Title      string     `json:"title"`
	Scripture  string     `json:"scripture,omitempty"`
	Content    string     `json:"content"`
	Reflection string     `json:"reflection,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

// Meta returns the fields shared by every prayer list entry. Types that
// embed Prayer get it promoted, which is what the prayer stores key on.
func (p *Prayer) Meta() *Prayer { return p }

// Intercession is a prayer on behalf of someone else, tracked until answered.
type Intercession struct {
	Prayer
	Category   Category   `json:"category"`
	Answered   bool       `json:"answered"`
	Answer     string     `json:"answer,omitempty"`
	AnsweredAt *time.Time `json:"answeredAt,omitempty"`
}

// Category groups intercessory prayers. Stored as free text; the
// constants below are the labels offered by the forms.
type Category string

const (
	CategoryFamily   Category = "family"
	CategoryFriends  Category = "friends"
	CategoryChurch   Category = "church"
	CategoryNation   Category = "nation"
	CategoryMissions Category = "missions"
	CategoryOther    Category = "other"
)

// Categories is the fixed display order for intercession groups.
var Categories = []Category{
	CategoryFamily,
	CategoryFriends,
	CategoryChurch,
	CategoryNation,
	CategoryMissions,
	CategoryOther,
}

var categoryLabels = map[Category]string{
	CategoryFamily:   "가족",
	CategoryFriends:  "친구",
	CategoryChurch:   "교회",
	CategoryNation:   "나라/사회",
	CategoryMissions: "선교",
	CategoryOther:    "기타",
}

// Label returns the Korean display label, or the raw value for unknown categories.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Known reports whether c is one of the fixed categories.
func (c Category) Known() bool {
	_, ok := categoryLabels[c]
	return ok
}

// CategoryRank orders categories: fixed ones by position, unknown ones after.
func CategoryRank(c Category) int {
	for i, known := range Categories {
		if known == c {
			return i
		}
	}
	return len(Categories)
}

// SortCategories sorts in display order, unknown categories alphabetically at the end.
func SortCategories(cats []Category) {
	sort.SliceStable(cats, func(i, j int) bool {
		ri, rj := CategoryRank(cats[i]), CategoryRank(cats[j])
		if ri != rj {
			return ri < rj
		}
		return cats[i] < cats[j]
	})
}
