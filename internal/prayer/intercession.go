package prayer

import (
	"fmt"

	"github.com/julianstephens/codelit/internal/constants"
	"github.com/julianstephens/codelit/internal/models"
	"github.com/julianstephens/codelit/internal/storage"
)

type IntercessionStore struct {
	*Store[models.Intercession, *models.Intercession]
}

// NewIntercessionStore returns the store for the "intercessoryPrayers" list.
func NewIntercessionStore(p storage.Provider) *IntercessionStore {
	return &IntercessionStore{
		Store: newStore[models.Intercession, *models.Intercession](p, constants.KeyIntercessoryPrayers),
	}
}

// MarkAnswered records an answer. Calling it again replaces the answer
// text; AnsweredAt keeps the time of the first call. There is no way back
// to unanswered.
func (s *IntercessionStore) MarkAnswered(id, answer string) (models.Intercession, error) {
	i := s.index(id)
	if i < 0 {
		return models.Intercession{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	rec := &s.items[i]
	rec.Answered = true
	rec.Answer = answer
	if rec.AnsweredAt == nil {
		now := s.now()
		rec.AnsweredAt = &now
	}
	return *rec, s.Save()
}

// Group is the intercessions filed under one category.
type Group struct {
	Category models.Category
	Items    []models.Intercession
}

// ByCategory groups intercessions in display order, newest first within a
// group. Empty groups are omitted.
func (s *IntercessionStore) ByCategory() []Group {
	buckets := map[models.Category][]models.Intercession{}
	var cats []models.Category
	for _, rec := range s.Sorted() {
		if _, ok := buckets[rec.Category]; !ok {
			cats = append(cats, rec.Category)
		}
		buckets[rec.Category] = append(buckets[rec.Category], rec)
	}
	models.SortCategories(cats)

	groups := make([]Group, 0, len(cats))
	for _, c := range cats {
		groups = append(groups, Group{Category: c, Items: buckets[c]})
	}
	return groups
}

// Counts returns (total, answered).
func (s *IntercessionStore) Counts() (int, int) {
	answered := 0
	for _, rec := range s.items {
		if rec.Answered {
			answered++
		}
	}
	return len(s.items), answered
}
