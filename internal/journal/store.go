// Package journal owns the list of daily meditations and persists it as one
// blob under the "meditations" key.
package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/codelit/internal/constants"
	"github.com/julianstephens/codelit/internal/logger"
	"github.com/julianstephens/codelit/internal/models"
	"github.com/julianstephens/codelit/internal/storage"
)

// ErrInvalidDate is returned for a meditation date that is not YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// Store keeps meditations in insertion order. There is at most one record
// per date once the list has been written by this package.
type Store struct {
	provider storage.Provider
	items    []models.Meditation
}

func NewStore(p storage.Provider) *Store {
	return &Store{provider: p, items: []models.Meditation{}}
}

// ValidDate reports whether s is a real calendar date in YYYY-MM-DD form.
func ValidDate(s string) bool {
	_, err := time.Parse(constants.DateFormat, s)
	return err == nil
}

// Load reads the persisted list. A missing key is an empty journal; an
// unparseable blob is logged and treated as empty.
func (s *Store) Load() ([]models.Meditation, error) {
	data, err := s.provider.Get(constants.KeyMeditations)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.items = []models.Meditation{}
			return s.All(), nil
		}
		return nil, fmt.Errorf("failed to load meditations: %w", err)
	}

	var items []models.Meditation
	if err := json.Unmarshal(data, &items); err != nil {
		logger.Warn("Stored meditations could not be parsed, starting empty", "error", err)
		items = nil
	}
	if items == nil {
		items = []models.Meditation{}
	}
	s.items = items
	return s.All(), nil
}

// Save overwrites the persisted blob with the full list.
func (s *Store) Save() error {
	items := s.items
	if items == nil {
		items = []models.Meditation{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to serialize meditations: %w", err)
	}
	if err := s.provider.Put(constants.KeyMeditations, data); err != nil {
		return fmt.Errorf("failed to save meditations: %w", err)
	}
	return nil
}

func (s *Store) index(date string) int {
	return slices.IndexFunc(s.items, func(m models.Meditation) bool { return m.Date == date })
}

// Upsert replaces the record with the same date in place, or appends it.
func (s *Store) Upsert(rec models.Meditation) error {
	if !ValidDate(rec.Date) {
		return fmt.Errorf("%w: %q", ErrInvalidDate, rec.Date)
	}
	if i := s.index(rec.Date); i >= 0 {
		s.items[i] = rec
	} else {
		s.items = append(s.items, rec)
	}
	return s.Save()
}

// Delete removes the record for date. A missing date is a no-op.
func (s *Store) Delete(date string) error {
	i := s.index(date)
	if i < 0 {
		return nil
	}
	s.items = slices.Delete(s.items, i, i+1)
	return s.Save()
}

func (s *Store) Get(date string) (models.Meditation, bool) {
	if i := s.index(date); i >= 0 {
		return s.items[i], true
	}
	return models.Meditation{}, false
}

func (s *Store) Has(date string) bool {
	return s.index(date) >= 0
}

func (s *Store) Len() int {
	return len(s.items)
}

// All returns a copy of the list in store order.
func (s *Store) All() []models.Meditation {
	return slices.Clone(s.items)
}

// Search returns up to constants.SearchLimit records in store order whose
// text fields contain term, ignoring case.
func (s *Store) Search(term string) []models.Meditation {
	needle := strings.ToLower(term)
	out := []models.Meditation{}
	for _, m := range s.items {
		if len(out) == constants.SearchLimit {
			break
		}
		for _, field := range m.SearchFields() {
			if strings.Contains(strings.ToLower(field), needle) {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

// FilterByBook returns records whose reference contains the first word of
// book, newest first. Prefix matches are accepted, so 요한 also matches
// 요한1서.
func (s *Store) FilterByBook(book string) []models.Meditation {
	fields := strings.Fields(book)
	if len(fields) == 0 {
		return []models.Meditation{}
	}
	token := fields[0]
	out := []models.Meditation{}
	for _, m := range s.items {
		if strings.Contains(m.BibleReference, token) {
			out = append(out, m)
		}
	}
	sortByDateDesc(out)
	return out
}

// Sorted returns all records, newest first.
func (s *Store) Sorted() []models.Meditation {
	out := s.All()
	sortByDateDesc(out)
	return out
}

// Recent returns the n newest records.
func (s *Store) Recent(n int) []models.Meditation {
	if n <= 0 {
		return []models.Meditation{}
	}
	sorted := s.Sorted()
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Dates returns the set of dates that have a record.
func (s *Store) Dates() map[string]bool {
	out := make(map[string]bool, len(s.items))
	for _, m := range s.items {
		out[m.Date] = true
	}
	return out
}

// Duplicates returns the dates that appear more than once.
func (s *Store) Duplicates() []string {
	seen := map[string]int{}
	var dups []string
	for _, m := range s.items {
		seen[m.Date]++
		if seen[m.Date] == 2 {
			dups = append(dups, m.Date)
		}
	}
	return dups
}

// Dedupe keeps the last record written for each date, at the position of
// the first occurrence, and saves when anything was dropped. It returns the
// number of records removed.
func (s *Store) Dedupe() (int, error) {
	last := map[string]models.Meditation{}
	for _, m := range s.items {
		last[m.Date] = m
	}
	if len(last) == len(s.items) {
		return 0, nil
	}

	kept := make([]models.Meditation, 0, len(last))
	placed := map[string]bool{}
	for _, m := range s.items {
		if placed[m.Date] {
			continue
		}
		placed[m.Date] = true
		kept = append(kept, last[m.Date])
	}
	removed := len(s.items) - len(kept)
	s.items = kept
	return removed, s.Save()
}

// sortByDateDesc orders YYYY-MM-DD strings newest first. Lexical order
// matches chronological order for that format.
func sortByDateDesc(list []models.Meditation) {
	slices.SortStableFunc(list, func(a, b models.Meditation) int {
		return strings.Compare(b.Date, a.Date)
	})
}
