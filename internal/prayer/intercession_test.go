package prayer

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/codelit/internal/constants"
	"github.com/julianstephens/codelit/internal/models"
)

func TestMarkAnsweredTwice(t *testing.T) {
	s := NewIntercessionStore(setupProvider(t))
	s.now = clock(base)

	rec, err := s.Upsert(models.Intercession{
		Prayer:   models.Prayer{Title: "어머니 건강", Content: "회복을 위해"},
		Category: models.CategoryFamily,
	})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if rec.Answered {
		t.Fatal("new intercessions start unanswered")
	}

	first, err := s.MarkAnswered(rec.ID, "수술이 잘 되었습니다")
	if err != nil {
		t.Fatalf("MarkAnswered failed: %v", err)
	}
	if !first.Answered || first.AnsweredAt == nil {
		t.Fatalf("expected answered with timestamp, got %+v", first)
	}
	answeredAt := *first.AnsweredAt

	second, err := s.MarkAnswered(rec.ID, "완전히 회복되셨습니다")
	if err != nil {
		t.Fatalf("second MarkAnswered failed: %v", err)
	}
	if second.Answer != "완전히 회복되셨습니다" {
		t.Errorf("expected answer overwritten, got %q", second.Answer)
	}
	if !second.AnsweredAt.Equal(answeredAt) {
		t.Errorf("AnsweredAt moved from %v to %v", answeredAt, *second.AnsweredAt)
	}

	stored, _ := s.Get(rec.ID)
	if stored.Answer != second.Answer || !stored.Answered {
		t.Errorf("stored record not updated: %+v", stored)
	}
}

func TestMarkAnsweredUnknown(t *testing.T) {
	s := NewIntercessionStore(setupProvider(t))
	if _, err := s.MarkAnswered("missing", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestIntercessionJSONIsFlat(t *testing.T) {
	p := setupProvider(t)
	s := NewIntercessionStore(p)
	s.now = clock(base)
	rec, _ := s.Upsert(models.Intercession{
		Prayer:   models.Prayer{Title: "t", Content: "c"},
		Category: models.CategoryChurch,
	})

	data, err := p.Get(constants.KeyIntercessoryPrayers)
	if err != nil {
		t.Fatal(err)
	}
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("blob is not a list of objects: %v", err)
	}
	if len(raw) != 1 {
		t.Fatalf("expected 1 record, got %d", len(raw))
	}
	for _, key := range []string{"id", "date", "title", "content", "category", "answered"} {
		if _, ok := raw[0][key]; !ok {
			t.Errorf("expected top-level %q field in %s", key, data)
		}
	}
	if raw[0]["id"] != rec.ID {
		t.Errorf("id mismatch: %v", raw[0]["id"])
	}
	if strings.Contains(string(data), `"Prayer"`) {
		t.Errorf("embedded struct must be inlined: %s", data)
	}
}

func TestByCategory(t *testing.T) {
	s := NewIntercessionStore(setupProvider(t))
	s.now = clock(base)
	add := func(title string, cat models.Category) {
		t.Helper()
		if _, err := s.Upsert(models.Intercession{Prayer: models.Prayer{Title: title, Content: "c"}, Category: cat}); err != nil {
			t.Fatal(err)
		}
	}
	add("mission trip", models.CategoryMissions)
	add("dad", models.CategoryFamily)
	add("coworker", "work")
	add("mom", models.CategoryFamily)
	add("pastor", models.CategoryChurch)

	type summary struct {
		Category models.Category
		Titles   []string
	}
	var got []summary
	for _, g := range s.ByCategory() {
		var titles []string
		for _, it := range g.Items {
			titles = append(titles, it.Title)
		}
		got = append(got, summary{g.Category, titles})
	}
	want := []summary{
		{models.CategoryFamily, []string{"mom", "dad"}},
		{models.CategoryChurch, []string{"pastor"}},
		{models.CategoryMissions, []string{"mission trip"}},
		{"work", []string{"coworker"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("groups mismatch (-want +got):\n%s", diff)
	}
}

func TestCounts(t *testing.T) {
	s := NewIntercessionStore(setupProvider(t))
	a, _ := s.Upsert(models.Intercession{Prayer: models.Prayer{Title: "a", Content: "c"}, Category: models.CategoryOther})
	_, _ = s.Upsert(models.Intercession{Prayer: models.Prayer{Title: "b", Content: "c"}, Category: models.CategoryOther})
	_, _ = s.MarkAnswered(a.ID, "yes")

	total, answered := s.Counts()
	if total != 2 || answered != 1 {
		t.Errorf("Counts() = (%d, %d), want (2, 1)", total, answered)
	}
}

func TestEditKeepsAnswerWhenCallerCopiesIt(t *testing.T) {
	s := NewIntercessionStore(setupProvider(t))
	s.now = clock(base)
	rec, _ := s.Upsert(models.Intercession{Prayer: models.Prayer{Title: "t", Content: "c"}, Category: models.CategoryFriends})
	answered, _ := s.MarkAnswered(rec.ID, "done")

	edit := answered
	edit.Title = "renamed"
	got, err := s.Upsert(edit)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Answered || got.Answer != "done" || got.AnsweredAt == nil {
		t.Errorf("answered state lost: %+v", got)
	}
	if !got.AnsweredAt.Equal(*answered.AnsweredAt) {
		t.Errorf("AnsweredAt changed on edit: %v", got.AnsweredAt)
	}
}
