package form

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/codelit/internal/journal"
	"github.com/julianstephens/codelit/internal/models"
	"github.com/julianstephens/codelit/internal/prayer"
	"github.com/julianstephens/codelit/internal/remote"
	"github.com/julianstephens/codelit/internal/storage"
)

type fixture struct {
	ctrl          *Controller
	journal       *journal.Store
	prayers       *prayer.Store[models.Prayer, *models.Prayer]
	intercessions *prayer.IntercessionStore
}

func setup(t *testing.T, r RemoteSaver) fixture {
	t.Helper()
	p := storage.NewJSONStore(filepath.Join(t.TempDir(), "codelit.json"))
	if err := p.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	f := fixture{
		journal:       journal.NewStore(p),
		prayers:       prayer.NewPrayerStore(p),
		intercessions: prayer.NewIntercessionStore(p),
	}
	f.ctrl = NewController(f.journal, f.prayers, f.intercessions, r)
	return f
}

func fullDraft(date string) MeditationDraft {
	return MeditationDraft{
		Date:           date,
		BibleReference: "요한복음 3:16",
		Title:          "사랑",
		Capture:        "하나님이 세상을 이처럼 사랑하사",
		Organize:       "o",
		Distill:        "d",
		Express:        "e",
	}
}

func TestMeditationDraftValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*MeditationDraft)
		field string
	}{
		{"valid", func(*MeditationDraft) {}, ""},
		{"bad date", func(d *MeditationDraft) { d.Date = "03/05/2024" }, "date"},
		{"blank title", func(d *MeditationDraft) { d.Title = "   " }, "title"},
		{"missing reference", func(d *MeditationDraft) { d.BibleReference = "" }, "bibleReference"},
		{"missing express", func(d *MeditationDraft) { d.Express = "" }, "express"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := fullDraft("2024-03-05")
			tt.edit(&d)
			err := d.Validate()
			if tt.field == "" {
				if err != nil {
					t.Errorf("expected valid draft, got %v", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Field != tt.field {
				t.Errorf("expected ValidationError on %q, got %v", tt.field, err)
			}
		})
	}
}

func TestNewMeditationDraftDefaultsToToday(t *testing.T) {
	d := NewMeditationDraft("")
	if d.Date != time.Now().Format("2006-01-02") {
		t.Errorf("expected today, got %q", d.Date)
	}
	if NewMeditationDraft("2024-03-05").Date != "2024-03-05" {
		t.Error("expected the given date to be kept")
	}
}

func TestSubmitMeditationLocalOnly(t *testing.T) {
	f := setup(t, nil)
	res, err := f.ctrl.SubmitMeditation(context.Background(), fullDraft("2024-03-05"))
	if err != nil {
		t.Fatalf("SubmitMeditation failed: %v", err)
	}
	if res.Warning != "" {
		t.Errorf("unexpected warning %q", res.Warning)
	}
	if !f.journal.Has("2024-03-05") {
		t.Error("expected meditation stored")
	}
}

func TestSubmitMeditationValidationLeavesStoreUntouched(t *testing.T) {
	f := setup(t, nil)
	d := fullDraft("2024-03-05")
	d.Capture = ""
	if _, err := f.ctrl.SubmitMeditation(context.Background(), d); err == nil {
		t.Fatal("expected validation error")
	}
	if f.journal.Len() != 0 {
		t.Error("invalid draft must not be stored")
	}
}

func TestSubmitMeditationRemoteSuccess(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	f := setup(t, remote.New(srv.URL))
	res, err := f.ctrl.SubmitMeditation(context.Background(), fullDraft("2024-03-05"))
	if err != nil {
		t.Fatalf("SubmitMeditation failed: %v", err)
	}
	if hits != 1 {
		t.Errorf("expected one POST, got %d", hits)
	}
	if res.Warning != "" {
		t.Errorf("unexpected warning %q", res.Warning)
	}
	if !f.journal.Has("2024-03-05") {
		t.Error("expected local copy as well")
	}
}

func TestSubmitMeditationRemoteFailureFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := setup(t, remote.New(srv.URL))
	res, err := f.ctrl.SubmitMeditation(context.Background(), fullDraft("2024-03-05"))
	if err != nil {
		t.Fatalf("remote failure must not fail the submit: %v", err)
	}
	if res.Warning == "" {
		t.Error("expected a warning for the failed remote save")
	}
	if !f.journal.Has("2024-03-05") {
		t.Error("expected local fallback save")
	}
}

func TestSubmitMeditationEditMovesDate(t *testing.T) {
	f := setup(t, nil)
	if _, err := f.ctrl.SubmitMeditation(context.Background(), fullDraft("2024-03-05")); err != nil {
		t.Fatal(err)
	}
	rec, _ := f.journal.Get("2024-03-05")
	d := EditMeditationDraft(rec)
	d.Date = "2024-03-06"
	if _, err := f.ctrl.SubmitMeditation(context.Background(), d); err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if f.journal.Has("2024-03-05") || !f.journal.Has("2024-03-06") || f.journal.Len() != 1 {
		t.Errorf("expected record moved, got %+v", f.journal.All())
	}
}

func TestSubmitMeditationEditSameDateReplaces(t *testing.T) {
	f := setup(t, nil)
	_, _ = f.ctrl.SubmitMeditation(context.Background(), fullDraft("2024-03-05"))
	rec, _ := f.journal.Get("2024-03-05")
	d := EditMeditationDraft(rec)
	d.Title = "수정됨"
	if _, err := f.ctrl.SubmitMeditation(context.Background(), d); err != nil {
		t.Fatal(err)
	}
	got, _ := f.journal.Get("2024-03-05")
	if got.Title != "수정됨" || f.journal.Len() != 1 {
		t.Errorf("expected in-place edit, got %+v", f.journal.All())
	}
}

func TestSubmitPrayer(t *testing.T) {
	f := setup(t, nil)
	if _, err := f.ctrl.SubmitPrayer(PrayerDraft{Title: "t"}); err == nil {
		t.Error("expected content to be required")
	}

	res, err := f.ctrl.SubmitPrayer(PrayerDraft{Title: "아침", Content: "감사"})
	if err != nil {
		t.Fatalf("SubmitPrayer failed: %v", err)
	}
	d := EditPrayerDraft(res.Record)
	d.Content = "더 감사"
	edited, err := f.ctrl.SubmitPrayer(d)
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if edited.Record.ID != res.Record.ID || edited.Record.UpdatedAt == nil {
		t.Errorf("expected in-place edit with UpdatedAt, got %+v", edited.Record)
	}
	if f.prayers.Len() != 1 {
		t.Errorf("expected one prayer, got %d", f.prayers.Len())
	}
}

func TestSubmitIntercessionKeepsAnsweredState(t *testing.T) {
	f := setup(t, nil)
	d := NewIntercessionDraft()
	d.Title = "친구의 취업"
	d.Content = "좋은 길로 인도해 주세요"
	res, err := f.ctrl.SubmitIntercession(d)
	if err != nil {
		t.Fatalf("SubmitIntercession failed: %v", err)
	}
	if res.Record.Category != models.CategoryOther {
		t.Errorf("expected default category, got %q", res.Record.Category)
	}

	if _, err := f.ctrl.MarkAnswered(res.Record.ID, "   "); err == nil {
		t.Error("expected blank answer to be rejected")
	}
	if _, err := f.ctrl.MarkAnswered(res.Record.ID, "합격했습니다"); err != nil {
		t.Fatalf("MarkAnswered failed: %v", err)
	}

	answered, _ := f.intercessions.Get(res.Record.ID)
	edit := EditIntercessionDraft(answered)
	edit.Category = models.CategoryFriends
	saved, err := f.ctrl.SubmitIntercession(edit)
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if !saved.Record.Answered || saved.Record.Answer != "합격했습니다" || saved.Record.Category != models.CategoryFriends {
		t.Errorf("answered state lost on edit: %+v", saved.Record)
	}
}

func TestDeletes(t *testing.T) {
	f := setup(t, nil)
	_, _ = f.ctrl.SubmitMeditation(context.Background(), fullDraft("2024-03-05"))
	p, _ := f.ctrl.SubmitPrayer(PrayerDraft{Title: "t", Content: "c"})
	i, _ := f.ctrl.SubmitIntercession(IntercessionDraft{PrayerDraft: PrayerDraft{Title: "t", Content: "c"}})

	if err := f.ctrl.DeleteMeditation("2024-03-05"); err != nil {
		t.Fatal(err)
	}
	if err := f.ctrl.DeletePrayer(p.Record.ID); err != nil {
		t.Fatal(err)
	}
	if err := f.ctrl.DeleteIntercession(i.Record.ID); err != nil {
		t.Fatal(err)
	}
	if f.journal.Len()+f.prayers.Len()+f.intercessions.Len() != 0 {
		t.Error("expected all stores empty")
	}
}

type countingSaver struct {
	calls int
}

func (s *countingSaver) SaveMeditation(context.Context, models.Meditation) error {
	s.calls++
	return nil
}

func TestSubmitMeditationMoveOntoExistingDateRejected(t *testing.T) {
	saver := &countingSaver{}
	f := setup(t, saver)
	for _, date := range []string{"2024-03-05", "2024-03-06"} {
		if _, err := f.ctrl.SubmitMeditation(context.Background(), fullDraft(date)); err != nil {
			t.Fatal(err)
		}
	}
	calls := saver.calls

	rec, _ := f.journal.Get("2024-03-05")
	d := EditMeditationDraft(rec)
	d.Date = "2024-03-06"
	d.Title = "moved"
	_, err := f.ctrl.SubmitMeditation(context.Background(), d)

	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "date" {
		t.Fatalf("expected date ValidationError, got %v", err)
	}
	if f.journal.Len() != 2 || !f.journal.Has("2024-03-05") {
		t.Errorf("both meditations should be kept, got %+v", f.journal.All())
	}
	if got, _ := f.journal.Get("2024-03-06"); got.Title == "moved" {
		t.Error("existing meditation was overwritten")
	}
	if saver.calls != calls {
		t.Error("rejected move should not reach the remote")
	}
}
