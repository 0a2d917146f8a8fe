package layout

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func TestChapter_Summary(t *testing.T) {
	e, rec := newTestEngine(t, nil)

	ch := Chapter{
		Number: 1,
		Title:  "Summary",
		Body:   "Report summary.",
		Tables: []TableEntry{{ID: "counts", Block: &TableBlock{
			Columns:    []string{"Name", "Count"},
			Rows:       [][]any{{"A", 1}, {"B", 2}},
			CellWidth:  40,
			CellHeight: 10,
		}}},
	}
	if err := e.Compose(context.Background(), []Chapter{ch}); err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	want := []string{
		"page 1",
		`cell 10,34 190x6 border=false L fill=true "Chapter 1 : Summary"`,
		`cell 10,44 190x5 border=false L fill=false "Report summary."`,
		`cell 10,59 40x10 border=true C fill=false "Name"`,
		`cell 50,59 40x10 border=true C fill=false "Count"`,
		`cell 10,69 40x10 border=true C fill=false "A"`,
		`cell 50,69 40x10 border=true C fill=false "1"`,
		`cell 10,79 40x10 border=true C fill=false "B"`,
		`cell 50,79 40x10 border=true C fill=false "2"`,
	}
	if got := rec.drawing(); !slices.Equal(got, want) {
		t.Errorf("ops mismatch\n got: %q\nwant: %q", got, want)
	}
	if e.Canvas().Pages() != 1 {
		t.Errorf("Pages() = %d, want 1", e.Canvas().Pages())
	}
}

func TestChapter_LogsPages(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e, err := New(newRecorder(), DefaultOptions(), zap.New(core))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	chapters := []Chapter{
		// does not fit on one page
		{Number: 1, Title: "Long", Body: strings.Repeat("line\n", 60)},
		{Number: 2, Title: "Short", Body: "short"},
	}
	if err := e.Compose(context.Background(), chapters); err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	entries := logs.FilterMessage("Chapter composed").All()
	if len(entries) != 2 {
		t.Fatalf("got %d chapter entries, want 2", len(entries))
	}
	want := [][2]int64{{1, 2}, {3, 3}}
	for i, entry := range entries {
		fields := entry.ContextMap()
		if got := [2]int64{fields["first_page"].(int64), fields["last_page"].(int64)}; got != want[i] {
			t.Errorf("chapter %d pages = %v, want %v", i+1, got, want[i])
		}
	}
}

func TestChapter_AlwaysStartsNewPage(t *testing.T) {
	e, rec := newTestEngine(t, nil)

	chapters := []Chapter{
		{Number: 1, Title: "One", Body: "short"},
		{Number: 2, Title: "Two", Body: "short"},
		{Number: 3, Title: "Three"},
	}
	if err := e.Compose(context.Background(), chapters); err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if rec.pages != 3 {
		t.Fatalf("pages = %d, want 3", rec.pages)
	}
	var titles []string
	for i, op := range rec.drawing() {
		if strings.HasPrefix(op, "page ") {
			titles = append(titles, rec.drawing()[i+1])
		}
	}
	want := []string{
		`cell 10,34 190x6 border=false L fill=true "Chapter 1 : One"`,
		`cell 10,34 190x6 border=false L fill=true "Chapter 2 : Two"`,
		`cell 10,34 190x6 border=false L fill=true "Chapter 3 : Three"`,
	}
	if !slices.Equal(titles, want) {
		t.Errorf("titles = %q, want %q", titles, want)
	}
}

func TestChapter_ValidatedBeforeDrawing(t *testing.T) {
	e, rec := newTestEngine(t, nil)

	ch := Chapter{
		Number: 4,
		Tables: []TableEntry{
			{ID: "t", Block: &TableBlock{Columns: []string{"a"}, Rows: [][]any{{1, 2}}, CellWidth: 10, CellHeight: 5}},
			{ID: "t", Block: &TableBlock{Columns: []string{"a"}, CellWidth: 10, CellHeight: 5}},
		},
		Images: []ImageEntry{{ID: "i"}},
	}
	err := e.Chapter(&ch)
	if err == nil {
		t.Fatal("Chapter() expected error")
	}
	// empty title, row mismatch, duplicate id, missing image
	if n := len(multierr.Errors(err)); n != 4 {
		t.Errorf("got %d errors, want 4: %v", n, err)
	}
	var ce *ConfigurationError
	if !errors.As(err, &ce) {
		t.Errorf("error %v is not ConfigurationError", err)
	}
	if len(rec.ops) != 0 {
		t.Errorf("nothing must be drawn, got %q", rec.ops)
	}
}

func TestChapter_ErrorCarriesStage(t *testing.T) {
	e, _ := newTestEngine(t, nil)

	err := e.Chapter(&Chapter{Number: 2, Title: "Bad", Body: "emoji 🙂"})
	if err == nil {
		t.Fatal("Chapter() expected error")
	}
	if !strings.HasPrefix(err.Error(), "chapter 2 after title-drawn:") {
		t.Errorf("error = %q", err)
	}
	var ee *EncodingError
	if !errors.As(err, &ee) {
		t.Errorf("error %v is not EncodingError", err)
	}
}

func TestCompose_Cancelled(t *testing.T) {
	e, rec := newTestEngine(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := e.Compose(ctx, []Chapter{{Number: 1, Title: "One"}}); !errors.Is(err, context.Canceled) {
		t.Fatalf("Compose() error = %v, want context.Canceled", err)
	}
	if len(rec.ops) != 0 {
		t.Errorf("nothing must be drawn, got %q", rec.ops)
	}
}

func TestNew_BadOptions(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Options)
	}{
		{"no charset", func(o *Options) { o.Charset = nil }},
		{"zero line height", func(o *Options) { o.LineHeight = 0 }},
		{"small label reserve", func(o *Options) { o.LabelReserve = 1 }},
		{"no width", func(o *Options) { o.Page.Left = 150; o.Page.Right = 60 }},
		{"no height", func(o *Options) { o.Page.ContentTop = 290 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mod(&opts)
			if _, err := New(newRecorder(), opts, zaptest.NewLogger(t)); err == nil {
				t.Error("New() expected error")
			}
		})
	}
}

func TestStage_String(t *testing.T) {
	if StageBodyDrawn.String() != "body-drawn" {
		t.Errorf("StageBodyDrawn = %q", StageBodyDrawn)
	}
	if Stage(42).String() != "Stage(42)" {
		t.Errorf("Stage(42) = %q", Stage(42))
	}
}
