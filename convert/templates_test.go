package convert

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"repgen/config"
	"repgen/content"
	"repgen/state"
)

func setupTestContentForTemplate(t *testing.T) (*content.Content, *state.LocalEnv) {
	t.Helper()
	env := setupTestEnvForOutputPath(t, false, "")
	env.RunID = uuid.MustParse("0190f1c2-7b1a-7cc3-8a4e-5d3f2b1a0c9e")
	c := setupTestContentForPath(t, "Radar Data Report")
	c.Tables = make([]content.Table, 3)
	c.Charts = []string{"trend.png"}
	return c, env
}

func TestExpandTemplate(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  string
	}{
		{"simple text", "simple-text", "simple-text"},
		{"title", "{{ .Title }}", "Radar Data Report"},
		{"context", "{{ .Context }}", "output_name_template"},
		{"spec file without extension", "{{ .SpecFile }}", "radar"},
		{"configured date", "{{ .Date }}", "2024-05-01"},
		{"run id", "{{ .RunID }}", "0190f1c2-7b1a-7cc3-8a4e-5d3f2b1a0c9e"},
		{"counters", "{{ .Tables }}/{{ .Charts }}", "3/1"},
		{"chapters", "{{ range .Chapters }}{{ .Number }}.{{ .Title }};{{ end }}", "1.Summary;2.Details;"},
		{"sprig functions", `{{ .Title | upper | replace " " "_" }}`, "RADAR_DATA_REPORT"},
		{"first chapter", "{{ (index .Chapters 0).Title | lower }}", "summary"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, env := setupTestContentForTemplate(t)
			got, err := expandTemplate(c, config.OutputNameTemplateFieldName, tt.field, env)
			if err != nil {
				t.Fatalf("expandTemplate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("expandTemplate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExpandTemplate_Errors(t *testing.T) {
	c, env := setupTestContentForTemplate(t)

	_, err := expandTemplate(c, config.OutputNameTemplateFieldName, "{{ .Title", env)
	if err == nil || !strings.Contains(err.Error(), "unable to parse template field output_name_template") {
		t.Errorf("parse error = %v", err)
	}
	if _, err := expandTemplate(c, config.OutputNameTemplateFieldName, "{{ .Author }}", env); err == nil {
		t.Error("unknown field accepted")
	}
	if _, err := expandTemplate(c, config.OutputNameTemplateFieldName, "{{ index .Chapters 5 }}", env); err == nil {
		t.Error("index out of range accepted")
	}
}

func TestExpandTemplate_CurrentDate(t *testing.T) {
	c, env := setupTestContentForTemplate(t)
	env.Cfg.Document.Metainformation.CreationDate = ""

	got, err := expandTemplate(c, config.OutputNameTemplateFieldName, "{{ .Date }}", env)
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}
	if len(got) != len("2006-01-02") || got == "2024-05-01" {
		t.Errorf("Date = %q, want today", got)
	}
}

func TestDocumentTitle(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"no template", "", "Radar Data Report"},
		{"template", "{{ .Title }} ({{ .Date }})", "Radar Data Report (2024-05-01)"},
		{"blank expansion", "  ", "Radar Data Report"},
		{"broken template", "{{ .Title", "Radar Data Report"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, env := setupTestContentForTemplate(t)
			env.Cfg.Document.Metainformation.TitleTemplate = tt.template
			if got := documentTitle(c, env); got != tt.want {
				t.Errorf("documentTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}
