package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"
	"go.uber.org/zap"

	"repgen/config"
	"repgen/content"
	"repgen/state"
)

type ChapterDefinition struct {
	Number int
	Title  string
}

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context  string
	Title    string
	SpecFile string
	Date     string
	RunID    string
	Chapters []ChapterDefinition
	Tables   int
	Charts   int
}

func buildChapters(c *content.Content) []ChapterDefinition {
	result := make([]ChapterDefinition, 0, len(c.Chapters))
	for _, ch := range c.Chapters {
		result = append(result, ChapterDefinition{Number: ch.Number, Title: ch.Title})
	}
	return result
}

// buildDate prefers configured creation date so names are reproducible.
func buildDate(env *state.LocalEnv) string {
	if date, err := creationDate(&env.Cfg.Document); err == nil && !date.IsZero() {
		return date.Format("2006-01-02")
	}
	return time.Now().Format("2006-01-02")
}

func expandTemplate(c *content.Content, name config.TemplateFieldName, field string, env *state.LocalEnv) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := Values{
		Context:  string(name),
		Title:    c.Title,
		SpecFile: strings.TrimSuffix(filepath.Base(c.SpecFile), filepath.Ext(c.SpecFile)),
		Date:     buildDate(env),
		RunID:    env.RunID.String(),
		Chapters: buildChapters(c),
		Tables:   len(c.Tables),
		Charts:   len(c.Charts),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// documentTitle is the title printed in page header and stored in metadata.
func documentTitle(c *content.Content, env *state.LocalEnv) string {
	field := env.Cfg.Document.Metainformation.TitleTemplate
	if len(field) == 0 {
		return c.Title
	}
	title, err := expandTemplate(c, config.MetaTitleTemplateFieldName, field, env)
	if err != nil {
		env.Log.Warn("Unable to prepare document title, using report title", zap.Error(err))
		return c.Title
	}
	if title = strings.TrimSpace(title); len(title) == 0 {
		return c.Title
	}
	return title
}
