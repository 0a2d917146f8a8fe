package convert

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"repgen/config"
	"repgen/content"
	"repgen/state"
)

const (
	outputExt = ".pdf"
	// report specification own template, has priority over configuration
	specOutputNameFieldName config.TemplateFieldName = "output_name"
)

// buildOutputPath returns output file path for the report. Name comes from
// report own output_name template, configured output name template or report
// title, in that order. Templates may produce subdirectories. Every path
// segment is cleaned and if requested transliterated.
func buildOutputPath(c *content.Content, outputName, dst string, env *state.LocalEnv) string {
	defaultFile := cleanPathSegment(c.Title, env) + outputExt

	field, name := outputName, specOutputNameFieldName
	if len(field) == 0 {
		field, name = env.Cfg.Document.OutputNameTemplate, config.OutputNameTemplateFieldName
	}
	if len(field) == 0 {
		return filepath.Join(dst, defaultFile)
	}

	expandedName := expandOutputNameTemplate(c, name, field, env)
	if expandedName == "" {
		// fallback to default name if template expansion failed
		return filepath.Join(dst, defaultFile)
	}
	return assemblePathWithSubdirs(dst, expandedName, env)
}

func expandOutputNameTemplate(c *content.Content, name config.TemplateFieldName, field string, env *state.LocalEnv) string {
	expandedName, err := expandTemplate(c, name, field, env)
	if err != nil {
		env.Log.Warn("Unable to prepare output filename", zap.Error(err))
		return ""
	}
	return strings.TrimSpace(expandedName)
}

// assemblePathWithSubdirs turns expanded template into path under outDir.
// Every segment but the last is a subdirectory, the last one always ends
// with proper extension.
func assemblePathWithSubdirs(outDir, expandedName string, env *state.LocalEnv) string {
	segments := splitAndCleanPath(expandedName)
	if len(segments) == 0 {
		return outDir
	}

	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, outDir)
	for _, segment := range segments {
		parts = append(parts, cleanPathSegment(segment, env))
	}
	last := len(parts) - 1
	parts[last] = strings.TrimSuffix(parts[last], outputExt) + outputExt
	return filepath.Join(parts...)
}

// splitAndCleanPath splits path on both slash and OS separator dropping
// empty, "." and ".." segments, so result always stays under destination.
func splitAndCleanPath(path string) []string {
	fields := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == os.PathSeparator
	})
	return slices.DeleteFunc(fields, func(s string) bool {
		s = strings.TrimSpace(s)
		return s == "" || s == "." || s == ".."
	})
}

func cleanPathSegment(segment string, env *state.LocalEnv) string {
	if env.Cfg.Document.FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}
