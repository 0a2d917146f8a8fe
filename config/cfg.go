package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	validator "github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"repgen/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	// ColorConfig is RGB triple.
	ColorConfig [3]int

	FontConfig struct {
		Family string `yaml:"family" validate:"required"`
		// Style is any combination of B, I and U.
		Style string  `yaml:"style,omitempty" validate:"omitempty,max=3"`
		Size  float64 `yaml:"size" validate:"gt=0"`
	}

	MarginsConfig struct {
		Left   float64 `yaml:"left" validate:"gte=0"`
		Top    float64 `yaml:"top" validate:"gte=0"`
		Right  float64 `yaml:"right" validate:"gte=0"`
		Bottom float64 `yaml:"bottom" validate:"gte=0"`
	}

	PageConfig struct {
		Width   float64       `yaml:"width" validate:"gt=0"`
		Height  float64       `yaml:"height" validate:"gt=0"`
		Margins MarginsConfig `yaml:"margins"`
	}

	LogoConfig struct {
		Path   string            `yaml:"path" sanitize:"assure_file_access" validate:"required"`
		Anchor common.LogoAnchor `yaml:"anchor"`
		X      float64           `yaml:"x" validate:"gte=0"`
		Y      float64           `yaml:"y" validate:"gte=0"`
		Width  float64           `yaml:"width" validate:"gt=0"`
		// Height of 0 keeps image aspect ratio.
		Height float64 `yaml:"height" validate:"gte=0"`
	}

	HeaderConfig struct {
		Font   FontConfig   `yaml:"font"`
		Height float64      `yaml:"height" validate:"gt=0"`
		Gap    float64      `yaml:"gap" validate:"gte=0"`
		Logos  []LogoConfig `yaml:"logos" validate:"dive"`
	}

	FooterConfig struct {
		Font   FontConfig  `yaml:"font"`
		Color  ColorConfig `yaml:"color" validate:"dive,gte=0,lte=255"`
		Offset float64     `yaml:"offset" validate:"gt=0"`
		Height float64     `yaml:"height" validate:"gt=0"`
	}

	ChapterTitleConfig struct {
		Font   FontConfig  `yaml:"font"`
		Height float64     `yaml:"height" validate:"gt=0"`
		Gap    float64     `yaml:"gap" validate:"gte=0"`
		Fill   ColorConfig `yaml:"fill" validate:"dive,gte=0,lte=255"`
		Color  ColorConfig `yaml:"color" validate:"dive,gte=0,lte=255"`
	}

	TextConfig struct {
		Font       FontConfig `yaml:"font"`
		LineHeight float64    `yaml:"line_height" validate:"gt=0"`
	}

	TablesConfig struct {
		LabelFont  FontConfig `yaml:"label_font"`
		HeaderFont FontConfig `yaml:"header_font"`
		CellFont   FontConfig `yaml:"cell_font"`
	}

	ImagesConfig struct {
		LabelFont FontConfig `yaml:"label_font"`
		// Offset shifts centered images to the left.
		Offset       float64 `yaml:"offset"`
		LabelReserve float64 `yaml:"label_reserve" validate:"gt=0"`
		JPEGQuality  int     `yaml:"jpeg_quality_level" validate:"min=40,max=100"`
		// DPI is used to rasterize vector images and charts.
		DPI int `yaml:"dpi" validate:"min=72,max=1200"`
	}

	// FontFileConfig names font definition produced by fpdf makefont
	// relative to fonts directory.
	FontFileConfig struct {
		Family string `yaml:"family" validate:"required"`
		Style  string `yaml:"style,omitempty" validate:"omitempty,max=3"`
		File   string `yaml:"file" validate:"required"`
	}

	MetainformationConfig struct {
		TitleTemplate string   `yaml:"title_template"`
		Author        string   `yaml:"author,omitempty"`
		Keywords      []string `yaml:"keywords,omitempty"`
		// CreationDate makes output reproducible when set.
		CreationDate string `yaml:"creation_date,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	}

	DocumentConfig struct {
		Page                  PageConfig            `yaml:"page"`
		Charset               string                `yaml:"charset" validate:"required"`
		Overflow              common.OverflowPolicy `yaml:"overflow"`
		Compress              bool                  `yaml:"compress"`
		FontsDir              string                `yaml:"fonts_dir,omitempty" sanitize:"path_clean"`
		Fonts                 []FontFileConfig      `yaml:"fonts,omitempty" validate:"dive"`
		Header                HeaderConfig          `yaml:"header"`
		Footer                FooterConfig          `yaml:"footer"`
		ChapterTitle          ChapterTitleConfig    `yaml:"chapter_title"`
		Text                  TextConfig            `yaml:"text"`
		Tables                TablesConfig          `yaml:"tables"`
		Images                ImagesConfig          `yaml:"images"`
		Metainformation       MetainformationConfig `yaml:"metainformation"`
		OutputNameTemplate    string                `yaml:"output_name_template"`
		FileNameTransliterate bool                  `yaml:"file_name_transliterate"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Document  DocumentConfig `yaml:"document"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
	MetaTitleTemplateFieldName  TemplateFieldName = "title_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
	gencfg.WithDoNotExpandField(string(MetaTitleTemplateFieldName)),
)

// checkConfig validates what tags cannot express.
func checkConfig(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(Config)

	doc := &cfg.Document
	fonts := map[string]string{
		"Document.Header.Font.Style":       doc.Header.Font.Style,
		"Document.Footer.Font.Style":       doc.Footer.Font.Style,
		"Document.ChapterTitle.Font.Style": doc.ChapterTitle.Font.Style,
		"Document.Text.Font.Style":         doc.Text.Font.Style,
		"Document.Tables.LabelFont.Style":  doc.Tables.LabelFont.Style,
		"Document.Tables.HeaderFont.Style": doc.Tables.HeaderFont.Style,
		"Document.Tables.CellFont.Style":   doc.Tables.CellFont.Style,
		"Document.Images.LabelFont.Style":  doc.Images.LabelFont.Style,
	}
	for i, f := range doc.Fonts {
		fonts[fmt.Sprintf("Document.Fonts[%d].Style", i)] = f.Style
	}
	for name, style := range fonts {
		if !validFontStyle(style) {
			sl.ReportError(style, name, "Style", "fontstyle", "")
		}
	}

	page := &doc.Page
	if page.Margins.Left+page.Margins.Right >= page.Width {
		sl.ReportError(page.Margins, "Document.Page.Margins", "Margins", "horizontal", "")
	}
	if page.Margins.Top+doc.Header.Height+doc.Header.Gap >= page.Height-page.Margins.Bottom {
		sl.ReportError(page.Margins, "Document.Page.Margins", "Margins", "vertical", "")
	}
	if doc.Images.LabelReserve < doc.Text.LineHeight {
		sl.ReportError(doc.Images.LabelReserve, "Document.Images.LabelReserve", "LabelReserve", "gtefield", "Document.Text.LineHeight")
	}
}

func validFontStyle(style string) bool {
	for i, r := range style {
		if !strings.ContainsRune("BIU", r) || strings.ContainsRune(style[i+1:], r) {
			return false
		}
	}
	return true
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, fmt.Errorf("failed to sanitize configuration: %w", err)
		}
		if err := gencfg.Validate(cfg, gencfg.WithAdditionalChecks(checkConfig)); err != nil {
			return nil, fmt.Errorf("failed to validate configuration: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration tamplate to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
