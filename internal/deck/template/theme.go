package template

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/deckgen-backend/internal/deck/slidedoc"
)

//go:embed default_theme.yaml
var themeFS embed.FS

type Palette struct {
	Primary    slidedoc.Color `yaml:"primary" toml:"primary"`
	Secondary  slidedoc.Color `yaml:"secondary" toml:"secondary"`
	Accent     slidedoc.Color `yaml:"accent" toml:"accent"`
	Text       slidedoc.Color `yaml:"text" toml:"text"`
	Muted      slidedoc.Color `yaml:"muted" toml:"muted"`
	Background slidedoc.Color `yaml:"background" toml:"background"`
}

// Typography sizes are points.
type Typography struct {
	Family          string  `yaml:"family" toml:"family"`
	EastAsianFamily string  `yaml:"east_asian_family" toml:"east_asian_family"`
	Title           float64 `yaml:"title" toml:"title"`
	Subtitle        float64 `yaml:"subtitle" toml:"subtitle"`
	Header          float64 `yaml:"header" toml:"header"`
	Body            float64 `yaml:"body" toml:"body"`
	Caption         float64 `yaml:"caption" toml:"caption"`
}

func (t Typography) font(size float64) slidedoc.Font {
	return slidedoc.Font{Family: t.Family, EastAsian: t.EastAsianFamily, Size: size}
}

// Captions are the fixed strings layouts print next to plan content.
type Captions struct {
	MetricsHeading   string `yaml:"metrics_heading" toml:"metrics_heading"`
	Source           string `yaml:"source" toml:"source"`
	Owner            string `yaml:"owner" toml:"owner"`
	SolutionsHeading string `yaml:"solutions_heading" toml:"solutions_heading"`
	BenefitsHeading  string `yaml:"benefits_heading" toml:"benefits_heading"`
	Investment       string `yaml:"investment" toml:"investment"`
	RevenueYear      string `yaml:"revenue_year" toml:"revenue_year"`
	ROI              string `yaml:"roi" toml:"roi"`
	ChartPlaceholder string `yaml:"chart_placeholder" toml:"chart_placeholder"`
	ConclusionTitle  string `yaml:"conclusion_title" toml:"conclusion_title"`
	Timeline         string `yaml:"timeline" toml:"timeline"`
	Contact          string `yaml:"contact" toml:"contact"`
}

// Text joins every caption, for font coverage checks.
func (c Captions) Text() string {
	return strings.Join([]string{
		c.MetricsHeading, c.Source, c.Owner, c.SolutionsHeading, c.BenefitsHeading, c.Investment,
		c.RevenueYear, c.ROI, c.ChartPlaceholder, c.ConclusionTitle, c.Timeline, c.Contact,
	}, " ")
}

// Theme is loaded once at startup and never mutated.
type Theme struct {
	Name       string     `yaml:"name" toml:"name"`
	Palette    Palette    `yaml:"palette" toml:"palette"`
	Typography Typography `yaml:"typography" toml:"typography"`
	Captions   Captions   `yaml:"captions" toml:"captions"`
}

// DefaultTheme returns the embedded theme.
func DefaultTheme() (Theme, error) {
	data, err := themeFS.ReadFile("default_theme.yaml")
	if err != nil {
		return Theme{}, err
	}
	var th Theme
	if err := yaml.Unmarshal(data, &th); err != nil {
		return Theme{}, fmt.Errorf("template: default theme: %w", err)
	}
	return th, th.validate()
}

// LoadTheme overlays the file at path on the embedded theme. Keys missing
// from the file keep their default. An empty path returns the default.
func LoadTheme(path string) (Theme, error) {
	th, err := DefaultTheme()
	if err != nil {
		return Theme{}, err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return th, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("template: read theme: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &th)
	case ".yaml", ".yml", "":
		err = yaml.Unmarshal(data, &th)
	default:
		return Theme{}, fmt.Errorf("template: unsupported theme format %q", filepath.Ext(path))
	}
	if err != nil {
		return Theme{}, fmt.Errorf("template: parse theme %s: %w", path, err)
	}
	return th, th.validate()
}

func (t Theme) validate() error {
	ty := t.Typography
	if ty.Title <= 0 || ty.Subtitle <= 0 || ty.Header <= 0 || ty.Body <= 0 || ty.Caption <= 0 {
		return errors.New("template: font sizes must be positive")
	}
	if strings.TrimSpace(ty.Family) == "" {
		return errors.New("template: font family is required")
	}
	return nil
}
