package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/deckgen-backend/internal/deck/plan"
	"github.com/yungbote/deckgen-backend/internal/deck/slidedoc"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	th, err := DefaultTheme()
	require.NoError(t, err)
	return NewRegistry(th)
}

func TestCanvasMatchesCentimetreSize(t *testing.T) {
	require.Equal(t, slidedoc.Size{W: slidedoc.Cm(33.867), H: slidedoc.Cm(19.05)}, Canvas())
}

func TestResolveFallsBackToContent(t *testing.T) {
	t.Parallel()
	r := newTestRegistry(t)

	for _, tag := range []string{"", "unknown_tag", "Title_Slide", " content_slide"} {
		got := r.Resolve(tag)
		require.Equal(t, plan.ContentSlide, got.Kind, "tag %q", tag)
	}
	for _, kind := range plan.SlideTypes() {
		require.Equal(t, kind, r.Resolve(string(kind)).Kind)
	}
}

func TestTemplateSlotsFitCanvas(t *testing.T) {
	t.Parallel()
	r := newTestRegistry(t)

	for _, kind := range plan.SlideTypes() {
		tpl := r.Resolve(string(kind))
		slots := map[string]slidedoc.Rect{
			"header":   tpl.HeaderBox,
			"title":    tpl.TitleBox,
			"subtitle": tpl.SubtitleBox,
			"accent":   tpl.AccentBar,
			"body":     tpl.BodyBox,
			"side":     tpl.SidePanel,
			"heading":  tpl.HeadingBox,
			"note":     tpl.NoteBox,
			"caption":  tpl.CaptionBox,
		}
		if tpl.ListStep > 0 {
			last := tpl.ListSlot(MaxPoints - 1)
			slots["last list entry"] = last
			if tpl.ColumnShift > 0 {
				last.X += tpl.ColumnShift
				slots["last list entry, second column"] = last
			}
		}
		for name, rect := range slots {
			require.True(t, rect.Within(Canvas()), "%s: %s slot %s outside canvas", kind, name, rect)
		}
	}
}

func TestTitleTemplate(t *testing.T) {
	t.Parallel()
	th, err := DefaultTheme()
	require.NoError(t, err)
	tpl := NewRegistry(th).Resolve(string(plan.TitleSlide))

	require.Nil(t, tpl.HeaderBar)
	require.NotNil(t, tpl.Background.GradientTo)
	require.Equal(t, th.Palette.Primary, tpl.Background.Fill)
	require.Equal(t, *th.Palette.Secondary.Ptr(), *tpl.Background.GradientTo)
	require.Equal(t, slidedoc.AlignCenter, tpl.TitleAlign)
	require.Equal(t, 36.0, tpl.TitleFont.Size)
	require.True(t, tpl.TitleFont.Bold)
	require.Equal(t, slidedoc.RectCm(2, 6, 30, 4), tpl.TitleBox)
}

func TestDefaultTheme(t *testing.T) {
	t.Parallel()
	th, err := DefaultTheme()
	require.NoError(t, err)
	require.Equal(t, "0070C0", th.Palette.Primary.Hex())
	require.Equal(t, "FFC000", th.Palette.Accent.Hex())
	require.Equal(t, 18.0, th.Typography.Body)
	require.Equal(t, "メトリクス", th.Captions.MetricsHeading)
}

func TestLoadThemeOverlay(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "theme.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("palette:\n  primary: \"#112233\"\ncaptions:\n  metrics_heading: Metrics\n"), 0o644))
	th, err := LoadTheme(yamlPath)
	require.NoError(t, err)
	require.Equal(t, "112233", th.Palette.Primary.Hex())
	require.Equal(t, "FFC000", th.Palette.Accent.Hex(), "unset keys keep defaults")
	require.Equal(t, "Metrics", th.Captions.MetricsHeading)

	tomlPath := filepath.Join(dir, "theme.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte("[typography]\nbody = 20.0\n"), 0o644))
	th, err = LoadTheme(tomlPath)
	require.NoError(t, err)
	require.Equal(t, 20.0, th.Typography.Body)
	require.Equal(t, 36.0, th.Typography.Title)

	badPath := filepath.Join(dir, "theme.yaml.bak")
	require.NoError(t, os.WriteFile(badPath, []byte("x"), 0o644))
	_, err = LoadTheme(badPath)
	require.Error(t, err)

	zeroPath := filepath.Join(dir, "zero.yml")
	require.NoError(t, os.WriteFile(zeroPath, []byte("typography:\n  body: 0\n"), 0o644))
	_, err = LoadTheme(zeroPath)
	require.Error(t, err)
}
