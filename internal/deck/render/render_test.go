package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/deckgen-backend/internal/deck/plan"
	"github.com/yungbote/deckgen-backend/internal/deck/slidedoc"
	"github.com/yungbote/deckgen-backend/internal/deck/template"
)

func renderOne(t *testing.T, raw string) (*slidedoc.Page, template.Template) {
	t.Helper()
	p, _ := plan.Parse([]byte(raw))
	require.Len(t, p.Slides, 1)

	th, err := template.DefaultTheme()
	require.NoError(t, err)
	reg := template.NewRegistry(th)

	s := p.Slides[0]
	tpl := reg.Resolve(string(s.Type))
	page := &slidedoc.Page{}
	New().Render(page, s, tpl, p.Title)
	return page, tpl
}

func texts(shapes []slidedoc.Shape) []string {
	out := make([]string, 0, len(shapes))
	for _, s := range shapes {
		out = append(out, s.Text())
	}
	return out
}

func TestUnknownTypeRendersAsContent(t *testing.T) {
	t.Parallel()
	page, tpl := renderOne(t, `{"slides":[{"title":"Odd","type":"unknown_tag","content":{"main_message":"still here","supporting_points":["a"]}}]}`)

	require.Equal(t, plan.ContentSlide, tpl.Kind)
	require.Equal(t, string(plan.ContentSlide), page.Kind)
	require.Equal(t, []string{"Odd"}, texts(page.ShapesByRole(slidedoc.RoleTitle)))
	require.Equal(t, []string{"still here"}, texts(page.ShapesByRole(slidedoc.RoleMessage)))
	require.Len(t, page.ShapesByRole(slidedoc.RoleHeaderBar), 1)
}

func TestContentCapsSupportingPoints(t *testing.T) {
	t.Parallel()
	page, tpl := renderOne(t, `{"slides":[{"type":"content_slide","content":{"supporting_points":["p1","p2","p3","p4","p5","p6","p7","p8"]}}]}`)

	points := page.ShapesByRole(slidedoc.RolePoint)
	require.Equal(t, []string{"p1", "p2", "p3", "p4", "p5"}, texts(points))
	for i, pt := range points {
		require.Equal(t, tpl.ListSlot(i), pt.Frame)
		require.Equal(t, slidedoc.AlignLeft, pt.Paragraphs[0].Align)
	}
	require.Equal(t, slidedoc.RectCm(3, 7, 25, 1.5), points[0].Frame)
	require.Equal(t, slidedoc.RectCm(3, 15, 25, 1.5), points[4].Frame)
	require.Empty(t, page.ShapesByRole(slidedoc.RoleMetricPanel))
}

func TestContentMetricsPanelKeepsOrder(t *testing.T) {
	t.Parallel()
	page, tpl := renderOne(t, `{"slides":[{"content":{"main_message":"m","data":{"NPS":42,"Churn":"3%","ARR":"$10M"}}}]}`)

	panels := page.ShapesByRole(slidedoc.RoleMetricPanel)
	require.Len(t, panels, 1)
	require.Equal(t, slidedoc.RectCm(24, 4, 7, 6), panels[0].Frame)
	require.Equal(t, tpl.Labels.MetricsHeading+"\nNPS: 42\nChurn: 3%\nARR: $10M", panels[0].Text())
}

func TestFinancialEndToEndExample(t *testing.T) {
	t.Parallel()
	page, tpl := renderOne(t, `{"title":"Q1 Review","slides":[{"title":"Results","type":"financial_slide","content":{"main_message":"Revenue up 12%","data":{"Revenue":"$4.2M","Margin":"18%"}}}]}`)

	require.Equal(t, string(plan.FinancialSlide), page.Kind)
	hl := page.ShapesByRole(slidedoc.RoleHighlight)
	require.Equal(t, []string{"Revenue: $4.2M", "Margin: 18%"}, texts(hl))
	require.Equal(t, slidedoc.RectCm(3, 4, 10, 2), hl[0].Frame)
	require.Equal(t, slidedoc.RectCm(3, 6.5, 10, 2), hl[1].Frame)
	require.True(t, hl[0].Paragraphs[0].Font.Bold)

	msg := page.ShapesByRole(slidedoc.RoleMessage)
	require.Equal(t, []string{"Revenue up 12%"}, texts(msg))
	require.Equal(t, slidedoc.RectCm(15, 4, 15, 6), msg[0].Frame)

	require.Equal(t, []string{tpl.Labels.Source}, texts(page.ShapesByRole(slidedoc.RoleCaption)))
	header := page.ShapesByRole(slidedoc.RoleHeaderBar)
	require.Len(t, header, 1)
	require.Equal(t, tpl.Palette.Accent, *header[0].Fill)
}

func TestFinancialDerivesRowsFromFinancialData(t *testing.T) {
	t.Parallel()
	page, tpl := renderOne(t, `{"slides":[{"type":"financial_slide","content":{"financial_data":{"investment":"$1M","revenue_projection":[{"year":1,"amount":"$0.2M"},{"year":2,"amount":"$0.6M"}],"roi":"18 months"}}}]}`)

	l := tpl.Labels
	want := []string{
		l.Investment + ": $1M",
		l.RevenueYear + " 1: $0.2M",
		l.RevenueYear + " 2: $0.6M",
		l.ROI + ": 18 months",
	}
	require.Equal(t, want, texts(page.ShapesByRole(slidedoc.RoleHighlight)))
}

func TestFinancialToleratesMalformedData(t *testing.T) {
	t.Parallel()
	page, _ := renderOne(t, `{"slides":[{"type":"financial_slide","content":{"data":"n/a","financial_data":[1,2]}}]}`)
	require.Empty(t, page.ShapesByRole(slidedoc.RoleHighlight))
	require.Empty(t, page.ShapesByRole(slidedoc.RoleMessage))
	require.Len(t, page.ShapesByRole(slidedoc.RoleCaption), 1)
}

func TestImplementationBarsAlternateByPosition(t *testing.T) {
	t.Parallel()
	page, tpl := renderOne(t, `{"slides":[{"type":"implementation_slide","content":{"main_message":"Kick off in May","supporting_points":["same","same","same","same","same","same"]}}]}`)

	bars := page.ShapesByRole(slidedoc.RolePhaseBar)
	require.Len(t, bars, 5)
	for i, b := range bars {
		want := tpl.Palette.Muted
		if i%2 == 1 {
			want = tpl.Palette.Background
		}
		require.Equal(t, want, *b.Fill, "bar %d", i)
		require.Equal(t, slidedoc.RectCm(3, 4+2*float64(i), 25, 1.5), b.Frame)
	}

	callout := page.ShapesByRole(slidedoc.RoleCallout)
	require.Len(t, callout, 1)
	require.Equal(t, tpl.Palette.Accent, callout[0].Paragraphs[0].Color)
	require.Equal(t, []string{tpl.Labels.Owner}, texts(page.ShapesByRole(slidedoc.RoleCaption)))
}

func TestImplementationFallsBackToTimeline(t *testing.T) {
	t.Parallel()
	page, _ := renderOne(t, `{"slides":[{"type":"implementation_slide","content":{"timeline":[{"phase":"Pilot","duration":"2 months"},{"phase":"Rollout","duration":"6 months"}]}}]}`)
	require.Equal(t, []string{"Pilot (2 months)", "Rollout (6 months)"}, texts(page.ShapesByRole(slidedoc.RolePhaseBar)))
}

func TestTitleSlidePrefersSlideTitle(t *testing.T) {
	t.Parallel()
	page, tpl := renderOne(t, `{"title":"Deck","slides":[{"title":"Kickoff","type":"title_slide","content":{"main_message":"FY25"}}]}`)
	titles := page.ShapesByRole(slidedoc.RoleTitle)
	require.Equal(t, []string{"Kickoff"}, texts(titles))
	require.Equal(t, slidedoc.AlignCenter, titles[0].Paragraphs[0].Align)
	require.Equal(t, []string{"FY25"}, texts(page.ShapesByRole(slidedoc.RoleSubtitle)))
	require.Len(t, page.ShapesByRole(slidedoc.RoleAccentBar), 1)
	require.Equal(t, tpl.Background, page.Background)
	require.NotNil(t, page.Background.GradientTo)

	page, _ = renderOne(t, `{"title":"Deck","slides":[{"title":"","type":"title_slide","content":{"subtitle":"sub"}}]}`)
	require.Equal(t, []string{"Deck"}, texts(page.ShapesByRole(slidedoc.RoleTitle)))
	require.Equal(t, []string{"sub"}, texts(page.ShapesByRole(slidedoc.RoleSubtitle)))
}

func TestChartSlideDrawsPlaceholderOnly(t *testing.T) {
	t.Parallel()
	page, tpl := renderOne(t, `{"slides":[{"type":"chart_slide","content":{"main_message":"Growth","chart_type":"bar_chart","data":{"2023":1,"2024":2}}}]}`)

	ph := page.ShapesByRole(slidedoc.RoleChartPlaceholder)
	require.Len(t, ph, 1)
	require.Nil(t, ph[0].Fill)
	require.True(t, ph[0].Dashed)
	require.Equal(t, tpl.Labels.ChartPlaceholder+": bar_chart", ph[0].Text())
	require.Empty(t, page.ShapesByRole(slidedoc.RoleMetricPanel))
	require.Empty(t, page.ShapesByRole(slidedoc.RoleHighlight))
}

func TestSolutionColumns(t *testing.T) {
	t.Parallel()
	page, tpl := renderOne(t, `{"slides":[{"type":"solution_slide","content":{"solution_points":["s1","s2"],"benefits":["b1"]}}]}`)

	headings := page.ShapesByRole(slidedoc.RoleColumnHeading)
	require.Equal(t, []string{tpl.Labels.SolutionsHeading, tpl.Labels.BenefitsHeading}, texts(headings))
	require.Equal(t, headings[0].Frame.X+tpl.ColumnShift, headings[1].Frame.X)

	points := page.ShapesByRole(slidedoc.RolePoint)
	require.Equal(t, []string{"s1", "s2", "b1"}, texts(points))
	require.Equal(t, points[0].Frame.Y, points[2].Frame.Y)
}

func TestConclusionDefaults(t *testing.T) {
	t.Parallel()
	page, tpl := renderOne(t, `{"slides":[{"title":"","type":"conclusion_slide","content":{"main_message":"Go","action_items":["a","b"],"timeline":"Q3","contact_info":"pmo@example.com"}}]}`)

	require.Equal(t, []string{"Summary"}, texts(page.ShapesByRole(slidedoc.RoleTitle)))
	msg := page.ShapesByRole(slidedoc.RoleMessage)
	require.Len(t, msg, 1)
	require.Equal(t, tpl.Palette.Accent, msg[0].Paragraphs[0].Color)
	require.Equal(t, tpl.EmphasisFont, msg[0].Paragraphs[0].Font)
	require.Equal(t, []string{"a", "b"}, texts(page.ShapesByRole(slidedoc.RoleActionItem)))
	require.Equal(t, []string{
		tpl.Labels.Timeline + ": Q3",
		tpl.Labels.Contact + ": pmo@example.com",
	}, texts(page.ShapesByRole(slidedoc.RoleCaption)))
}

func TestEveryLayoutStaysOnCanvas(t *testing.T) {
	t.Parallel()
	full := `{"main_message":"m","subtitle":"s","supporting_points":["1","2","3","4","5","6"],"data":{"a":1,"b":2,"c":3,"d":4,"e":5,"f":6},"solution_points":["1","2","3","4","5","6"],"benefits":["1","2","3","4","5","6"],"action_items":["1","2","3","4","5","6"],"timeline":"soon","contact_info":"c","chart_type":"pie"}`
	for _, kind := range plan.SlideTypes() {
		page, _ := renderOne(t, `{"slides":[{"type":"`+string(kind)+`","content":`+full+`}]}`)
		require.NotEmpty(t, page.Shapes, kind)
		for _, s := range page.Shapes {
			require.True(t, s.Frame.Within(template.Canvas()), "%s: %s at %s", kind, s.Role, s.Frame)
		}
	}
}
