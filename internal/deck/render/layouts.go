package render

import (
	"strings"

	"github.com/yungbote/deckgen-backend/internal/deck/plan"
	"github.com/yungbote/deckgen-backend/internal/deck/slidedoc"
	"github.com/yungbote/deckgen-backend/internal/deck/template"
)

func renderTitle(page *slidedoc.Page, s plan.Slide, tpl template.Template, presentationTitle string) {
	pal := tpl.Palette

	title := strings.TrimSpace(s.Title)
	if title == "" {
		title = presentationTitle
	}
	page.Add(textBox(slidedoc.RoleTitle, tpl.TitleBox, title, tpl.TitleFont, tpl.TitleColor, slidedoc.AlignCenter))

	sub := s.Content.Text(plan.KeyMainMessage)
	if strings.TrimSpace(sub) == "" {
		sub = s.Content.Text(plan.KeySubtitle)
	}
	if strings.TrimSpace(sub) != "" {
		page.Add(textBox(slidedoc.RoleSubtitle, tpl.SubtitleBox, sub, tpl.SubtitleFont, tpl.TitleColor, slidedoc.AlignCenter))
	}

	page.Add(box(slidedoc.RoleAccentBar, tpl.AccentBar, pal.Primary, pal.Primary))
}

func renderContent(page *slidedoc.Page, s plan.Slide, tpl template.Template) {
	pal := tpl.Palette
	addHeader(page, tpl)
	addTitle(page, tpl, s.Title)
	addText(page, slidedoc.RoleMessage, tpl.BodyBox, s.Content.Text(plan.KeyMainMessage), tpl.BodyFont, pal.Text)

	for i, pt := range capped(s.Content.List(plan.KeySupportingPoints), template.MaxPoints) {
		page.Add(textBox(slidedoc.RolePoint, tpl.ListSlot(i), pt, tpl.BodyFont, pal.Text, slidedoc.AlignLeft))
	}

	pairs := capped(s.Content.Pairs(plan.KeyData), template.MaxDataRows)
	if len(pairs) == 0 {
		return
	}
	panel := box(slidedoc.RoleMetricPanel, tpl.SidePanel, pal.Muted, pal.Secondary)
	panel.Paragraphs = append(panel.Paragraphs, slidedoc.Paragraph{
		Text: tpl.Labels.MetricsHeading, Font: tpl.BodyFont.Bolded(), Color: pal.Text, Align: slidedoc.AlignLeft,
	})
	for _, p := range pairs {
		panel.Paragraphs = append(panel.Paragraphs, slidedoc.Paragraph{
			Text: p.String(), Font: tpl.CaptionFont, Color: pal.Text, Align: slidedoc.AlignLeft,
		})
	}
	page.Add(panel)
}

func renderFinancial(page *slidedoc.Page, s plan.Slide, tpl template.Template) {
	pal := tpl.Palette
	addHeader(page, tpl)
	addTitle(page, tpl, s.Title)

	rows := s.Content.Pairs(plan.KeyData)
	if len(rows) == 0 {
		rows = financialRows(s.Content.Financials(), tpl.Labels)
	}
	for i, row := range capped(rows, template.MaxDataRows) {
		hl := box(slidedoc.RoleHighlight, tpl.ListSlot(i), pal.Muted, pal.Accent)
		hl.Anchor = slidedoc.AnchorMiddle
		hl.Paragraphs = []slidedoc.Paragraph{
			{Text: row.String(), Font: tpl.BodyFont.Bolded(), Color: pal.Text, Align: slidedoc.AlignLeft},
		}
		page.Add(hl)
	}

	addText(page, slidedoc.RoleMessage, tpl.BodyBox, s.Content.Text(plan.KeyMainMessage), tpl.BodyFont, pal.Text)
	addText(page, slidedoc.RoleCaption, tpl.CaptionBox, tpl.Caption, tpl.CaptionFont, pal.Text)
}

// financialRows derives highlight rows from financial_data when a slide
// carries no data mapping.
func financialRows(f plan.Financials, labels template.Captions) []plan.Pair {
	var rows []plan.Pair
	if f.Investment != "" {
		rows = append(rows, plan.Pair{Key: labels.Investment, Value: f.Investment})
	}
	for _, p := range f.Revenue {
		key := strings.TrimSpace(labels.RevenueYear + " " + p.Year)
		rows = append(rows, plan.Pair{Key: key, Value: p.Amount})
	}
	if f.ROI != "" {
		rows = append(rows, plan.Pair{Key: labels.ROI, Value: f.ROI})
	}
	return rows
}

func renderImplementation(page *slidedoc.Page, s plan.Slide, tpl template.Template) {
	pal := tpl.Palette
	addHeader(page, tpl)
	addTitle(page, tpl, s.Title)

	entries := s.Content.List(plan.KeySupportingPoints)
	if len(entries) == 0 {
		for _, ph := range s.Content.Timeline() {
			entries = append(entries, ph.Label())
		}
	}
	for i, entry := range capped(entries, template.MaxPhases) {
		fill := pal.Muted
		if i%2 == 1 {
			fill = pal.Background
		}
		bar := box(slidedoc.RolePhaseBar, tpl.ListSlot(i), fill, pal.Secondary)
		bar.Anchor = slidedoc.AnchorMiddle
		bar.Paragraphs = []slidedoc.Paragraph{
			{Text: entry, Font: tpl.BodyFont, Color: pal.Text, Align: slidedoc.AlignLeft},
		}
		page.Add(bar)
	}

	addText(page, slidedoc.RoleCallout, tpl.BodyBox, s.Content.Text(plan.KeyMainMessage), tpl.BodyFont, pal.Accent)
	addText(page, slidedoc.RoleCaption, tpl.CaptionBox, tpl.Caption, tpl.CaptionFont, pal.Text)
}

// renderChart marks where external chart content goes. It never draws data.
func renderChart(page *slidedoc.Page, s plan.Slide, tpl template.Template) {
	pal := tpl.Palette
	addHeader(page, tpl)
	addTitle(page, tpl, s.Title)
	addText(page, slidedoc.RoleMessage, tpl.BodyBox, s.Content.Text(plan.KeyMainMessage), tpl.BodyFont, pal.Text)

	label := tpl.Labels.ChartPlaceholder
	if ct := strings.TrimSpace(s.Content.Text(plan.KeyChartType)); ct != "" {
		label = labelled(label, ct)
	}
	page.Add(slidedoc.Shape{
		Role:     slidedoc.RoleChartPlaceholder,
		Geometry: slidedoc.GeometryRect,
		Frame:    tpl.SidePanel,
		Line:     pal.Muted.Ptr(),
		Dashed:   true,
		Anchor:   slidedoc.AnchorMiddle,
		Paragraphs: []slidedoc.Paragraph{
			{Text: label, Font: tpl.CaptionFont, Color: pal.Muted, Align: slidedoc.AlignCenter},
		},
	})
}

func renderSolution(page *slidedoc.Page, s plan.Slide, tpl template.Template) {
	pal := tpl.Palette
	addHeader(page, tpl)
	addTitle(page, tpl, s.Title)
	addText(page, slidedoc.RoleMessage, tpl.BodyBox, s.Content.Text(plan.KeyMainMessage), tpl.BodyFont, pal.Text)

	columns := []struct {
		heading string
		items   []string
	}{
		{tpl.Labels.SolutionsHeading, s.Content.List(plan.KeySolutionPoints)},
		{tpl.Labels.BenefitsHeading, s.Content.List(plan.KeyBenefits)},
	}
	for c, col := range columns {
		if len(col.items) == 0 {
			continue
		}
		shift := slidedoc.EMU(c) * tpl.ColumnShift
		heading := tpl.HeadingBox
		heading.X += shift
		addText(page, slidedoc.RoleColumnHeading, heading, col.heading, tpl.BodyFont.Bolded(), pal.Primary)
		for i, item := range capped(col.items, template.MaxPoints) {
			frame := tpl.ListSlot(i)
			frame.X += shift
			page.Add(textBox(slidedoc.RolePoint, frame, item, tpl.BodyFont, pal.Text, slidedoc.AlignLeft))
		}
	}
}

func renderConclusion(page *slidedoc.Page, s plan.Slide, tpl template.Template) {
	pal := tpl.Palette
	addHeader(page, tpl)

	title := strings.TrimSpace(s.Title)
	if title == "" {
		title = tpl.DefaultTitle
	}
	addTitle(page, tpl, title)
	addText(page, slidedoc.RoleMessage, tpl.BodyBox, s.Content.Text(plan.KeyMainMessage), tpl.EmphasisFont, pal.Accent)

	for i, item := range capped(s.Content.List(plan.KeyActionItems), template.MaxPoints) {
		page.Add(textBox(slidedoc.RoleActionItem, tpl.ListSlot(i), item, tpl.BodyFont, pal.Text, slidedoc.AlignLeft))
	}

	timeline := strings.TrimSpace(s.Content.Text(plan.KeyTimeline))
	if timeline == "" {
		var labels []string
		for _, ph := range capped(s.Content.Timeline(), template.MaxPhases) {
			labels = append(labels, ph.Label())
		}
		timeline = strings.Join(labels, " / ")
	}
	if timeline != "" {
		addText(page, slidedoc.RoleCaption, tpl.NoteBox, labelled(tpl.Labels.Timeline, timeline), tpl.CaptionFont, pal.Text)
	}
	if contact := strings.TrimSpace(s.Content.Text(plan.KeyContactInfo)); contact != "" {
		addText(page, slidedoc.RoleCaption, tpl.CaptionBox, labelled(tpl.Labels.Contact, contact), tpl.CaptionFont, pal.Text)
	}
}
