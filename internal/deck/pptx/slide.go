package pptx

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/yungbote/deckgen-backend/internal/deck/slidedoc"
)

func slideXML(page *slidedoc.Page) []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">`, nsA, nsR, nsP)
	b.WriteString(`<p:cSld>`)
	writeBackground(&b, page.Background)
	b.WriteString(`<p:spTree>` + emptyGroup)
	for i, s := range page.Shapes {
		writeShape(&b, i+2, s)
	}
	b.WriteString(`</p:spTree></p:cSld>`)
	b.WriteString(`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>`)
	b.WriteString(`</p:sld>`)
	return b.Bytes()
}

func solidFill(c slidedoc.Color) string {
	return fmt.Sprintf(`<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, c.Hex())
}

func writeBackground(b *bytes.Buffer, bg slidedoc.Background) {
	b.WriteString(`<p:bg><p:bgPr>`)
	if bg.GradientTo != nil {
		fmt.Fprintf(b, `<a:gradFill rotWithShape="1"><a:gsLst>`+
			`<a:gs pos="0"><a:srgbClr val="%s"/></a:gs>`+
			`<a:gs pos="100000"><a:srgbClr val="%s"/></a:gs>`+
			`</a:gsLst><a:lin ang="5400000" scaled="0"/></a:gradFill>`, bg.Fill.Hex(), bg.GradientTo.Hex())
	} else {
		b.WriteString(solidFill(bg.Fill))
	}
	b.WriteString(`<a:effectLst/></p:bgPr></p:bg>`)
}

// writeShape emits one p:sp. id must be unique within the slide; 1 is the
// group itself.
func writeShape(b *bytes.Buffer, id int, s slidedoc.Shape) {
	b.WriteString(`<p:sp><p:nvSpPr>`)
	fmt.Fprintf(b, `<p:cNvPr id="%d" name="%s %d"/>`, id, esc(string(s.Role)), id-1)
	if s.Geometry == slidedoc.GeometryTextBox {
		b.WriteString(`<p:cNvSpPr txBox="1"/>`)
	} else {
		b.WriteString(`<p:cNvSpPr/>`)
	}
	b.WriteString(`<p:nvPr/></p:nvSpPr>`)

	b.WriteString(`<p:spPr>`)
	fmt.Fprintf(b, `<a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`, s.Frame.X, s.Frame.Y, s.Frame.W, s.Frame.H)
	b.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom>`)
	if s.Fill != nil {
		b.WriteString(solidFill(*s.Fill))
	} else {
		b.WriteString(`<a:noFill/>`)
	}
	if s.Line != nil {
		b.WriteString(`<a:ln w="12700">` + solidFill(*s.Line))
		if s.Dashed {
			b.WriteString(`<a:prstDash val="dash"/>`)
		}
		b.WriteString(`</a:ln>`)
	} else {
		b.WriteString(`<a:ln><a:noFill/></a:ln>`)
	}
	b.WriteString(`</p:spPr>`)

	if len(s.Paragraphs) > 0 {
		anchor := "t"
		if s.Anchor == slidedoc.AnchorMiddle {
			anchor = "ctr"
		}
		fmt.Fprintf(b, `<p:txBody><a:bodyPr wrap="square" rtlCol="0" anchor="%s"><a:noAutofit/></a:bodyPr><a:lstStyle/>`, anchor)
		for _, p := range s.Paragraphs {
			writeParagraph(b, p)
		}
		b.WriteString(`</p:txBody>`)
	}
	b.WriteString(`</p:sp>`)
}

func algn(a slidedoc.Align) string {
	switch a {
	case slidedoc.AlignCenter:
		return "ctr"
	case slidedoc.AlignRight:
		return "r"
	default:
		return "l"
	}
}

func runProps(tag string, p slidedoc.Paragraph) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<a:%s lang="ja-JP" altLang="en-US" sz="%d"`, tag, fontSize(p.Font.Size))
	if p.Font.Bold {
		b.WriteString(` b="1"`)
	}
	b.WriteString(` dirty="0">`)
	b.WriteString(solidFill(p.Color))
	if p.Font.Family != "" {
		fmt.Fprintf(&b, `<a:latin typeface="%s"/>`, esc(p.Font.Family))
	}
	if p.Font.EastAsian != "" {
		fmt.Fprintf(&b, `<a:ea typeface="%s"/>`, esc(p.Font.EastAsian))
	}
	fmt.Fprintf(&b, `</a:%s>`, tag)
	return b.String()
}

// fontSize converts points to hundredths, clamped to the range DrawingML
// accepts.
func fontSize(pt float64) int {
	sz := int(math.Round(pt * 100))
	switch {
	case sz < 100:
		return 100
	case sz > 400000:
		return 400000
	default:
		return sz
	}
}

func writeParagraph(b *bytes.Buffer, p slidedoc.Paragraph) {
	fmt.Fprintf(b, `<a:p><a:pPr algn="%s"/>`, algn(p.Align))
	text := strings.ReplaceAll(p.Text, "\r\n", "\n")
	if text != "" {
		for i, line := range strings.Split(text, "\n") {
			if i > 0 {
				b.WriteString(`<a:br>` + runProps("rPr", p) + `</a:br>`)
			}
			if line == "" {
				continue
			}
			b.WriteString(`<a:r>` + runProps("rPr", p))
			fmt.Fprintf(b, `<a:t>%s</a:t></a:r>`, esc(line))
		}
	}
	b.WriteString(runProps("endParaRPr", p))
	b.WriteString(`</a:p>`)
}
