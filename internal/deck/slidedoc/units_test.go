package slidedoc

import (
	"encoding/json"
	"testing"
)

func TestCm(t *testing.T) {
	t.Parallel()
	if got := Cm(33.867); got != 12192120 {
		t.Fatalf("Cm(33.867): want=%d got=%d", 12192120, got)
	}
	if got := Cm(19.05); got != 6858000 {
		t.Fatalf("Cm(19.05): want=%d got=%d", 6858000, got)
	}
	r := RectCm(2, 4, 29, 1.5)
	if r.Right() != Cm(31) || r.Bottom() != Cm(5.5) {
		t.Fatalf("rect edges: %v", r)
	}
	if !r.Within(Size{W: Cm(33.867), H: Cm(19.05)}) {
		t.Fatalf("rect should fit the canvas: %v", r)
	}
	if RectCm(30, 0, 5, 1).Within(Size{W: Cm(33.867), H: Cm(19.05)}) {
		t.Fatalf("overflowing rect reported as within")
	}
}

func TestColorText(t *testing.T) {
	t.Parallel()
	var c Color
	if err := json.Unmarshal([]byte(`"#0070c0"`), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c != RGB(0x00, 0x70, 0xC0) {
		t.Fatalf("parsed: %v", c)
	}
	if c.Hex() != "0070C0" {
		t.Fatalf("Hex: %q", c.Hex())
	}
	if _, err := ParseColor("blue"); err == nil {
		t.Fatalf("expected error for non-hex color")
	}
}

func TestPageShapesByRole(t *testing.T) {
	t.Parallel()
	doc := New("Deck", Size{W: Cm(10), H: Cm(5)})
	p := doc.NewPage()
	p.Add(Shape{Role: RolePoint, Paragraphs: []Paragraph{{Text: "a"}, {Text: "b"}}})
	p.Add(Shape{Role: RoleTitle})
	p.Add(Shape{Role: RolePoint})

	points := p.ShapesByRole(RolePoint)
	if len(points) != 2 {
		t.Fatalf("points: want=2 got=%d", len(points))
	}
	if points[0].Geometry != GeometryTextBox || points[0].Anchor != AnchorTop {
		t.Fatalf("defaults not applied: %#v", points[0])
	}
	if points[0].Text() != "a\nb" {
		t.Fatalf("Text: %q", points[0].Text())
	}
	if len(doc.Pages) != 1 || doc.Pages[0] != p {
		t.Fatalf("document does not own the page")
	}
}
