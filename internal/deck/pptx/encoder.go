// Package pptx writes slidedoc documents as Office Open XML presentations.
// Every page becomes one slide on a single blank layout; shapes keep their
// absolute EMU frames.
package pptx

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/yungbote/deckgen-backend/internal/deck/slidedoc"
)

type Encoder struct {
	Application   string
	Font          string
	EastAsianFont string
	Now           func() time.Time
}

const defaultFont = "Calibri"

type Option func(*Encoder)

// WithFonts sets the theme fonts written to theme1.xml. Blank names keep
// the defaults; a blank east-asian face follows the latin one.
func WithFonts(latin, eastAsian string) Option {
	return func(e *Encoder) {
		if s := strings.TrimSpace(latin); s != "" {
			e.Font = s
		}
		e.EastAsianFont = strings.TrimSpace(eastAsian)
	}
}

func New(opts ...Option) *Encoder {
	e := &Encoder{
		Application: "deckgen",
		Font:        defaultFont,
		Now:         time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Encoder) Extension() string { return ".pptx" }

// Encode writes doc as a .pptx archive. It fails only when w fails.
func (e *Encoder) Encode(w io.Writer, doc *slidedoc.Document) error {
	if doc == nil {
		return fmt.Errorf("pptx: nil document")
	}
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	ts := now()
	n := len(doc.Pages)
	latin := e.Font
	if latin == "" {
		latin = defaultFont
	}
	eastAsian := e.EastAsianFont
	if eastAsian == "" {
		eastAsian = latin
	}

	type part struct {
		name string
		data []byte
	}
	parts := []part{
		{"[Content_Types].xml", contentTypesXML(n)},
		{"_rels/.rels", rootRelsXML()},
		{"docProps/core.xml", coreXML(doc.Title, e.Application, ts)},
		{"docProps/app.xml", appXML(e.Application, n)},
		{"ppt/presentation.xml", presentationXML(doc.Canvas, n)},
		{"ppt/_rels/presentation.xml.rels", presentationRels(n)},
		{"ppt/presProps.xml", presPropsXML()},
		{"ppt/viewProps.xml", viewPropsXML()},
		{"ppt/tableStyles.xml", tableStylesXML()},
		{"ppt/theme/theme1.xml", themeXML(latin, eastAsian)},
		{"ppt/slideMasters/slideMaster1.xml", slideMasterXML()},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRels()},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayoutXML()},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRels()},
	}
	for i, page := range doc.Pages {
		parts = append(parts,
			part{fmt.Sprintf("ppt/slides/slide%d.xml", i+1), slideXML(page)},
			part{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1), slideRels()},
		)
	}

	zw := zip.NewWriter(w)
	for _, p := range parts {
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: p.name, Method: zip.Deflate, Modified: ts})
		if err != nil {
			return fmt.Errorf("pptx: create %s: %w", p.name, err)
		}
		if _, err := fw.Write(p.data); err != nil {
			return fmt.Errorf("pptx: write %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("pptx: finish archive: %w", err)
	}
	return nil
}
