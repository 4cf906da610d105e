// Package pdf renders print-ready CAV certificates by stamping record data
// onto a fixed multi-page template.
package pdf

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-pdf/fpdf"
	contrib "github.com/go-pdf/fpdf/contrib/gofpdi"
	"github.com/phpdave11/gofpdi"

	"cavreg/internal/models"
)

// Name auto-fit: shrink from the base size in half-point steps until the
// widest name slot fits, never below the floor.
const (
	baseNameSize = 11.0
	minNameSize  = 9.0
	maxNameWidth = 120.0
)

// TemplateLoadError reports a template asset that could not be read or
// parsed.
type TemplateLoadError struct{ Err error }

func (e *TemplateLoadError) Error() string { return "load template: " + e.Err.Error() }
func (e *TemplateLoadError) Unwrap() error { return e.Err }

// RenderError reports a failure while stamping or serializing a document.
// Callers get no partial artifact.
type RenderError struct{ Err error }

func (e *RenderError) Error() string { return "render document: " + e.Err.Error() }
func (e *RenderError) Unwrap() error { return e.Err }

// LoadTemplate reads the template asset from disk.
func LoadTemplate(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &TemplateLoadError{Err: err}
	}
	return data, nil
}

// Generator overlays record data onto the CAV template. It holds only the
// immutable template bytes, so concurrent renders are safe.
type Generator struct {
	template []byte
	pages    int
}

// New parses the template and checks it against the placement table once, so
// a template/layout mismatch fails at startup rather than on first render.
func New(template []byte) (g *Generator, err error) {
	// gofpdi panics on malformed input.
	defer func() {
		if r := recover(); r != nil {
			err = &TemplateLoadError{Err: fmt.Errorf("parse template: %v", r)}
		}
	}()

	rs := io.ReadSeeker(bytes.NewReader(template))
	imp := gofpdi.NewImporter()
	imp.SetSourceStream(&rs)
	need := maxPage()
	if pages := imp.GetNumPages(); pages < need {
		return nil, &TemplateLoadError{Err: fmt.Errorf("template has %d pages, layout needs %d", pages, need)}
	}
	return &Generator{template: template, pages: need}, nil
}

// Render produces the filled certificate for one record. Signatory arguments
// are optional; a nil signatory leaves its block blank. Output is
// deterministic for identical input apart from the creation timestamp the
// PDF format embeds.
func (g *Generator) Render(form *models.CAVForm, prepared, submitted *models.Signatory) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &RenderError{Err: fmt.Errorf("%v", r)}
		}
	}()

	doc := fpdf.New("P", "pt", "A4", "")
	texts := deriveTexts(form, prepared, submitted)
	nameSize := fitNameSize(doc, texts[fieldName])

	rs := io.ReadSeeker(bytes.NewReader(g.template))
	imp := contrib.NewImporter()
	for page := 1; page <= g.pages; page++ {
		tpl := imp.ImportPageFromStream(doc, &rs, page, "/MediaBox")
		box := imp.GetPageSizes()[page]["/MediaBox"]
		w, h := box["w"], box["h"]
		doc.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})
		imp.UseImportedTemplate(doc, tpl, 0, 0, w, h)

		for _, p := range placements {
			if p.page != page {
				continue
			}
			text := texts[p.field]
			if text == "" {
				continue
			}
			size := p.size
			if size == 0 {
				size = nameSize
			}
			style := ""
			if p.bold {
				style = "B"
			}
			doc.SetFont("Helvetica", style, size)
			// Placement y is measured from the bottom of the page.
			doc.Text(p.x, h-p.y, text)
		}
	}

	if doc.Err() {
		return nil, &RenderError{Err: doc.Error()}
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, &RenderError{Err: err}
	}
	return buf.Bytes(), nil
}

// deriveTexts computes every display string drawn on the template. Missing
// optional values stay absent from the map and are skipped at draw time.
func deriveTexts(form *models.CAVForm, prepared, submitted *models.Signatory) map[string]string {
	texts := map[string]string{
		fieldName:                strings.ToUpper(form.FullLegalName),
		fieldDaySentence:         DaySentence(form.DateIssued),
		fieldDateOfApplication:   FormatLongDate(form.DateOfApplication),
		fieldDateOfTransmission:  FormatLongDate(form.DateOfTransmission),
		fieldControlNo:           form.ControlNo,
		fieldSchoolName:          form.SchoolName,
		fieldSchoolAddress:       form.SchoolAddress,
		fieldSchoolYearCompleted: form.SchoolYearCompleted,
		fieldSchoolYearGraduated: FormatLongDate(form.SchoolYearGraduated),
	}
	if prepared != nil {
		texts[fieldPreparedName] = strings.ToUpper(prepared.FullName)
		texts[fieldPreparedPosition] = prepared.Position
	}
	if submitted != nil {
		texts[fieldSubmittedName] = strings.ToUpper(submitted.FullName)
		texts[fieldSubmittedPosition] = submitted.Position
	}
	return texts
}

// fitNameSize shrinks the legal name from the base size until it fits the
// widest name slot, bottoming out at the floor. Overflow at the floor is
// accepted, not truncated.
func fitNameSize(doc *fpdf.Fpdf, name string) float64 {
	size := baseNameSize
	doc.SetFont("Helvetica", "B", size)
	for doc.GetStringWidth(name) > maxNameWidth && size > minNameSize {
		size -= 0.5
		doc.SetFontSize(size)
	}
	return size
}
