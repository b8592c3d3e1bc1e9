package pdf

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/caseworks/judgment-converter/internal/layout"
)

const (
	// Defaults when the page geometry cannot be determined (US Letter)
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0

	// rowTolerancePt groups raw spans sharing a baseline into one line
	rowTolerancePt = 2.0

	// wordGapPt is the horizontal gap above which a joining space is
	// inserted between two spans on the same line
	wordGapPt = 1.0
)

// Source extracts positioned text fragments from PDF files. The raw
// spans reported by the parser are grouped into line-level fragments in
// top-left page coordinates, which is the input contract of the layout
// engine.
type Source struct {
	maxFileSize int64
}

// NewSource creates a fragment source with the specified size constraint
func NewSource(maxFileSize int64) *Source {
	return &Source{maxFileSize: maxFileSize}
}

// ExtractFragments extracts the full ordered fragment stream of a
// document. Every text span of the source appears in exactly one
// returned fragment.
func (s *Source) ExtractFragments(req ExtractFragmentsRequest) (*ExtractFragmentsResult, error) {
	if req.Path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	if fileInfo, err := os.Stat(req.Path); err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	} else if fileInfo.Size() > s.maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)", fileInfo.Size(), s.maxFileSize)
	}

	file, reader, err := pdf.Open(req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer file.Close()

	pageWidth, pageHeight := s.pageGeometry(req.Path)

	result := &ExtractFragmentsResult{
		Path:       req.Path,
		PageCount:  reader.NumPage(),
		PageWidth:  pageWidth,
		PageHeight: pageHeight,
	}

	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		result.Fragments = append(result.Fragments,
			groupRows(page.Content().Text, pageNum, pageHeight)...)
	}

	return result, nil
}

// pageGeometry reads the first page's media box. Judgments are uniform
// single-size documents; when the box cannot be read the standard letter
// size is assumed, matching what the extractor reports for scans.
func (s *Source) pageGeometry(path string) (width, height float64) {
	width, height = defaultPageWidth, defaultPageHeight

	file, err := os.Open(path)
	if err != nil {
		return width, height
	}
	defer file.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	dims, err := api.PageDims(file, conf)
	if err != nil || len(dims) == 0 {
		return width, height
	}
	return dims[0].Width, dims[0].Height
}

// groupRows folds raw character/run-level spans into line-level
// fragments. Spans sharing a baseline (within tolerance) become one
// fragment; the Y axis is flipped from the PDF's bottom-left origin to
// the top-left origin used by the layout engine.
func groupRows(texts []pdf.Text, pageNum int, pageHeight float64) []layout.Fragment {
	if len(texts) == 0 {
		return nil
	}

	spans := append([]pdf.Text(nil), texts...)
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Y != spans[j].Y {
			return spans[i].Y > spans[j].Y // higher Y first: top of page
		}
		return spans[i].X < spans[j].X
	})

	var fragments []layout.Fragment
	row := []pdf.Text{spans[0]}
	for _, span := range spans[1:] {
		if row[0].Y-span.Y <= rowTolerancePt {
			row = append(row, span)
			continue
		}
		fragments = append(fragments, buildFragment(row, pageNum, pageHeight))
		row = []pdf.Text{span}
	}
	fragments = append(fragments, buildFragment(row, pageNum, pageHeight))

	return fragments
}

// buildFragment assembles one line-level fragment from the spans of a row
func buildFragment(row []pdf.Text, pageNum int, pageHeight float64) layout.Fragment {
	// Row membership came from baseline grouping; restore strict
	// left-to-right order before joining.
	sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })

	var b strings.Builder
	minX := row[0].X
	maxX := row[0].X + row[0].W
	fontSize := row[0].FontSize
	prevEnd := row[0].X

	for i, span := range row {
		if i > 0 && span.X-prevEnd > wordGapPt && !strings.HasSuffix(b.String(), " ") {
			b.WriteString(" ")
		}
		b.WriteString(span.S)
		prevEnd = span.X + span.W

		if span.X < minX {
			minX = span.X
		}
		if span.X+span.W > maxX {
			maxX = span.X + span.W
		}
		if span.FontSize > fontSize {
			fontSize = span.FontSize
		}
	}

	height := fontSize
	if height == 0 {
		height = 12.0
	}

	fontName := strings.ToLower(row[0].Font)
	return layout.Fragment{
		Text:     b.String(),
		Page:     pageNum,
		X:        minX,
		Y:        pageHeight - row[0].Y - height,
		Width:    maxX - minX,
		Height:   height,
		FontSize: fontSize,
		Bold:     strings.Contains(fontName, "bold"),
		Italic:   strings.Contains(fontName, "italic") || strings.Contains(fontName, "oblique"),
	}
}
