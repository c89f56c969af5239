package connector

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"
	"tripvault-backend/lib/htmlpdf"
	"tripvault-backend/lib/scrapers/bookingcom"
)

type SummaryRow struct {
	Label string
	Value string
}

// SummaryDocument is the fixed-field rendition of an old booking.
type SummaryDocument struct {
	Title    string
	Rows     []SummaryRow
	BackLink string
}

// SectionsDocument reproduces a confirmation page's content sections.
type SectionsDocument struct {
	Title    string
	Sections []template.HTML
}

func summaryDocument(record bookingcom.Booking) SummaryDocument {
	formatDate := func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	}
	return SummaryDocument{
		Title: record.Name,
		Rows: []SummaryRow{
			{Label: "Reservation number", Value: record.BookingNumber},
			{Label: "Price", Value: record.Price},
			{Label: "Check-in", Value: formatDate(record.Start)},
			{Label: "Check-out", Value: formatDate(record.End)},
		},
		BackLink: bookingcom.DefaultBaseUrl + "/myreservations.html",
	}
}

func sectionsDocument(record bookingcom.Booking, sections []string) SectionsDocument {
	doc := SectionsDocument{Title: record.Name}
	for _, s := range sections {
		// the markup comes straight from the authenticated vendor
		// page, it is reproduced as-is
		doc.Sections = append(doc.Sections, template.HTML(s))
	}
	return doc
}

var summaryTemplate = template.Must(template.New("summary").Parse(`<!DOCTYPE html>
<html>
<body>
	<h1>{{.Title}}</h1>
	<table>
	{{range .Rows}}
		<tr><td>{{.Label}}</td><td>{{.Value}}</td></tr>
	{{end}}
	</table>
	<a href="{{.BackLink}}">{{.BackLink}}</a>
</body>
</html>`))

var sectionsTemplate = template.Must(template.New("sections").Parse(`<!DOCTYPE html>
<html>
<body>
	<h1>{{.Title}}</h1>
	{{range .Sections}}{{.}}{{end}}
</body>
</html>`))

// PdfRenderer assembles documents through the shared headless-chrome
// converter. the byte streams it returns are opaque to the pipeline.
type PdfRenderer struct {
	converter *htmlpdf.Converter
}

func NewPdfRenderer(converter *htmlpdf.Converter) PdfRenderer {
	return PdfRenderer{converter: converter}
}

func (r PdfRenderer) RenderSummary(ctx context.Context, doc SummaryDocument) ([]byte, error) {
	var buf bytes.Buffer
	err := summaryTemplate.Execute(&buf, doc)
	if err != nil {
		return nil, fmt.Errorf("render summary template: %w", err)
	}
	return r.converter.ConvertHTML(ctx, buf.String())
}

func (r PdfRenderer) RenderSections(ctx context.Context, doc SectionsDocument) ([]byte, error) {
	var buf bytes.Buffer
	err := sectionsTemplate.Execute(&buf, doc)
	if err != nil {
		return nil, fmt.Errorf("render sections template: %w", err)
	}
	return r.converter.ConvertHTML(ctx, buf.String())
}
