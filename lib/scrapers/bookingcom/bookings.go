package bookingcom

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"
	"tripvault-backend/lib/htmlutil"
	"tripvault-backend/lib/timezone"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Booking is one reservation entry extracted from the listing page.
// it is immutable after extraction.
type Booking struct {
	Name    string
	Picture string
	// date-only, zero when the source text did not parse
	Start time.Time
	End   time.Time
	// vendor booking reference, a record without one is skipped
	BookingNumber string
	// only present on current-format blocks, its presence means a
	// confirmation page exists
	ConfirmationNumber string
	// raw vendor currency string, e.g. "123,45 €"
	Price string
	// absolute detail page url, empty when the block only carries a
	// "Rate" action link
	SeeBookingURL string
}

const reservationsPath = "/myreservations.html"

// Bookings extracts every reservation on the listing page. the page
// has shipped in two markup generations and accounts can hold
// bookings in both at once, so both rule-sets always run, current
// format first, each preserving document order.
func (c *Client) Bookings(ctx context.Context) ([]Booking, error) {
	ctx, span := tracer.Start(ctx, "client:Bookings")
	defer span.End()

	doc, err := c.fetchDocument(ctx, reservationsPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch reservation listing")
		return nil, err
	}

	out := currentRules.extract(ctx, c.BaseUrl, doc)
	out = append(out, legacyRules.extract(ctx, c.BaseUrl, doc)...)

	span.SetAttributes(attribute.Int("bookings", len(out)))
	return out, nil
}

// pageRules is one self-contained listing-to-records rule-set. the
// two markup generations are two values of this shape rather than
// branches inside one extractor.
type pageRules struct {
	name   string
	block  string
	fields func(ctx context.Context, base *url.URL, block *goquery.Selection) Booking
}

func (r pageRules) extract(ctx context.Context, base *url.URL, doc *goquery.Document) []Booking {
	var out []Booking
	doc.Find(r.block).Each(func(_ int, block *goquery.Selection) {
		b := r.fields(ctx, base, block)
		if b.BookingNumber == "" {
			slog.WarnContext(ctx, "skipping reservation block without a booking number", "rules", r.name)
			return
		}
		out = append(out, b)
	})
	return out
}

var currentRules = pageRules{
	name:   "current",
	block:  "div.js-booking_block",
	fields: currentFields,
}

var legacyRules = pageRules{
	name:   "legacy",
	block:  "div.mb-container",
	fields: legacyFields,
}

func blockText(block *goquery.Selection, selector string) string {
	return htmlutil.CleanText(block.Find(selector).First().Text())
}

func currentFields(ctx context.Context, base *url.URL, block *goquery.Selection) Booking {
	return Booking{
		Name:               blockText(block, ".mb-block__hotel-name"),
		Picture:            block.Find(".mb-block__photo img").First().AttrOr("src", ""),
		Start:              parseCurrentDate(block.Find(".mb-dates__checkin").First()),
		End:                parseCurrentDate(block.Find(".mb-dates__checkout").First()),
		BookingNumber:      blockText(block, ".mb-block__booking-number"),
		ConfirmationNumber: blockText(block, ".mb-block__confirmation-number"),
		Price:              blockText(block, ".mb-block__price"),
		SeeBookingURL:      detailLink(ctx, base, block, "a.mb-block__link"),
	}
}

func legacyFields(ctx context.Context, base *url.URL, block *goquery.Selection) Booking {
	dates := block.Find(".mh-date")
	return Booking{
		Name:          blockText(block, ".mb-hotel-name"),
		Picture:       block.Find(".mb-photo img").First().AttrOr("src", ""),
		Start:         parseLegacyDate(htmlutil.CleanText(dates.Eq(0).Text())),
		End:           parseLegacyDate(htmlutil.CleanText(dates.Eq(1).Text())),
		BookingNumber: blockText(block, ".mb-booking-number"),
		Price:         blockText(block, ".mb-price__unit"),
		SeeBookingURL: detailLink(ctx, base, block, "a.mb-see-booking"),
	}
}

// current blocks split the date into a day number and a combined
// month/year token, e.g. "15" + "Jun 2024"
func parseCurrentDate(sel *goquery.Selection) time.Time {
	day := htmlutil.CleanText(sel.Find(".mb-dates__day").First().Text())
	monthYear := htmlutil.CleanText(sel.Find(".mb-dates__month-year").First().Text())
	t, err := time.ParseInLocation("2 Jan 2006", day+" "+monthYear, timezone.Location)
	if err != nil {
		return time.Time{}
	}
	return t
}

// legacy blocks render free text such as "Saturday, 15 June 2024",
// only the part after the last comma is dated
func parseLegacyDate(text string) time.Time {
	if idx := strings.LastIndex(text, ","); idx >= 0 {
		text = text[idx+1:]
	}
	text = strings.Trim(text, " \t\n")
	t, err := time.ParseInLocation("2 January 2006", text, timezone.Location)
	if err != nil {
		return time.Time{}
	}
	return t
}

// detailLink resolves the booking-detail anchor of a block. "Rate"
// actions carry an href too but do not lead to a detail page, they
// must never be followed. anchors without a raw href attribute are
// filtered out before resolution, resolving them would yield the
// base url instead of nothing.
func detailLink(ctx context.Context, base *url.URL, block *goquery.Selection, selector string) string {
	anchors := block.Find(selector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		return ok && href != ""
	})
	for _, a := range htmlutil.GetAnchors(ctx, base, anchors) {
		if strings.Contains(a.Name, "Rate") {
			continue
		}
		return a.Href
	}
	return ""
}
