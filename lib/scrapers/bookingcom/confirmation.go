package bookingcom

import (
	"context"
	"errors"
	"log/slog"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var ErrConfirmationUnavailable = errors.New("no confirmation page is reachable for this booking")

const confirmationLinkSelector = "a.js-confirmation-link"
const confirmationContentSelector = "#mybooking_content > div"

// sections of the confirmation page that are chrome rather than
// content and must not end up in the rendered document
var skippedSectionClasses = []string{
	"cancel-policy",
	"newsletter",
	"toast-error",
	"toast-success",
	"send-request",
	"resort-credit",
}

// ConfirmationSections follows a booking's detail page to its linked
// confirmation page and returns that page's content sections as raw
// markup fragments. a missing link at either hop yields
// ErrConfirmationUnavailable; the caller is expected to drop the
// record rather than fall back to a summary, the summary cannot
// reconstruct this content.
func (c *Client) ConfirmationSections(ctx context.Context, seeBookingURL string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "client:ConfirmationSections")
	defer span.End()

	detail, err := c.fetchDocument(ctx, seeBookingURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch booking detail page")
		return nil, err
	}

	href := detail.Find(confirmationLinkSelector).First().AttrOr("href", "")
	if href == "" {
		span.SetStatus(codes.Error, ErrConfirmationUnavailable.Error())
		return nil, ErrConfirmationUnavailable
	}

	confirmation, err := c.fetchDocument(ctx, href)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch confirmation page")
		return nil, err
	}

	var sections []string
	confirmation.Find(confirmationContentSelector).Each(func(_ int, s *goquery.Selection) {
		for _, class := range skippedSectionClasses {
			if s.HasClass(class) {
				slog.DebugContext(ctx, "skipping non-content confirmation section", "class", class)
				return
			}
		}
		markup, err := goquery.OuterHtml(s)
		if err != nil {
			slog.WarnContext(ctx, "failed to serialize confirmation section", "err", err)
			return
		}
		sections = append(sections, markup)
	})
	if len(sections) == 0 {
		span.SetStatus(codes.Error, "confirmation page had no content sections")
		return nil, ErrConfirmationUnavailable
	}

	span.SetAttributes(attribute.Int("sections", len(sections)))
	return sections, nil
}
