package connector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
	"tripvault-backend/lib/scrapers/bookingcom"
	"tripvault-backend/lib/textutil"
	"tripvault-backend/lib/timezone"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var tracer = otel.Tracer("services/connector")
var meter = otel.Meter("services/connector")
var droppedCounter, _ = meter.Int64Counter("dropped_records")

const Vendor = "booking.com"
const ContentType = "application/pdf"

// FileEntry is one bill handed to the store: an assembled PDF plus
// the metadata the aggregation platform files it under.
type FileEntry struct {
	Filename    string
	Filestream  []byte
	Vendor      string
	Date        time.Time
	Amount      float64
	ContentType string
}

// Scraper is the slice of the site client the pipeline consumes.
// *bookingcom.Client satisfies it.
type Scraper interface {
	Bookings(ctx context.Context) ([]bookingcom.Booking, error)
	ConfirmationSections(ctx context.Context, seeBookingURL string) ([]string, error)
	Identity(ctx context.Context) (bookingcom.Identity, error)
}

// Renderer turns assembled documents into opaque PDF byte streams.
type Renderer interface {
	RenderSummary(ctx context.Context, doc SummaryDocument) ([]byte, error)
	RenderSections(ctx context.Context, doc SectionsDocument) ([]byte, error)
}

// Store persists assembled bills and the scraped identity.
type Store interface {
	SaveBills(ctx context.Context, entries []FileEntry) error
	SaveIdentity(ctx context.Context, identity bookingcom.Identity) error
}

type Service struct {
	scraper  Scraper
	renderer Renderer
	store    Store
	// swapped out in tests
	now func() time.Time
}

func NewService(scraper Scraper, renderer Renderer, store Store) Service {
	return Service{
		scraper:  scraper,
		renderer: renderer,
		store:    store,
		now:      timezone.Now,
	}
}

// FetchBills runs the full extraction pipeline against an
// authenticated session: list the bookings, assemble every record
// concurrently, persist whatever survived. it returns the number of
// bills saved; records dropped along the way only show up as log
// diagnostics.
func (s Service) FetchBills(ctx context.Context) (int, error) {
	ctx, span := tracer.Start(ctx, "service:FetchBills")
	defer span.End()

	records, err := s.scraper.Bookings(ctx)
	if err != nil {
		return 0, fmt.Errorf("list bookings: %w", err)
	}
	slog.InfoContext(ctx, "extracted bookings", "count", len(records))

	var entries []FileEntry
	var errList []error
	resultLock := sync.Mutex{}
	wg := sync.WaitGroup{}

	for _, record := range records {
		record := record
		wg.Add(1)
		go func() {
			defer wg.Done()

			entry, err := s.assemble(ctx, record)
			resultLock.Lock()
			defer resultLock.Unlock()
			if err != nil {
				errList = append(errList, err)
				return
			}
			if entry == nil {
				return
			}
			entries = append(entries, *entry)
		}()
	}
	wg.Wait()

	if len(errList) > 0 {
		return 0, errors.Join(errList...)
	}

	err = s.store.SaveBills(ctx, entries)
	if err != nil {
		return 0, fmt.Errorf("save bills: %w", err)
	}

	span.SetAttributes(attribute.Int("saved", len(entries)))
	return len(entries), nil
}

// assemble produces the FileEntry for one booking, or (nil, nil) when
// the record is dropped. the two drop reasons are logged with
// distinct messages so they can be told apart downstream.
func (s Service) assemble(ctx context.Context, record bookingcom.Booking) (*FileEntry, error) {
	amount, err := textutil.ParseAmount(record.Price)
	if err != nil || amount == 0 || record.Start.IsZero() {
		slog.WarnContext(
			ctx, "dropping booking with unparseable price or dates",
			"booking_number", record.BookingNumber,
			"price", record.Price,
			"start", record.Start,
		)
		droppedCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", "unparseable")))
		return nil, nil
	}

	var stream []byte
	switch classify(record, s.now()) {
	case confirmationPath:
		sections, err := s.scraper.ConfirmationSections(ctx, record.SeeBookingURL)
		if errors.Is(err, bookingcom.ErrConfirmationUnavailable) {
			slog.WarnContext(
				ctx, "dropping booking without a reachable confirmation page",
				"booking_number", record.BookingNumber,
			)
			droppedCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", "confirmation_unavailable")))
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		stream, err = s.renderer.RenderSections(ctx, sectionsDocument(record, sections))
		if err != nil {
			return nil, err
		}
	case summaryPath:
		stream, err = s.renderer.RenderSummary(ctx, summaryDocument(record))
		if err != nil {
			return nil, err
		}
	}

	return &FileEntry{
		Filename:    fmt.Sprintf("%s-%s.pdf", record.Start.Format("2006-01-02"), record.Name),
		Filestream:  stream,
		Vendor:      Vendor,
		Date:        clampDate(record.Start, s.now()),
		Amount:      amount,
		ContentType: ContentType,
	}, nil
}

// SyncIdentity scrapes the account's identity and overwrites the
// stored record with it.
func (s Service) SyncIdentity(ctx context.Context) (bookingcom.Identity, error) {
	ctx, span := tracer.Start(ctx, "service:SyncIdentity")
	defer span.End()

	identity, err := s.scraper.Identity(ctx)
	if err != nil {
		return bookingcom.Identity{}, err
	}
	err = s.store.SaveIdentity(ctx, identity)
	if err != nil {
		return bookingcom.Identity{}, fmt.Errorf("save identity: %w", err)
	}
	return identity, nil
}
