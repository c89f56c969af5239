package connector

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"tripvault-backend/lib/scrapers/bookingcom"
	"tripvault-backend/lib/timezone"

	"github.com/stretchr/testify/require"
)

type fakeRenderer struct{}

func (fakeRenderer) RenderSummary(ctx context.Context, doc SummaryDocument) ([]byte, error) {
	return []byte("%PDF summary " + doc.Title), nil
}

func (fakeRenderer) RenderSections(ctx context.Context, doc SectionsDocument) ([]byte, error) {
	return []byte(fmt.Sprintf("%%PDF sections %d", len(doc.Sections))), nil
}

type memoryStore struct {
	bills    []FileEntry
	identity *bookingcom.Identity
}

func (m *memoryStore) SaveBills(ctx context.Context, entries []FileEntry) error {
	m.bills = append(m.bills, entries...)
	return nil
}

func (m *memoryStore) SaveIdentity(ctx context.Context, identity bookingcom.Identity) error {
	m.identity = &identity
	return nil
}

type fakeScraper struct {
	bookings    []bookingcom.Booking
	sections    []string
	sectionsErr error
	identity    bookingcom.Identity
}

func (f *fakeScraper) Bookings(ctx context.Context) ([]bookingcom.Booking, error) {
	return f.bookings, nil
}

func (f *fakeScraper) ConfirmationSections(ctx context.Context, seeBookingURL string) ([]string, error) {
	return f.sections, f.sectionsErr
}

func (f *fakeScraper) Identity(ctx context.Context) (bookingcom.Identity, error) {
	return f.identity, nil
}

const oneBookingFixture = `<html><body>
<div class="js-booking_block">
	<h3 class="mb-block__hotel-name">Hotel X</h3>
	<div class="mb-dates__checkin">
		<span class="mb-dates__day">15</span>
		<span class="mb-dates__month-year">Jun 2024</span>
	</div>
	<div class="mb-dates__checkout">
		<span class="mb-dates__day">18</span>
		<span class="mb-dates__month-year">Jun 2024</span>
	</div>
	<span class="mb-block__booking-number">123</span>
	<span class="mb-block__price">150,00 &euro;</span>
</div>
</body></html>`

// drives the real extractor over a fixture listing through the whole
// pipeline down to the stored bill
func TestFetchBillsEndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(oneBookingFixture))
	}))
	defer server.Close()

	client, err := bookingcom.NewClient(context.Background(), bookingcom.ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	store := &memoryStore{}
	service := NewService(client, fakeRenderer{}, store)

	saved, err := service.FetchBills(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, saved)
	require.Len(t, store.bills, 1)

	bill := store.bills[0]
	require.Equal(t, "2024-06-15-Hotel X.pdf", bill.Filename)
	require.Equal(t, "booking.com", bill.Vendor)
	require.Equal(t, "application/pdf", bill.ContentType)
	require.InDelta(t, 150.0, bill.Amount, 0.0001)
	require.True(t, bill.Date.Equal(time.Date(2024, time.June, 15, 0, 0, 0, 0, timezone.Location)))
	require.NotEmpty(t, bill.Filestream)
}

func TestDropsRecordWithUnparseablePrice(t *testing.T) {
	scraper := &fakeScraper{bookings: []bookingcom.Booking{{
		Name:          "Hotel X",
		BookingNumber: "123",
		Start:         time.Date(2024, time.June, 15, 0, 0, 0, 0, timezone.Location),
		End:           time.Date(2024, time.June, 18, 0, 0, 0, 0, timezone.Location),
		Price:         "",
	}}}
	store := &memoryStore{}
	service := NewService(scraper, fakeRenderer{}, store)

	saved, err := service.FetchBills(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, saved)
	require.Empty(t, store.bills)
}

func TestDropsRecordWithZeroAmount(t *testing.T) {
	scraper := &fakeScraper{bookings: []bookingcom.Booking{{
		Name:          "Hotel X",
		BookingNumber: "123",
		Start:         time.Date(2024, time.June, 15, 0, 0, 0, 0, timezone.Location),
		End:           time.Date(2024, time.June, 18, 0, 0, 0, 0, timezone.Location),
		Price:         "0,00 €",
	}}}
	store := &memoryStore{}
	service := NewService(scraper, fakeRenderer{}, store)

	// a zero price parses fine but is never a bill
	saved, err := service.FetchBills(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, saved)
	require.Empty(t, store.bills)
}

func TestDropsRecordWithUnparseableDate(t *testing.T) {
	scraper := &fakeScraper{bookings: []bookingcom.Booking{{
		Name:          "Hotel X",
		BookingNumber: "123",
		Price:         "150,00 €",
	}}}
	store := &memoryStore{}
	service := NewService(scraper, fakeRenderer{}, store)

	saved, err := service.FetchBills(context.Background())
	require.NoError(t, err)
	require.Empty(t, store.bills)
	require.Equal(t, 0, saved)
}

func TestDropsRecordWhenConfirmationUnavailable(t *testing.T) {
	future := timezone.Now().AddDate(0, 1, 0)
	scraper := &fakeScraper{
		bookings: []bookingcom.Booking{{
			Name:          "Hotel Z",
			BookingNumber: "999",
			Start:         future,
			End:           future.AddDate(0, 0, 3),
			Price:         "200,00 €",
			SeeBookingURL: "https://secure.booking.com/mybooking.html?bn=999",
		}},
		sectionsErr: bookingcom.ErrConfirmationUnavailable,
	}
	store := &memoryStore{}
	service := NewService(scraper, fakeRenderer{}, store)

	// degrade-to-drop: the record must not fall back to a summary
	saved, err := service.FetchBills(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, saved)
	require.Empty(t, store.bills)
}

func TestConfirmationPathClampsDate(t *testing.T) {
	future := timezone.Now().AddDate(0, 1, 0)
	scraper := &fakeScraper{
		bookings: []bookingcom.Booking{{
			Name:          "Hotel Z",
			BookingNumber: "999",
			Start:         future,
			End:           future.AddDate(0, 0, 3),
			Price:         "200,00 €",
			SeeBookingURL: "https://secure.booking.com/mybooking.html?bn=999",
		}},
		sections: []string{`<div class="conf-header">Your reservation</div>`},
	}
	store := &memoryStore{}
	service := NewService(scraper, fakeRenderer{}, store)

	saved, err := service.FetchBills(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, saved)
	require.Len(t, store.bills, 1)

	bill := store.bills[0]
	// the filename keeps the stay's start date, the bill date is
	// clamped to the present
	require.Equal(t, future.Format("2006-01-02")+"-Hotel Z.pdf", bill.Filename)
	require.WithinDuration(t, timezone.Now(), bill.Date, time.Minute)
}

func TestSyncIdentityOverwrites(t *testing.T) {
	scraper := &fakeScraper{identity: bookingcom.Identity{Email: "jane.doe@example.com"}}
	store := &memoryStore{}
	service := NewService(scraper, fakeRenderer{}, store)

	identity, err := service.SyncIdentity(context.Background())
	require.NoError(t, err)
	require.Equal(t, "jane.doe@example.com", identity.Email)
	require.NotNil(t, store.identity)

	scraper.identity = bookingcom.Identity{Email: "jane.new@example.com"}
	_, err = service.SyncIdentity(context.Background())
	require.NoError(t, err)
	require.Equal(t, "jane.new@example.com", store.identity.Email)
}
