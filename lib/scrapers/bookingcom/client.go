// Package bookingcom scrapes the booking.com account area.
//
// each scraping method is read-only and independent of the others,
// the login state held by the cookie jar is an implied input to all
// of them. methods generally follow the same structure:
// 1) transform input into an HTTP request
// 2) make the request
// 3) assert on the response (status, expected markup)
// 4) transform the response body into an output structure
package bookingcom

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"
	"tripvault-backend/lib/restyutil"
	"tripvault-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("scrapers/bookingcom")

const DefaultBaseUrl = "https://secure.booking.com"

var restyInstrumentOutput restyutil.InstrumentOutput

func SetRestyInstrumentOutput(output restyutil.InstrumentOutput) {
	restyInstrumentOutput = output
}

type Client struct {
	BaseUrl    *url.URL
	Http       *resty.Client
	classifier OutcomeClassifier
}

type ClientOptions struct {
	// defaults to DefaultBaseUrl
	BaseUrl string
	// defaults to RedirectClassifier
	Classifier OutcomeClassifier
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}
	if opts.Classifier == nil {
		opts.Classifier = RedirectClassifier{}
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname(), "booking.com"))
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/bookingcom/http")
	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	c := &Client{
		BaseUrl:    baseUrl,
		Http:       client,
		classifier: opts.Classifier,
	}
	return c, nil
}

// ResetSession drops every cookie held for the vendor by swapping in a
// fresh jar. the jar only ever holds vendor cookies, so this is a full
// reset for the domain.
func (c *Client) ResetSession(ctx context.Context) error {
	jar, err := cookiejar.New(nil)
	if err != nil {
		slog.WarnContext(ctx, "failed to reset session cookies", "err", err)
		return err
	}
	c.Http.SetCookieJar(jar)
	return nil
}

func (c *Client) fetchDocument(ctx context.Context, link string) (*goquery.Document, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		return nil, err
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%q returned status %d", link, res.StatusCode())
	}
	return goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
}
