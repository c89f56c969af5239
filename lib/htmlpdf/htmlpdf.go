package htmlpdf

import (
	"context"
	"net/url"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Converter renders HTML documents to PDF through a headless Chrome
// instance which is reused across conversions.
type Converter struct {
	browserCtx    context.Context
	browserCancel context.CancelFunc
	allocCancel   context.CancelFunc
}

func NewConverter(ctx context.Context) (*Converter, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(
		ctx,
		chromedp.DefaultExecAllocatorOptions[:]...,
	)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// spawn the browser now so a missing chrome binary surfaces here
	// instead of on the first conversion
	err := chromedp.Run(browserCtx)
	if err != nil {
		browserCancel()
		allocCancel()
		return nil, err
	}

	return &Converter{
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		allocCancel:   allocCancel,
	}, nil
}

func (c *Converter) Close() {
	c.browserCancel()
	c.allocCancel()
}

func (c *Converter) ConvertHTML(ctx context.Context, html string) ([]byte, error) {
	tabCtx, cancel := chromedp.NewContext(c.browserCtx)
	defer cancel()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, time.Second*30)
	defer cancelTimeout()

	var pdf []byte
	err := chromedp.Run(
		tabCtx,
		chromedp.Navigate("data:text/html;charset=utf-8,"+url.PathEscape(html)),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdf, nil
}
