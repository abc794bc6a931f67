// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package deadvideos

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"
)

// DefBaseUrl is the site being scanned.
const DefBaseUrl = `https://www.icheckmovies.com`

// FetchError report a page that answered with a non-200 HTTP status.
type FetchError struct {
	Url  string
	Code int
}

// Error implement the error interface.
func (ferr *FetchError) Error() string {
	return fmt.Sprintf(`fetching %s: HTTP error %d`, ferr.Url, ferr.Code)
}

// SiteClient fetch and parse HTML pages from the site, pacing all
// requests through a single rate limiter.
// The whole pipeline is sequential, so the limiter only spaces
// consecutive requests out; there is never more than one in flight.
type SiteClient struct {
	httpc   *http.Client
	limiter *rate.Limiter
	baseUrl string
}

// NewSiteClient create the client.
// An empty baseUrl default to [DefBaseUrl].
func NewSiteClient(baseUrl string) *SiteClient {
	if baseUrl == `` {
		baseUrl = DefBaseUrl
	}
	var netDial = &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	return &SiteClient{
		httpc: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				DialContext:           netDial.DialContext,
				ExpectContinueTimeout: 1 * time.Second,
				ForceAttemptHTTP2:     true,
				IdleConnTimeout:       90 * time.Second,
				MaxIdleConns:          100,
				TLSHandshakeTimeout:   10 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
		baseUrl: baseUrl,
	}
}

// GetDoc fetch baseUrl+path with the query parameters and parse the
// body as HTML, decoding the page charset from the Content-Type.
// It also return the final URL after redirects, so callers can detect
// a redirect to the login page.
// A non-200 answer is returned as [FetchError].
func (scl *SiteClient) GetDoc(
	ctx context.Context, path string, params url.Values,
) (
	doc *goquery.Document, finalUrl *url.URL, err error,
) {
	var logp = `GetDoc`

	err = scl.limiter.Wait(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf(`%s: %w`, logp, err)
	}

	var reqUrl = scl.baseUrl + path
	if len(params) > 0 {
		reqUrl += `?` + params.Encode()
	}

	var httpReq *http.Request
	httpReq, err = http.NewRequestWithContext(ctx,
		http.MethodGet, reqUrl, nil)
	if err != nil {
		return nil, nil, fmt.Errorf(`%s: %w`, logp, err)
	}

	var httpResp *http.Response
	httpResp, err = scl.httpc.Do(httpReq)
	if err != nil {
		return nil, nil, fmt.Errorf(`%s: %w`, logp, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, nil, &FetchError{
			Url:  reqUrl,
			Code: httpResp.StatusCode,
		}
	}

	var body io.Reader
	body, err = charset.NewReader(httpResp.Body,
		httpResp.Header.Get(`Content-Type`))
	if err != nil {
		return nil, nil, fmt.Errorf(`%s: %w`, logp, err)
	}

	doc, err = goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, nil, fmt.Errorf(`%s: %w`, logp, err)
	}

	return doc, httpResp.Request.URL, nil
}
