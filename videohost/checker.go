// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package videohost

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Checker report the availability of a video ID on one host.
//
// A Checker never turn a network failure into an error: after the
// retry policy is exhausted the status degrades to
// [ReasonUnreachable] (connection failures) or [ReasonUnknown]
// (rate limiting).
// An error is returned only for responses that cannot be interpreted
// at all, and for a context cancelled between attempts.
type Checker interface {
	Check(ctx context.Context, videoId string) (status Status, err error)
}

// NewCheckers build the checker of each supported host.
// YouTube require the Data API key, see [LoadAPIKey]; every other
// host is checked with a plain HTTP probe.
func NewCheckers(apiKey string, pol RetryPolicy) (
	checkers map[Host]Checker, err error,
) {
	var logp = `NewCheckers`

	var ytc *YoutubeChecker
	ytc, err = NewYoutubeChecker(apiKey, pol)
	if err != nil {
		return nil, fmt.Errorf(`%s: %w`, logp, err)
	}

	checkers = map[Host]Checker{
		HostYoutube:     ytc,
		HostVimeo:       NewProbeChecker(HostVimeo, pol),
		HostDailymotion: NewProbeChecker(HostDailymotion, pol),
		HostGooglevideo: NewProbeChecker(HostGooglevideo, pol),
	}
	return checkers, nil
}

// newHttpClient create the HTTP client shared by checkers, with an
// explicit per-request timeout.
func newHttpClient() *http.Client {
	var netDial = &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			DialContext:           netDial.DialContext,
			ExpectContinueTimeout: 1 * time.Second,
			ForceAttemptHTTP2:     true,
			IdleConnTimeout:       90 * time.Second,
			MaxIdleConns:          100,
			TLSHandshakeTimeout:   10 * time.Second,
		},
	}
}

// ProbeChecker check a video by sending HEAD to its watch URL,
// following redirects.
// HTTP 200 means alive; 404 or 410 means the video is gone; any other
// status is reported verbatim as "HTTP <code>".
type ProbeChecker struct {
	httpc *http.Client
	host  Host

	// urlFmt override the host watch URL format in tests.
	urlFmt string

	retry RetryPolicy
}

// NewProbeChecker create the probe checker for the host.
func NewProbeChecker(host Host, pol RetryPolicy) *ProbeChecker {
	return &ProbeChecker{
		httpc:  newHttpClient(),
		host:   host,
		urlFmt: watchUrlFmt[host],
		retry:  pol,
	}
}

// Check send the HEAD probe, retrying transient failures.
func (pc *ProbeChecker) Check(ctx context.Context, videoId string) (
	status Status, err error,
) {
	var logp = `Check`
	var probeUrl = fmt.Sprintf(pc.urlFmt, videoId)

	var rateLimited bool
	var attempt int
	for attempt = 1; attempt <= pc.retry.MaxAttempts; attempt++ {
		if attempt > 1 {
			err = pc.retry.Wait(ctx, attempt-1)
			if err != nil {
				return Status{}, fmt.Errorf(`%s: %w`, logp, err)
			}
		}

		var httpReq *http.Request
		httpReq, err = http.NewRequestWithContext(ctx,
			http.MethodHead, probeUrl, nil)
		if err != nil {
			return Status{}, fmt.Errorf(`%s: %w`, logp, err)
		}

		var httpResp *http.Response
		httpResp, err = pc.httpc.Do(httpReq)
		if err != nil {
			// Timeout, DNS failure, connection reset: all
			// transient.
			rateLimited = false
			continue
		}
		httpResp.Body.Close()

		if httpResp.StatusCode == http.StatusTooManyRequests {
			rateLimited = true
			continue
		}
		return probeStatus(httpResp.StatusCode), nil
	}
	if rateLimited {
		return Status{Reason: ReasonUnknown}, nil
	}
	return Status{Reason: ReasonUnreachable}, nil
}

// probeStatus map a probe HTTP status code to a video status.
func probeStatus(code int) Status {
	switch code {
	case http.StatusOK:
		return StatusOk
	case http.StatusNotFound, http.StatusGone:
		return Status{Reason: ReasonNotFound}
	}
	return Status{Reason: fmt.Sprintf(`HTTP %d`, code)}
}
