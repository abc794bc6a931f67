// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package videohost

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"git.sr.ht/~shulhan/deadvideos/internal"
)

// ErrMissingAPIKey is returned when no YouTube Data API key can be
// found in the environment or the key file.
var ErrMissingAPIKey = errors.New(`missing YouTube Data API key: set ` +
	internal.EnvAPIKey + ` or create the file "` +
	internal.DefKeyFile + `"`)

const defYoutubeApiUrl = `https://www.googleapis.com/youtube/v3/videos`

// nCountryCodes is the number of officially assigned ISO 3166-1
// alpha-2 codes; a video blocked in all of them is blocked everywhere.
const nCountryCodes = 249

// LoadAPIKey read the YouTube Data API key from the environment
// variable first, then from the key file.
// An empty result means the key is missing and YouTube checks cannot
// run.
func LoadAPIKey() (apiKey string, err error) {
	var logp = `LoadAPIKey`

	apiKey = strings.TrimSpace(os.Getenv(internal.EnvAPIKey))
	if apiKey != `` {
		return apiKey, nil
	}

	var raw []byte
	raw, err = os.ReadFile(internal.KeyFile)
	if err != nil {
		if os.IsNotExist(err) {
			return ``, ErrMissingAPIKey
		}
		return ``, fmt.Errorf(`%s: %w`, logp, err)
	}

	apiKey = strings.TrimSpace(string(raw))
	if apiKey == `` {
		return ``, ErrMissingAPIKey
	}
	return apiKey, nil
}

// YoutubeChecker check videos through the YouTube Data API v3.
//
// The watch page is never probed: YouTube return HTTP 200 with an
// in-page error for removed or blocked videos, so only the API answer
// is authoritative.
type YoutubeChecker struct {
	httpc  *http.Client
	apiKey string

	// apiUrl override the Data API endpoint in tests.
	apiUrl string

	retry RetryPolicy
}

// NewYoutubeChecker create the checker.
// An empty apiKey is a configuration error, reported as
// [ErrMissingAPIKey].
func NewYoutubeChecker(apiKey string, pol RetryPolicy) (
	ytc *YoutubeChecker, err error,
) {
	if apiKey == `` {
		return nil, ErrMissingAPIKey
	}
	ytc = &YoutubeChecker{
		httpc:  newHttpClient(),
		apiKey: apiKey,
		apiUrl: defYoutubeApiUrl,
		retry:  pol,
	}
	return ytc, nil
}

// youtubeVideos is the subset of the Data API "videos" response that
// the checker interpret.
type youtubeVideos struct {
	Items []struct {
		Status struct {
			UploadStatus  string `json:"uploadStatus"`
			PrivacyStatus string `json:"privacyStatus"`
		} `json:"status"`
		ContentDetails *struct {
			RegionRestriction *struct {
				Allowed []string `json:"allowed"`
				Blocked []string `json:"blocked"`
			} `json:"regionRestriction"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// Check query the Data API for the video status, retrying transient
// failures and quota errors.
func (ytc *YoutubeChecker) Check(ctx context.Context, videoId string) (
	status Status, err error,
) {
	var logp = `Check`

	var params = url.Values{}
	params.Set(`id`, videoId)
	params.Set(`key`, ytc.apiKey)
	params.Set(`part`, `status,contentDetails`)
	params.Set(`fields`,
		`items(status,contentDetails/regionRestriction)`)
	var apiUrl = ytc.apiUrl + `?` + params.Encode()

	var rateLimited bool
	var attempt int
	for attempt = 1; attempt <= ytc.retry.MaxAttempts; attempt++ {
		if attempt > 1 {
			err = ytc.retry.Wait(ctx, attempt-1)
			if err != nil {
				return Status{}, fmt.Errorf(`%s %s: %w`,
					logp, videoId, err)
			}
		}

		var httpReq *http.Request
		httpReq, err = http.NewRequestWithContext(ctx,
			http.MethodGet, apiUrl, nil)
		if err != nil {
			return Status{}, fmt.Errorf(`%s: %w`, logp, err)
		}

		var httpResp *http.Response
		httpResp, err = ytc.httpc.Do(httpReq)
		if err != nil {
			rateLimited = false
			continue
		}

		var body []byte
		body, err = io.ReadAll(httpResp.Body)
		httpResp.Body.Close()
		if err != nil {
			rateLimited = false
			continue
		}

		if isQuotaError(httpResp.StatusCode, body) {
			rateLimited = true
			continue
		}
		if httpResp.StatusCode != http.StatusOK {
			return Status{}, fmt.Errorf(
				`%s %s: API returned HTTP %d`,
				logp, videoId, httpResp.StatusCode)
		}

		status, err = interpretYoutubeVideos(body)
		if err != nil {
			return Status{}, fmt.Errorf(`%s %s: %w`,
				logp, videoId, err)
		}
		return status, nil
	}
	if rateLimited {
		return Status{Reason: ReasonUnknown}, nil
	}
	return Status{Reason: ReasonUnreachable}, nil
}

// isQuotaError return true on HTTP 429 or on the Data API quota
// error, which is HTTP 403 with "quotaExceeded" or "rateLimitExceeded"
// in the body.
func isQuotaError(code int, body []byte) bool {
	if code == http.StatusTooManyRequests {
		return true
	}
	if code != http.StatusForbidden {
		return false
	}
	return bytes.Contains(body, []byte(`quotaExceeded`)) ||
		bytes.Contains(body, []byte(`rateLimitExceeded`))
}

// interpretYoutubeVideos translate the API answer into a video status.
func interpretYoutubeVideos(body []byte) (status Status, err error) {
	var resp youtubeVideos
	err = json.Unmarshal(body, &resp)
	if err != nil {
		return Status{}, fmt.Errorf(`unexpected API response: %w`, err)
	}

	if len(resp.Items) == 0 {
		return Status{Reason: ReasonNotFound}, nil
	}

	var item = resp.Items[0]
	if item.Status.PrivacyStatus == `private` {
		// Other values: public, unlisted.
		return Status{Reason: ReasonPrivate}, nil
	}
	if item.Status.UploadStatus != `processed` {
		// Other values: deleted, failed, rejected, uploaded.
		return Status{Reason: ReasonRemoved}, nil
	}

	if item.ContentDetails == nil ||
		item.ContentDetails.RegionRestriction == nil {
		return StatusOk, nil
	}

	// The video is processed and public but restricted by region.
	var region = item.ContentDetails.RegionRestriction
	if region.Allowed != nil {
		if len(region.Allowed) == 0 {
			return Status{Reason: ReasonBlocked}, nil
		}
		return StatusOk, nil
	}
	if region.Blocked != nil {
		if len(region.Blocked) == nCountryCodes {
			return Status{Reason: ReasonBlocked}, nil
		}
		return StatusOk, nil
	}
	return Status{}, errors.New(`unexpected API response: ` +
		`empty region restriction`)
}
