// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package deadvideos

import (
	"context"
	"fmt"
	"iter"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	pathCharts   = `/charts/profiles/`
	pathProfiles = `/profiles/`
)

// ChartsWalker discover candidate usernames from the site's profile
// charts pages.
type ChartsWalker struct {
	client *SiteClient
	err    error

	// ByAllChecks walk the unfiltered profile listing sorted by
	// all checks instead of the official charts.
	ByAllChecks bool
}

// NewChartsWalker create the walker.
func NewChartsWalker(scl *SiteClient, byAllChecks bool) *ChartsWalker {
	return &ChartsWalker{
		client:      scl,
		ByAllChecks: byAllChecks,
	}
}

// Users return the usernames listed on charts pages from..to,
// inclusive, lazily fetching one page at a time.
// After the iteration ends, check [ChartsWalker.Err]: a charts page
// that fails to fetch stop the walk.
func (cwk *ChartsWalker) Users(ctx context.Context, from, to int) iter.Seq[string] {
	cwk.err = nil
	return func(yield func(string) bool) {
		var page int
		for page = from; page <= to; page++ {
			var path = pathCharts
			var params = url.Values{}
			if cwk.ByAllChecks {
				path = pathProfiles
				params.Set(`sort`, `checks`)
			}
			params.Set(`page`, strconv.Itoa(page))

			var doc *goquery.Document
			doc, _, cwk.err = cwk.client.GetDoc(ctx, path, params)
			if cwk.err != nil {
				cwk.err = fmt.Errorf(`Users #%d: %w`,
					page, cwk.err)
				return
			}

			var stopped bool
			doc.Find(`.listItemProfile h2 a`).EachWithBreak(
				func(_ int, item *goquery.Selection) bool {
					var user = strings.TrimSpace(item.Text())
					if user == `` {
						return true
					}
					if !yield(user) {
						stopped = true
						return false
					}
					return true
				})
			if stopped {
				return
			}
		}
	}
}

// Err return the error that stopped the last iteration of
// [ChartsWalker.Users], or nil.
func (cwk *ChartsWalker) Err() error {
	return cwk.err
}
