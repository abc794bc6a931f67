// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package deadvideos

import (
	"context"
	"fmt"

	"git.sr.ht/~shulhan/pakakeh.go/lib/mlog"

	"git.sr.ht/~shulhan/deadvideos/internal"
	"git.sr.ht/~shulhan/deadvideos/videohost"
)

// Scanner drive the whole pipeline: crawl comments, extract video
// links, check them against their hosts, and write report sections.
type Scanner struct {
	client   *SiteClient
	checkers map[videohost.Host]videohost.Checker
	opts     Options
}

// NewScanner create the scanner.
// Loading the YouTube API key happens here, before any crawling, so a
// missing key abort the whole run instead of surfacing halfway
// through.
func NewScanner(opts Options) (scn *Scanner, err error) {
	var logp = `NewScanner`

	err = opts.init()
	if err != nil {
		return nil, fmt.Errorf(`%s: %w`, logp, err)
	}

	var apiKey string
	apiKey, err = videohost.LoadAPIKey()
	if err != nil {
		return nil, fmt.Errorf(`%s: %w`, logp, err)
	}

	var checkers map[videohost.Host]videohost.Checker
	checkers, err = videohost.NewCheckers(apiKey,
		videohost.DefaultRetryPolicy)
	if err != nil {
		return nil, fmt.Errorf(`%s: %w`, logp, err)
	}

	scn = &Scanner{
		client:   NewSiteClient(opts.BaseUrl),
		checkers: checkers,
		opts:     opts,
	}
	return scn, nil
}

// ScanUser crawl all comments of the user and check every video link
// found in them.
// Links are checked in comment order, comments in page order; the
// same video posted by several comments is checked each time, as the
// report list every occurrence.
// A cancelled context return its error, so an interrupted scan is
// never mistaken for a complete one.
func (scn *Scanner) ScanUser(ctx context.Context, user string) (
	urep *UserReport, err error,
) {
	var logp = `ScanUser`

	mlog.Outf(`checking %s...`, user)

	var pro = NewProfile(scn.client, user)

	var nPages int
	nPages, err = pro.NumberOfPages(ctx)
	if err != nil {
		return nil, fmt.Errorf(`%s: %w`, logp, err)
	}
	if scn.opts.MaxPages > 0 && nPages > scn.opts.MaxPages {
		nPages = scn.opts.MaxPages
	}
	if nPages > 0 {
		mlog.Outf(`got %d pages of comments`, nPages)
	}

	urep = &UserReport{User: user}
	for comment := range pro.Comments(ctx, 1, nPages) {
		for link := range videohost.Extract(comment.Text) {
			if ctx.Err() != nil {
				return urep, ctx.Err()
			}
			link.Movie = comment.Movie
			link.User = user
			urep.Statuses = append(urep.Statuses,
				scn.checkLink(ctx, link))
		}
	}
	if ctx.Err() != nil {
		return urep, ctx.Err()
	}
	return urep, nil
}

// checkLink run the host checker for one link and log the outcome.
// A checker error never abort the scan; the link degrades to the
// "unknown" status so the report still list it.
func (scn *Scanner) checkLink(
	ctx context.Context, link videohost.VideoLink,
) videohost.LinkStatus {
	var status, err = scn.checkers[link.Host].Check(ctx, link.ID)
	if err != nil {
		mlog.Errf(`checkLink [%s] %s on %s: %s`,
			link.Host, link.ID, link.Movie, err)
		status = videohost.Status{
			Reason: videohost.ReasonUnknown,
		}
	}
	if status.Alive {
		mlog.Outf(`[%s] %s on %s: OK`, link.Host, link.ID,
			link.Movie)
	} else {
		mlog.Errf(`[%s] %s on %s: %s`, link.Host, link.ID,
			link.Movie, status.Reason)
	}
	return videohost.LinkStatus{
		Link:   link,
		Status: status,
	}
}

// ScanUserToFile scan one user and append their section to the
// report file when any of their links is dead.
func (scn *Scanner) ScanUserToFile(ctx context.Context, user string) (err error) {
	var logp = `ScanUserToFile`

	var urep *UserReport
	urep, err = scn.ScanUser(ctx, user)
	if err != nil {
		return fmt.Errorf(`%s: %w`, logp, err)
	}
	if urep.DeadCount() == 0 {
		return nil
	}

	err = AppendReportSection(internal.ResultFile, urep)
	if err != nil {
		return fmt.Errorf(`%s: %w`, logp, err)
	}
	mlog.Outf(`%s: %d dead links written to %s`, user,
		urep.DeadCount(), internal.ResultFile)
	return nil
}

// ScanCharts walk the charts pages, scanning every discovered user
// that is not in the checked-users file.
// A user that fails to scan is logged and skipped; each successful
// scan is recorded in the checked-users file right away, so an
// interrupted run keeps its progress.
func (scn *Scanner) ScanCharts(ctx context.Context) (err error) {
	var logp = `ScanCharts`

	var cus *CheckedUsers
	cus, err = LoadCheckedUsers()
	if err != nil {
		return fmt.Errorf(`%s: %w`, logp, err)
	}

	var nPages = scn.opts.TopPages - scn.opts.FromPage + 1
	mlog.Outf(`fetching %d pages of users (starting from #%d)...`,
		nPages, scn.opts.FromPage)

	var cwk = NewChartsWalker(scn.client, scn.opts.ByAllChecks)

	var listUser []string
	for user := range cwk.Users(ctx, scn.opts.FromPage, scn.opts.TopPages) {
		listUser = append(listUser, user)
	}
	if cwk.Err() != nil {
		return fmt.Errorf(`%s: %w`, logp, cwk.Err())
	}
	mlog.Outf(`got %d users`, len(listUser))

	if !scn.opts.IgnoreBlacklist {
		var unchecked = make([]string, 0, len(listUser))
		for _, user := range listUser {
			if !cus.Has(user) {
				unchecked = append(unchecked, user)
			}
		}
		listUser = unchecked
		mlog.Outf(`got %d unchecked users after applying %s`,
			len(listUser), internal.CheckedUsersFile)
	}

	for _, user := range listUser {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err = scn.ScanUserToFile(ctx, user)
		if err != nil {
			mlog.Errf(`%s %s: %s`, logp, user, err)
			continue
		}
		if scn.opts.IgnoreBlacklist {
			continue
		}
		err = cus.Add(user)
		if err != nil {
			return fmt.Errorf(`%s: %w`, logp, err)
		}
	}
	return nil
}
