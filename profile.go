// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package deadvideos

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net/url"
	"strconv"
	"strings"

	"git.sr.ht/~shulhan/pakakeh.go/lib/mlog"
	"github.com/PuerkitoBio/goquery"
)

// ErrUserNotFound is returned when the profile being crawled does not
// exist.
// The site does not answer 404 for unknown profiles; it redirect to
// the login page instead.
var ErrUserNotFound = errors.New(`user does not exist`)

const pathUserComments = `/profiles/comments/`

// Comment is one comment scraped from a profile page, discarded after
// link extraction.
type Comment struct {
	// Movie is the href of the movie the comment was posted on.
	Movie string

	// Author of the comment.
	Author string

	// Text content of the comment.
	Text string

	// Page of the profile the comment was found on.
	Page int
}

// Profile crawl the comment history of one user, page by page.
type Profile struct {
	client *SiteClient

	// User is the profile being crawled.
	User string
}

// NewProfile create a crawler for the user's comment pages.
func NewProfile(scl *SiteClient, user string) *Profile {
	return &Profile{
		client: scl,
		User:   user,
	}
}

// NumberOfPages return the total number of comment pages of the user.
// A profile that redirect to the login page does not exist and is
// reported as [ErrUserNotFound].
func (pro *Profile) NumberOfPages(ctx context.Context) (n int, err error) {
	var logp = `NumberOfPages`

	var params = url.Values{}
	params.Set(`user`, pro.User)

	var (
		doc      *goquery.Document
		finalUrl *url.URL
	)
	doc, finalUrl, err = pro.client.GetDoc(ctx, pathUserComments, params)
	if err != nil {
		return 0, fmt.Errorf(`%s %s: %w`, logp, pro.User, err)
	}
	if strings.Contains(finalUrl.Path, `/login/`) {
		return 0, fmt.Errorf(`%s %s: %w`, logp, pro.User,
			ErrUserNotFound)
	}

	var paginator = doc.Find(`.pages li a`)
	if paginator.Length() > 0 {
		var last = paginator.Last().Text()
		n, err = strconv.Atoi(strings.TrimSpace(last))
		if err != nil {
			return 0, fmt.Errorf(`%s %s: invalid paginator %q`,
				logp, pro.User, last)
		}
		return n, nil
	}
	if doc.Find(`.comment`).Length() == 0 {
		return 0, nil
	}
	return 1, nil
}

// commentsInPage fetch and scrape one page of the user's comments.
func (pro *Profile) commentsInPage(ctx context.Context, page int) (
	listComment []Comment, err error,
) {
	var logp = `commentsInPage`

	var params = url.Values{}
	params.Set(`user`, pro.User)
	params.Set(`page`, strconv.Itoa(page))

	var doc *goquery.Document
	doc, _, err = pro.client.GetDoc(ctx, pathUserComments, params)
	if err != nil {
		return nil, fmt.Errorf(`%s #%d: %w`, logp, page, err)
	}

	// A comment block holding a highlightBlock is the site's
	// login warning, not a user comment.
	var sel = doc.Find(`.comment`).FilterFunction(
		func(_ int, item *goquery.Selection) bool {
			return item.ChildrenFiltered(`.highlightBlock`).Length() == 0
		})

	sel.Each(func(_ int, item *goquery.Selection) {
		var comment = Comment{
			Movie:  item.Find(`.link a`).First().AttrOr(`href`, ``),
			Author: strings.TrimSpace(item.Find(`h3 a`).First().Text()),
			Text:   item.Find(`.span-18 > span`).First().Text(),
			Page:   page,
		}
		listComment = append(listComment, comment)
	})
	return listComment, nil
}

// Comments return the user's comments on pages from..to, inclusive.
// The sequence is lazy: each page is fetched when the iteration
// reaches it.
// A page that fails to fetch is logged and skipped, matching how the
// report should keep going over flaky pages; iteration stop early
// only when the context is done.
func (pro *Profile) Comments(ctx context.Context, from, to int) iter.Seq[Comment] {
	return func(yield func(Comment) bool) {
		var page int
		for page = from; page <= to; page++ {
			if ctx.Err() != nil {
				return
			}
			mlog.Outf(`checking %s's page #%d`, pro.User, page)

			var listComment, err = pro.commentsInPage(ctx, page)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				mlog.Errf(`Comments %s: %s`, pro.User, err)
				continue
			}
			for _, comment := range listComment {
				if !yield(comment) {
					return
				}
			}
		}
	}
}
