// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package deadvideos

import (
	"context"
	"errors"
	"testing"

	"git.sr.ht/~shulhan/pakakeh.go/lib/test"
)

func TestProfileNumberOfPages(t *testing.T) {
	var ctx = context.Background()
	var scl = NewSiteClient(testBaseUrl)

	var n, err = NewProfile(scl, `monk`).NumberOfPages(ctx)
	if err != nil {
		t.Fatal(err)
	}
	test.Assert(t, `paginated profile`, 2, n)

	n, err = NewProfile(scl, `alice`).NumberOfPages(ctx)
	if err != nil {
		t.Fatal(err)
	}
	test.Assert(t, `single page profile`, 1, n)

	n, err = NewProfile(scl, `empty`).NumberOfPages(ctx)
	if err != nil {
		t.Fatal(err)
	}
	test.Assert(t, `profile without comments`, 0, n)
}

func TestProfileNumberOfPagesUnknownUser(t *testing.T) {
	var ctx = context.Background()
	var scl = NewSiteClient(testBaseUrl)

	var _, err = NewProfile(scl, `ghost`).NumberOfPages(ctx)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf(`expecting ErrUserNotFound, got %v`, err)
	}
}

func TestProfileNumberOfPagesFetchError(t *testing.T) {
	var ctx = context.Background()
	var scl = NewSiteClient(testBaseUrl)

	var _, err = NewProfile(scl, `gone`).NumberOfPages(ctx)

	var ferr *FetchError
	if !errors.As(err, &ferr) {
		t.Fatalf(`expecting FetchError, got %v`, err)
	}
	test.Assert(t, `status code`, 404, ferr.Code)
}

func TestProfileComments(t *testing.T) {
	var ctx = context.Background()
	var scl = NewSiteClient(testBaseUrl)
	var pro = NewProfile(scl, `monk`)

	var got []Comment
	for comment := range pro.Comments(ctx, 1, 2) {
		got = append(got, comment)
	}

	// The login warning block on page 1 is not a comment.
	var exp = []Comment{{
		Movie:  `/movies/the+general/`,
		Author: `monk`,
		Text:   `Classic! https://www.youtube.com/watch?v=dQw4w9WgXcQ`,
		Page:   1,
	}, {
		Movie:  `/movies/metropolis/`,
		Author: `monk`,
		Text:   `Two versions: https://vimeo.com/11111111 and https://www.dailymotion.com/video/x2bm1t9`,
		Page:   2,
	}}
	test.Assert(t, `comments`, exp, got)
}
