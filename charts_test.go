// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package deadvideos

import (
	"context"
	"testing"

	"git.sr.ht/~shulhan/pakakeh.go/lib/test"
)

func TestChartsWalkerUsers(t *testing.T) {
	var ctx = context.Background()
	var scl = NewSiteClient(testBaseUrl)

	var cwk = NewChartsWalker(scl, false)
	var got []string
	for user := range cwk.Users(ctx, 1, 1) {
		got = append(got, user)
	}
	if cwk.Err() != nil {
		t.Fatal(cwk.Err())
	}
	test.Assert(t, `official charts`, []string{`alice`, `carol`}, got)

	cwk = NewChartsWalker(scl, true)
	got = nil
	for user := range cwk.Users(ctx, 1, 1) {
		got = append(got, user)
	}
	if cwk.Err() != nil {
		t.Fatal(cwk.Err())
	}
	test.Assert(t, `by all checks`,
		[]string{`alice`, `bob`, `carol`}, got)
}

func TestChartsWalkerUsersStop(t *testing.T) {
	var ctx = context.Background()
	var scl = NewSiteClient(testBaseUrl)
	var cwk = NewChartsWalker(scl, false)

	var got []string
	for user := range cwk.Users(ctx, 1, 1) {
		got = append(got, user)
		break
	}
	if cwk.Err() != nil {
		t.Fatal(cwk.Err())
	}
	test.Assert(t, `stopped early`, []string{`alice`}, got)
}
