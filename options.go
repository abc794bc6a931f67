// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package deadvideos

import (
	"fmt"
)

// Options define what the scanner should do, mirroring the command
// line surface.
type Options struct {
	// Username of a single profile to scan.
	Username string

	// BaseUrl override the site URL, for tests.
	// Empty means [DefBaseUrl].
	BaseUrl string

	// TopPages is the last charts page to walk; zero disables
	// charts walking.
	TopPages int

	// FromPage is the first charts page to walk, default 1.
	FromPage int

	// MaxPages cap the number of comment pages fetched per user;
	// zero means all pages.
	MaxPages int

	// Sort the existing report file by dead links count.
	Sort bool

	// Convert the existing report file to CSV.
	Convert bool

	// Xlsx convert the existing report file to XLSX.
	Xlsx bool

	// IgnoreBlacklist scan users even when they are in the
	// checked-users file, and do not record them afterwards.
	IgnoreBlacklist bool

	// ByAllChecks use the profile listing sorted by all checks
	// instead of the official charts.
	ByAllChecks bool
}

func (opts *Options) init() (err error) {
	var logp = `Options`

	if opts.TopPages < 0 {
		return fmt.Errorf(`%s: invalid top pages %d`, logp,
			opts.TopPages)
	}
	if opts.MaxPages < 0 {
		return fmt.Errorf(`%s: invalid max pages %d`, logp,
			opts.MaxPages)
	}
	if opts.FromPage <= 0 {
		opts.FromPage = 1
	}
	if opts.TopPages > 0 && opts.FromPage > opts.TopPages {
		return fmt.Errorf(`%s: from page %d is after top page %d`,
			logp, opts.FromPage, opts.TopPages)
	}
	return nil
}
