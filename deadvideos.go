// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

// Package deadvideos find dead video links in user comments on
// icheckmovies.com.
//
// The scanner walk a user's comment pages, extract video links with
// [git.sr.ht/~shulhan/deadvideos/videohost], check each link against
// its host, and append the dead ones to a markdown report that can be
// sorted or converted to CSV and XLSX later.
// Candidate users can also be discovered from the site profile
// charts, skipping users recorded in the checked-users file.
package deadvideos

import (
	_ "embed"
)

// Version of deadvideos program and module.
var Version = `0.1.0`

// GoEmbedReadme embed the README for showing the usage of program.
//
//go:embed README
var GoEmbedReadme string
