// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

// Package internal hold the file names shared across the module.
// They are variables so that test files can point them into a
// temporary directory.
package internal

// EnvAPIKey is the environment variable that carries the YouTube
// Data API key, taking precedence over the key file.
const EnvAPIKey = `YOUTUBE_API_KEY`

// DefKeyFile is the default name of the API key file.
const DefKeyFile = `youtube_data_api.key`

var (
	// ResultFile is where per-user report sections are appended.
	ResultFile = `result.md`

	// CheckedUsersFile record usernames already crawled, one per
	// line, append-only.
	CheckedUsersFile = `checked_users.txt`

	// KeyFile hold the YouTube Data API key as a single line.
	KeyFile = DefKeyFile

	// LogFile receive a copy of everything logged to the console.
	LogFile = `deadvideos.log`
)
