// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package videohost

// The reasons a video can be reported as not alive.
// A plain HTTP failure on a probe is reported as "HTTP <code>",
// except 404 and 410 which collapse into [ReasonNotFound].
const (
	ReasonNotFound    = `not found`
	ReasonPrivate     = `private`
	ReasonRemoved     = `removed`
	ReasonBlocked     = `blocked everywhere`
	ReasonUnreachable = `unreachable`
	ReasonUnknown     = `unknown`
)

// Status is the outcome of checking one video ID.
// Reason is set if and only if Alive is false.
type Status struct {
	Reason string
	Alive  bool
}

// StatusOk is the status of an available video.
var StatusOk = Status{Alive: true}

// LinkStatus pairs a discovered link with its checked status.
type LinkStatus struct {
	Link   VideoLink
	Status Status
}
