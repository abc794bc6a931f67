// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

// Package videohost recognize video links from a fixed set of hosts
// inside free-form comment text and check whether each video is still
// available.
//
// The set of hosts is closed: YouTube, Vimeo, Dailymotion, and the
// legacy Google Video.
// Each host pairs a URL pattern for extracting video IDs with a
// [Checker] that report the video [Status].
package videohost

import (
	"fmt"
	"iter"
	"regexp"
)

// Host is the identifier of a supported video platform.
type Host string

// The supported hosts.
const (
	HostYoutube     Host = `youtube`
	HostVimeo       Host = `vimeo`
	HostDailymotion Host = `dailymotion`
	HostGooglevideo Host = `googlevideo`
)

// AllHosts list the supported hosts in a fixed order.
var AllHosts = []Host{
	HostYoutube,
	HostVimeo,
	HostDailymotion,
	HostGooglevideo,
}

// watchUrlFmt define the canonical watch URL of each host, with a
// single "%s" placeholder for the video ID.
var watchUrlFmt = map[Host]string{
	HostYoutube:     `https://www.youtube.com/watch?v=%s`,
	HostVimeo:       `https://vimeo.com/%s`,
	HostDailymotion: `https://www.dailymotion.com/video/%s`,
	HostGooglevideo: `http://video.google.com/videoplay?docid=%s`,
}

// reYoutubeId match the many shapes of YouTube video URLs: youtu.be
// short links, /v/ and /vi/, /e/ and /embed/, old channel deep links
// with "#p/", and plain watch URLs with "v=" or "vi=" anywhere in the
// query.
var reYoutubeId = regexp.MustCompile(
	`(?:youtu\.be/|youtube\.com/` +
		`(?:(?:vi?|(?:user/)?\w+#p/(?:\w+/)?\w+/\d+|e|embed)/` +
		`|(?:[\w?=]+)?[?&]vi?=))` +
		`([-_a-zA-Z0-9]{11,12})`)

// linkRegex define the video ID pattern of each host.
// The ID is always the first capture group.
var linkRegex = map[Host]*regexp.Regexp{
	HostYoutube:     reYoutubeId,
	HostVimeo:       regexp.MustCompile(`vimeo\.com/(\d+)`),
	HostDailymotion: regexp.MustCompile(`dailymotion\.com/video/([^"\s]+)`),
	HostGooglevideo: regexp.MustCompile(`video\.google\.com/videoplay\?.*?docid=([-0-9]+)`),
}

// WatchUrl return the canonical watch URL for a video ID on the host.
func (host Host) WatchUrl(videoId string) string {
	return fmt.Sprintf(watchUrlFmt[host], videoId)
}

// VideoLink is one video link discovered inside a user comment.
type VideoLink struct {
	// Host that serves the video.
	Host Host

	// ID of the video on the host.
	ID string

	// Movie is the path of the movie page the comment was posted
	// on, for example "/movies/the+general+line/".
	Movie string

	// User is the name of the comment author.
	User string
}

// Url return the canonical watch URL of the link.
func (link VideoLink) Url() string {
	return link.Host.WatchUrl(link.ID)
}

// Extract scan the text for video links of every supported host.
// The returned sequence is finite and can be iterated multiple times.
// Text that merely look like a URL but does not match any host
// pattern produce nothing.
func Extract(text string) iter.Seq[VideoLink] {
	return func(yield func(VideoLink) bool) {
		for _, host := range AllHosts {
			var matches = linkRegex[host].FindAllStringSubmatch(text, -1)
			for _, match := range matches {
				var link = VideoLink{
					Host: host,
					ID:   match[1],
				}
				if !yield(link) {
					return
				}
			}
		}
	}
}
