// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package deadvideos

import (
	"os"
	"path/filepath"
	"testing"

	"git.sr.ht/~shulhan/pakakeh.go/lib/test"
	"github.com/xuri/excelize/v2"

	"git.sr.ht/~shulhan/deadvideos/videohost"
)

func newLinkStatus(user, movie string, host videohost.Host, videoId string,
	status videohost.Status,
) videohost.LinkStatus {
	return videohost.LinkStatus{
		Link: videohost.VideoLink{
			Host:  host,
			ID:    videoId,
			Movie: movie,
			User:  user,
		},
		Status: status,
	}
}

var statusDead = videohost.Status{Reason: videohost.ReasonNotFound}

func TestUserReportDeadCount(t *testing.T) {
	var urep = &UserReport{
		User: `monk`,
		Statuses: []videohost.LinkStatus{
			newLinkStatus(`monk`, `/movies/m/`, videohost.HostVimeo,
				`1`, videohost.StatusOk),
			newLinkStatus(`monk`, `/movies/m/`, videohost.HostVimeo,
				`2`, statusDead),
			newLinkStatus(`monk`, `/movies/m/`, videohost.HostYoutube,
				`3`, videohost.Status{Reason: videohost.ReasonUnknown}),
		},
	}
	test.Assert(t, `dead count`, 2, urep.DeadCount())
}

func TestReportSort(t *testing.T) {
	var rep = NewReport()

	// Inserted in order B, A, C; A and B tie on two dead links.
	var addDead = func(user string, n int) {
		var x int
		for x = range n {
			rep.AddStatus(user, newLinkStatus(user, `/movies/m/`,
				videohost.HostVimeo, string(rune('1'+x)),
				statusDead))
		}
	}
	addDead(`B`, 2)
	addDead(`A`, 2)
	addDead(`C`, 3)

	rep.Sort()

	var got []string
	for _, urep := range rep.Users() {
		got = append(got, urep.User)
	}
	test.Assert(t, `sorted`, []string{`C`, `A`, `B`}, got)
	test.Assert(t, `total dead`, 7, rep.TotalDead())
}

func TestUserReportMarkdownSection(t *testing.T) {
	var urep = &UserReport{
		User: `monk time`,
		Statuses: []videohost.LinkStatus{
			newLinkStatus(`monk time`, `/movies/the+general/`,
				videohost.HostYoutube, `dQw4w9WgXcQ`,
				videohost.StatusOk),
			newLinkStatus(`monk time`, `/movies/the+general/`,
				videohost.HostYoutube, `0qFS5IEctis`,
				videohost.Status{Reason: videohost.ReasonPrivate}),
			newLinkStatus(`monk time`, `/movies/metropolis/`,
				videohost.HostVimeo, `11111111`, statusDead),
		},
	}

	var exp = "## [monk time](https://www.icheckmovies.com/profiles/comments/?user=monk+time) (2)\n" +
		"- [youtube:0qFS5IEctis](https://www.youtube.com/watch?v=0qFS5IEctis) **(private)** on [/movies/the+general/](https://www.icheckmovies.com/movies/the+general/comments/)\n" +
		"- [vimeo:11111111](https://vimeo.com/11111111) on [/movies/metropolis/](https://www.icheckmovies.com/movies/metropolis/comments/)\n"

	test.Assert(t, `markdown section`, exp, urep.MarkdownSection())
}

// testReportFile write a small two-user report and return its path.
func testReportFile(t *testing.T) string {
	var file = filepath.Join(t.TempDir(), `result.md`)

	var alice = &UserReport{
		User: `alice`,
		Statuses: []videohost.LinkStatus{
			newLinkStatus(`alice`, `/movies/sunrise/`,
				videohost.HostVimeo, `22222222`, statusDead),
			newLinkStatus(`alice`, `/movies/sunrise/`,
				videohost.HostYoutube, `0qFS5IEctis`,
				videohost.Status{Reason: videohost.ReasonBlocked}),
		},
	}
	var bob = &UserReport{
		User: `bob`,
		Statuses: []videohost.LinkStatus{
			newLinkStatus(`bob`, `/movies/m/`,
				videohost.HostDailymotion, `x2bm1t9`,
				videohost.Status{Reason: videohost.ReasonUnreachable}),
		},
	}

	var err = AppendReportSection(file, alice)
	if err != nil {
		t.Fatal(err)
	}
	err = AppendReportSection(file, bob)
	if err != nil {
		t.Fatal(err)
	}
	return file
}

func TestParseReportFileRoundTrip(t *testing.T) {
	var file = testReportFile(t)

	var raw, err = os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}

	var rep *Report
	rep, err = ParseReportFile(file)
	if err != nil {
		t.Fatal(err)
	}

	// Parsing and re-rendering reproduce the file byte for byte.
	test.Assert(t, `round trip`, string(raw), rep.Markdown())
	test.Assert(t, `total dead`, 3, rep.TotalDead())
}

func TestSortReportFileIdempotent(t *testing.T) {
	var file = testReportFile(t)

	var nDead, err = SortReportFile(file)
	if err != nil {
		t.Fatal(err)
	}
	test.Assert(t, `dead links`, 3, nDead)

	var first []byte
	first, err = os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}

	// Sorting a second time must not change a byte.
	_, err = SortReportFile(file)
	if err != nil {
		t.Fatal(err)
	}
	var second []byte
	second, err = os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	test.Assert(t, `idempotent`, string(first), string(second))

	// alice has two dead links, bob one.
	var rep *Report
	rep, err = ParseReportFile(file)
	if err != nil {
		t.Fatal(err)
	}
	test.Assert(t, `first user`, `alice`, rep.Users()[0].User)
	test.Assert(t, `second user`, `bob`, rep.Users()[1].User)
}

func TestConvertReportToCSV(t *testing.T) {
	var file = testReportFile(t)

	var csvFile, nRow, err = ConvertReportToCSV(file)
	if err != nil {
		t.Fatal(err)
	}
	test.Assert(t, `rows`, 3, nRow)

	var raw []byte
	raw, err = os.ReadFile(csvFile)
	if err != nil {
		t.Fatal(err)
	}

	var exp = "username,url,host,alive,reason\n" +
		"alice,https://vimeo.com/22222222,vimeo,false,not found\n" +
		"alice,https://www.youtube.com/watch?v=0qFS5IEctis,youtube,false,blocked everywhere\n" +
		"bob,https://www.dailymotion.com/video/x2bm1t9,dailymotion,false,unreachable\n"
	test.Assert(t, `csv content`, exp, string(raw))
}

func TestConvertReportToXLSX(t *testing.T) {
	var file = testReportFile(t)

	var xlsxFile, nRow, err = ConvertReportToXLSX(file)
	if err != nil {
		t.Fatal(err)
	}
	test.Assert(t, `rows`, 3, nRow)

	var fxlsx *excelize.File
	fxlsx, err = excelize.OpenFile(xlsxFile)
	if err != nil {
		t.Fatal(err)
	}
	defer fxlsx.Close()

	var listRow [][]string
	listRow, err = fxlsx.GetRows(`Sheet1`)
	if err != nil {
		t.Fatal(err)
	}

	var exp = [][]string{
		{`username`, `url`, `host`, `alive`, `reason`},
		{`alice`, `https://vimeo.com/22222222`, `vimeo`, `false`,
			`not found`},
		{`alice`, `https://www.youtube.com/watch?v=0qFS5IEctis`,
			`youtube`, `false`, `blocked everywhere`},
		{`bob`, `https://www.dailymotion.com/video/x2bm1t9`,
			`dailymotion`, `false`, `unreachable`},
	}
	test.Assert(t, `xlsx content`, exp, listRow)
}
