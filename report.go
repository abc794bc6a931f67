// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package deadvideos

import (
	"encoding/csv"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"git.sr.ht/~shulhan/deadvideos/videohost"
)

// UserReport collect the checked link statuses of one user.
type UserReport struct {
	User     string
	Statuses []videohost.LinkStatus
}

// DeadCount return the number of links that are not alive.
// It is always derived from Statuses, never stored.
func (urep *UserReport) DeadCount() (n int) {
	for _, lstat := range urep.Statuses {
		if !lstat.Status.Alive {
			n++
		}
	}
	return n
}

// MarkdownSection render the user's dead links as one report
// section.
// Alive links are kept in memory but not listed; the section header
// count equals the number of listed lines.
// The reason "not found" is the common case and is left implicit,
// every other reason is written in bold.
func (urep *UserReport) MarkdownSection() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "## [%s](%s%s?user=%s) (%d)\n",
		urep.User, DefBaseUrl, pathUserComments,
		url.QueryEscape(urep.User), urep.DeadCount())

	for _, lstat := range urep.Statuses {
		if lstat.Status.Alive {
			continue
		}
		var reasonText string
		if lstat.Status.Reason != videohost.ReasonNotFound {
			reasonText = fmt.Sprintf(`**(%s)** `,
				lstat.Status.Reason)
		}
		fmt.Fprintf(&sb, "- [%s:%s](%s) %son [%s](%s%scomments/)\n",
			lstat.Link.Host, lstat.Link.ID, lstat.Link.Url(),
			reasonText,
			lstat.Link.Movie, DefBaseUrl, lstat.Link.Movie)
	}
	return sb.String()
}

// Report aggregate user reports in insertion order.
type Report struct {
	byUser   map[string]*UserReport
	listUser []*UserReport
}

// NewReport create an empty report.
func NewReport() *Report {
	return &Report{
		byUser: map[string]*UserReport{},
	}
}

// AddStatus record one checked link under its user.
func (rep *Report) AddStatus(user string, lstat videohost.LinkStatus) {
	var urep = rep.byUser[user]
	if urep == nil {
		urep = &UserReport{User: user}
		rep.byUser[user] = urep
		rep.listUser = append(rep.listUser, urep)
	}
	urep.Statuses = append(urep.Statuses, lstat)
}

// Users return the user reports in their current order.
func (rep *Report) Users() []*UserReport {
	return rep.listUser
}

// TotalDead return the number of dead links across all users.
func (rep *Report) TotalDead() (n int) {
	for _, urep := range rep.listUser {
		n += urep.DeadCount()
	}
	return n
}

// Sort order users by their dead links count, highest first.
// The sort is stable and ties are broken by username ascending.
func (rep *Report) Sort() {
	slices.SortStableFunc(rep.listUser,
		func(a, b *UserReport) int {
			var diff = b.DeadCount() - a.DeadCount()
			if diff != 0 {
				return diff
			}
			return strings.Compare(a.User, b.User)
		})
}

// Markdown render every user section, in order.
// Rendering the same report twice produce identical bytes.
func (rep *Report) Markdown() string {
	var sb strings.Builder
	for _, urep := range rep.listUser {
		sb.WriteString(urep.MarkdownSection())
	}
	return sb.String()
}

// AppendReportSection append the user's section to the report file,
// creating the file when needed.
func AppendReportSection(file string, urep *UserReport) (err error) {
	var logp = `AppendReportSection`

	var fout *os.File
	fout, err = os.OpenFile(file,
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf(`%s: %w`, logp, err)
	}
	_, err = fout.WriteString(urep.MarkdownSection())
	if err != nil {
		fout.Close()
		return fmt.Errorf(`%s: %w`, logp, err)
	}
	err = fout.Close()
	if err != nil {
		return fmt.Errorf(`%s: %w`, logp, err)
	}
	return nil
}

var (
	reReportHeader = regexp.MustCompile(
		`^## \[(.+?)\]\((.+?)\) \((\d+)\)$`)
	reReportRow = regexp.MustCompile(
		`^- \[(\w+):([^\]]+)\]\(([^)]+)\)` +
			`(?: \*\*\(([^)]+)\)\*\*)?` +
			` on \[([^\]]+)\]\([^)]+\)$`)
)

// ParseReportFile read a markdown report back into memory.
// Every line in the file is either a section header or a dead link
// row; anything else is an error, as is a section whose header count
// does not match its number of rows.
func ParseReportFile(file string) (rep *Report, err error) {
	var logp = `ParseReportFile`

	var raw []byte
	raw, err = os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf(`%s: %w`, logp, err)
	}

	rep = NewReport()

	var (
		current  *UserReport
		expCount int
	)
	for line := range strings.Lines(string(raw)) {
		line = strings.TrimRight(line, "\n")
		if line == `` {
			continue
		}

		var match = reReportHeader.FindStringSubmatch(line)
		if match != nil {
			err = checkSectionCount(current, expCount)
			if err != nil {
				return nil, fmt.Errorf(`%s: %w`, logp, err)
			}

			var user = match[1]
			expCount, err = strconv.Atoi(match[3])
			if err != nil {
				return nil, fmt.Errorf(`%s: %w`, logp, err)
			}
			current = &UserReport{User: user}
			rep.byUser[user] = current
			rep.listUser = append(rep.listUser, current)
			continue
		}

		match = reReportRow.FindStringSubmatch(line)
		if match == nil {
			return nil, fmt.Errorf(`%s: invalid line %q`,
				logp, line)
		}
		if current == nil {
			return nil, fmt.Errorf(`%s: row before header: %q`,
				logp, line)
		}

		var reason = match[4]
		if reason == `` {
			reason = videohost.ReasonNotFound
		}
		var lstat = videohost.LinkStatus{
			Link: videohost.VideoLink{
				Host:  videohost.Host(match[1]),
				ID:    match[2],
				Movie: match[5],
				User:  current.User,
			},
			Status: videohost.Status{
				Reason: reason,
			},
		}
		current.Statuses = append(current.Statuses, lstat)
	}

	err = checkSectionCount(current, expCount)
	if err != nil {
		return nil, fmt.Errorf(`%s: %w`, logp, err)
	}
	return rep, nil
}

func checkSectionCount(urep *UserReport, expCount int) error {
	if urep == nil {
		return nil
	}
	if len(urep.Statuses) != expCount {
		return fmt.Errorf(`section %q: header count %d but %d rows`,
			urep.User, expCount, len(urep.Statuses))
	}
	return nil
}

// SortReportFile rewrite the report file with its users sorted by
// dead links count descending, ties by username.
// It return the total number of dead links in the file.
func SortReportFile(file string) (nDead int, err error) {
	var logp = `SortReportFile`

	var rep *Report
	rep, err = ParseReportFile(file)
	if err != nil {
		return 0, fmt.Errorf(`%s: %w`, logp, err)
	}

	rep.Sort()

	err = os.WriteFile(file, []byte(rep.Markdown()), 0600)
	if err != nil {
		return 0, fmt.Errorf(`%s: %w`, logp, err)
	}
	return rep.TotalDead(), nil
}

// csvHeader is the column layout of both the CSV and XLSX exports.
var csvHeader = []string{`username`, `url`, `host`, `alive`, `reason`}

func (rep *Report) rows() (listRow [][]string) {
	for _, urep := range rep.listUser {
		for _, lstat := range urep.Statuses {
			listRow = append(listRow, []string{
				urep.User,
				lstat.Link.Url(),
				string(lstat.Link.Host),
				strconv.FormatBool(lstat.Status.Alive),
				lstat.Status.Reason,
			})
		}
	}
	return listRow
}

// ConvertReportToCSV read the markdown report and write it next to
// itself with a ".csv" extension.
// It return the CSV file name and the number of exported rows.
func ConvertReportToCSV(file string) (csvFile string, nRow int, err error) {
	var logp = `ConvertReportToCSV`

	var rep *Report
	rep, err = ParseReportFile(file)
	if err != nil {
		return ``, 0, fmt.Errorf(`%s: %w`, logp, err)
	}

	csvFile = withExt(file, `.csv`)

	var fout *os.File
	fout, err = os.Create(csvFile)
	if err != nil {
		return ``, 0, fmt.Errorf(`%s: %w`, logp, err)
	}

	var wr = csv.NewWriter(fout)
	err = wr.Write(csvHeader)
	if err != nil {
		fout.Close()
		return ``, 0, fmt.Errorf(`%s: %w`, logp, err)
	}

	var listRow = rep.rows()
	for _, row := range listRow {
		err = wr.Write(row)
		if err != nil {
			fout.Close()
			return ``, 0, fmt.Errorf(`%s: %w`, logp, err)
		}
	}
	wr.Flush()
	err = wr.Error()
	if err != nil {
		fout.Close()
		return ``, 0, fmt.Errorf(`%s: %w`, logp, err)
	}
	err = fout.Close()
	if err != nil {
		return ``, 0, fmt.Errorf(`%s: %w`, logp, err)
	}
	return csvFile, len(listRow), nil
}

// ConvertReportToXLSX is like [ConvertReportToCSV] but write an
// ".xlsx" workbook.
func ConvertReportToXLSX(file string) (xlsxFile string, nRow int, err error) {
	var logp = `ConvertReportToXLSX`

	var rep *Report
	rep, err = ParseReportFile(file)
	if err != nil {
		return ``, 0, fmt.Errorf(`%s: %w`, logp, err)
	}

	xlsxFile = withExt(file, `.xlsx`)

	var fxlsx = excelize.NewFile()
	defer fxlsx.Close()

	const sheet = `Sheet1`
	var header = make([]any, len(csvHeader))
	for x, name := range csvHeader {
		header[x] = name
	}
	err = fxlsx.SetSheetRow(sheet, `A1`, &header)
	if err != nil {
		return ``, 0, fmt.Errorf(`%s: %w`, logp, err)
	}

	var listRow = rep.rows()
	for y, row := range listRow {
		var cell string
		cell, err = excelize.CoordinatesToCellName(1, y+2)
		if err != nil {
			return ``, 0, fmt.Errorf(`%s: %w`, logp, err)
		}
		var values = make([]any, len(row))
		for x, val := range row {
			values[x] = val
		}
		err = fxlsx.SetSheetRow(sheet, cell, &values)
		if err != nil {
			return ``, 0, fmt.Errorf(`%s: %w`, logp, err)
		}
	}

	err = fxlsx.SaveAs(xlsxFile)
	if err != nil {
		return ``, 0, fmt.Errorf(`%s: %w`, logp, err)
	}
	return xlsxFile, len(listRow), nil
}

func withExt(file, ext string) string {
	var base = strings.TrimSuffix(file, `.md`)
	return base + ext
}
