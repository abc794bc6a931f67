// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"git.sr.ht/~shulhan/pakakeh.go/lib/mlog"
	"github.com/joho/godotenv"

	"git.sr.ht/~shulhan/deadvideos"
	"git.sr.ht/~shulhan/deadvideos/internal"
)

func main() {
	// The .env file is optional; the API key can also live in the
	// key file.
	_ = godotenv.Load()

	var opts deadvideos.Options

	flag.BoolVar(&opts.Sort, `s`, false, ``)
	flag.BoolVar(&opts.Sort, `sort`, false,
		`Sort users in the report by dead links count.`)

	flag.BoolVar(&opts.Convert, `c`, false, ``)
	flag.BoolVar(&opts.Convert, `convert`, false,
		`Convert the report to CSV.`)

	flag.BoolVar(&opts.Xlsx, `x`, false, ``)
	flag.BoolVar(&opts.Xlsx, `xlsx`, false,
		`Convert the report to XLSX.`)

	flag.IntVar(&opts.TopPages, `t`, 0, ``)
	flag.IntVar(&opts.TopPages, `top`, 0,
		`Scan users on the first PAGES pages of profile charts.`)

	flag.IntVar(&opts.FromPage, `f`, 0, ``)
	flag.IntVar(&opts.FromPage, `from`, 0,
		`Start from page NUM of profile charts.`)

	flag.BoolVar(&opts.IgnoreBlacklist, `i`, false, ``)
	flag.BoolVar(&opts.IgnoreBlacklist, `ignore-blacklist`, false,
		`Do not skip users in the checked-users file.`)

	flag.BoolVar(&opts.ByAllChecks, `a`, false, ``)
	flag.BoolVar(&opts.ByAllChecks, `allchecks`, false,
		`Use charts by all checks instead of only official ones.`)

	flag.IntVar(&opts.MaxPages, `maxpages`, 0,
		`Fetch at most N comment pages per user.`)

	flag.Parse()

	opts.Username = flag.Arg(0)

	if len(os.Args) == 1 {
		os.Stderr.WriteString(deadvideos.GoEmbedReadme)
		os.Exit(1)
	}

	var logf, err = os.OpenFile(internal.LogFile,
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		mlog.Fatalf(`%s`, err)
	}
	mlog.RegisterOutputWriter(mlog.NewNamedWriter(`file`, logf))
	mlog.RegisterErrorWriter(mlog.NewNamedWriter(`file`, logf))
	defer mlog.Flush()

	var ctx, stop = signal.NotifyContext(context.Background(),
		os.Interrupt)
	defer stop()

	switch {
	case opts.Username != ``:
		var scn *deadvideos.Scanner
		scn, err = deadvideos.NewScanner(opts)
		if err != nil {
			mlog.Fatalf(`%s`, err)
		}
		err = scn.ScanUserToFile(ctx, opts.Username)
		if err != nil {
			mlog.Fatalf(`%s`, err)
		}

	case opts.TopPages > 0:
		var scn *deadvideos.Scanner
		scn, err = deadvideos.NewScanner(opts)
		if err != nil {
			mlog.Fatalf(`%s`, err)
		}
		err = scn.ScanCharts(ctx)
		if err != nil {
			mlog.Fatalf(`%s`, err)
		}

	case opts.Sort:
		var nDead int
		nDead, err = deadvideos.SortReportFile(internal.ResultFile)
		if err != nil {
			mlog.Fatalf(`%s`, err)
		}
		mlog.Outf(`%d dead links in %s`, nDead, internal.ResultFile)

	case opts.Convert || opts.Xlsx:
		var convert = deadvideos.ConvertReportToCSV
		if opts.Xlsx {
			convert = deadvideos.ConvertReportToXLSX
		}
		var outFile string
		var nRow int
		outFile, nRow, err = convert(internal.ResultFile)
		if err != nil {
			mlog.Fatalf(`%s`, err)
		}
		mlog.Outf(`exported %d dead links from %s to %s`,
			nRow, internal.ResultFile, outFile)

	default:
		mlog.Errf(`no username given`)
		os.Stderr.WriteString(deadvideos.GoEmbedReadme)
		os.Exit(1)
	}
}
