// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package deadvideos

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	libnet "git.sr.ht/~shulhan/pakakeh.go/lib/net"
)

// The test run one web server that mimic the site: comment pages of
// known users are served from testdata, unknown users redirect to the
// login page, and the charts pages list a fixed set of profiles.

const testAddress = `127.0.0.1:11847`
const testBaseUrl = `http://` + testAddress

func TestMain(m *testing.M) {
	var mux = http.NewServeMux()
	mux.HandleFunc(pathUserComments, handleTestComments)
	mux.HandleFunc(pathCharts, handleTestCharts)
	mux.HandleFunc(pathProfiles, handleTestProfiles)
	mux.HandleFunc(`/login/`, handleTestLogin)

	go func() {
		var testServer = &http.Server{
			Addr:           testAddress,
			Handler:        mux,
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			MaxHeaderBytes: 1 << 20,
		}
		var err = testServer.ListenAndServe()
		if err != nil {
			log.Fatal(err)
		}
	}()

	var err = libnet.WaitAlive(`tcp`, testAddress, 5*time.Second)
	if err != nil {
		log.Fatal(err)
	}

	os.Exit(m.Run())
}

func serveTestdata(resw http.ResponseWriter, req *http.Request, name string) {
	http.ServeFile(resw, req, filepath.Join(`testdata`, name))
}

func handleTestComments(resw http.ResponseWriter, req *http.Request) {
	var q = req.URL.Query()
	var user = q.Get(`user`)
	var page = q.Get(`page`)
	if page == `` {
		page = `1`
	}

	switch user {
	case `monk`:
		serveTestdata(resw, req, `comments_monk_`+page+`.html`)
	case `alice`, `carol`:
		serveTestdata(resw, req, `comments_solo.html`)
	case `empty`:
		serveTestdata(resw, req, `comments_empty.html`)
	case `gone`:
		resw.WriteHeader(http.StatusNotFound)
	default:
		http.Redirect(resw, req, `/login/`, http.StatusFound)
	}
}

func handleTestCharts(resw http.ResponseWriter, req *http.Request) {
	serveTestdata(resw, req, `charts_1.html`)
}

func handleTestProfiles(resw http.ResponseWriter, req *http.Request) {
	serveTestdata(resw, req, `allchecks_1.html`)
}

func handleTestLogin(resw http.ResponseWriter, req *http.Request) {
	resw.Write([]byte(`<html><body>Log in</body></html>`))
}
