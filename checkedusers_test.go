// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package deadvideos

import (
	"os"
	"path/filepath"
	"testing"

	"git.sr.ht/~shulhan/pakakeh.go/lib/test"

	"git.sr.ht/~shulhan/deadvideos/internal"
)

func useTempCheckedUsersFile(t *testing.T) {
	var orig = internal.CheckedUsersFile
	t.Cleanup(func() {
		internal.CheckedUsersFile = orig
	})
	internal.CheckedUsersFile = filepath.Join(t.TempDir(),
		`checked_users.txt`)
}

func TestLoadCheckedUsersMissingFile(t *testing.T) {
	useTempCheckedUsersFile(t)

	var cus, err = LoadCheckedUsers()
	if err != nil {
		t.Fatal(err)
	}
	test.Assert(t, `empty set`, 0, cus.Len())
}

func TestCheckedUsersAdd(t *testing.T) {
	useTempCheckedUsersFile(t)

	var cus, err = LoadCheckedUsers()
	if err != nil {
		t.Fatal(err)
	}

	err = cus.Add(`alice`)
	if err != nil {
		t.Fatal(err)
	}
	err = cus.Add(`bob`)
	if err != nil {
		t.Fatal(err)
	}
	// Adding twice does not duplicate the line.
	err = cus.Add(`alice`)
	if err != nil {
		t.Fatal(err)
	}

	test.Assert(t, `has alice`, true, cus.Has(`alice`))
	test.Assert(t, `has carol`, false, cus.Has(`carol`))

	var raw []byte
	raw, err = os.ReadFile(internal.CheckedUsersFile)
	if err != nil {
		t.Fatal(err)
	}
	test.Assert(t, `file content`, "alice\nbob\n", string(raw))

	// A fresh load see the same set.
	cus, err = LoadCheckedUsers()
	if err != nil {
		t.Fatal(err)
	}
	test.Assert(t, `reloaded size`, 2, cus.Len())
	test.Assert(t, `reloaded has bob`, true, cus.Has(`bob`))
}
