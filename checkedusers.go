// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package deadvideos

import (
	"fmt"
	"os"
	"strings"

	"git.sr.ht/~shulhan/deadvideos/internal"
)

// CheckedUsers is the persisted set of usernames that has been
// crawled on previous runs, so charts walking does not repeat them.
// The file store one username per line and is append-only; there is
// no operation to remove a name.
type CheckedUsers struct {
	users map[string]struct{}
	file  string
}

// LoadCheckedUsers read the checked-users file.
// A missing file is not an error, it simply mean no user has been
// checked yet.
func LoadCheckedUsers() (cus *CheckedUsers, err error) {
	var logp = `LoadCheckedUsers`

	cus = &CheckedUsers{
		users: map[string]struct{}{},
		file:  internal.CheckedUsersFile,
	}

	var raw []byte
	raw, err = os.ReadFile(cus.file)
	if err != nil {
		if os.IsNotExist(err) {
			return cus, nil
		}
		return nil, fmt.Errorf(`%s: %w`, logp, err)
	}

	for line := range strings.Lines(string(raw)) {
		line = strings.TrimSpace(line)
		if line == `` {
			continue
		}
		cus.users[line] = struct{}{}
	}
	return cus, nil
}

// Has return true if the user has been checked before.
func (cus *CheckedUsers) Has(user string) bool {
	var _, ok = cus.users[user]
	return ok
}

// Len return the number of checked users.
func (cus *CheckedUsers) Len() int {
	return len(cus.users)
}

// Add record the user as checked, appending it to the file
// immediately so an interrupted run does not lose progress.
func (cus *CheckedUsers) Add(user string) (err error) {
	var logp = `Add`

	if cus.Has(user) {
		return nil
	}

	var fout *os.File
	fout, err = os.OpenFile(cus.file,
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf(`%s: %w`, logp, err)
	}
	_, err = fout.WriteString(user + "\n")
	if err != nil {
		fout.Close()
		return fmt.Errorf(`%s: %w`, logp, err)
	}
	err = fout.Close()
	if err != nil {
		return fmt.Errorf(`%s: %w`, logp, err)
	}

	cus.users[user] = struct{}{}
	return nil
}
