// Copyright 2026 The lnk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fileinfo collects filesystem metadata for a shortcut file
// alongside its decoded structure, for forensic reports that need to
// correlate the two (e.g. comparing a shortcut's embedded timestamps
// against the file's own mtime).
package fileinfo

import (
	"os"
	"time"
)

// Info is the filesystem-level metadata collected for one file.
type Info struct {
	Path       string
	Size       int64
	ModTime    time.Time
	Mode       os.FileMode
}

// Stat collects filesystem metadata for path.
func Stat(path string) (Info, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Info{}, err
	}
	return Info{
		Path:    path,
		Size:    fi.Size(),
		ModTime: fi.ModTime(),
		Mode:    fi.Mode(),
	}, nil
}
