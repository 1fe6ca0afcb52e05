// Copyright 2026 The lnk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	lnk "github.com/forensic-go/lnk"
	"github.com/forensic-go/lnk/internal/fileinfo"
)

// Format selects Table's delimited output shape.
type Format int

const (
	FormatTXT Format = iota
	FormatCSV
	FormatTSV
)

// ParseFormat maps the -o flag's argument to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "txt":
		return FormatTXT, nil
	case "csv":
		return FormatCSV, nil
	case "tsv":
		return FormatTSV, nil
	default:
		return 0, fmt.Errorf("unknown output format %q (want csv, tsv, or txt)", s)
	}
}

// fullTableHeader names Table's columns under the full (non -s) report.
var fullTableHeader = []string{
	"file_name", "file_size", "file_mod_time",
	"path", "name", "relative_path", "working_dir", "arguments",
	"icon_location", "creation_time", "access_time", "write_time",
	"target_size", "local_base_path", "net_name", "anomaly_count",
}

// shortTableHeader names Table's columns under the -s reduced report:
// offsets, sizes-of-substructure, and the net_name/local_base_path
// LinkInfo detail are dropped, per spec.md's -s definition.
var shortTableHeader = []string{
	"file_name", "file_mod_time",
	"path", "name", "relative_path", "working_dir", "arguments",
	"icon_location", "anomaly_count",
}

// Row builds one Table row for a decoded shortcut, prefixed with the
// file's base name (taken from path) and the size and mod time
// fileinfo.Stat collected for it. short selects the reduced column set
// matching shortTableHeader; fi is the zero value if Stat failed, in
// which case file_mod_time is empty and file_size is "0" rather than
// the row being aborted.
func Row(path string, fi fileinfo.Info, s *lnk.ShortcutFile, short bool) []string {
	var localBasePath, netName string
	if s.LinkInfo != nil {
		localBasePath = s.LinkInfo.LocalBasePath
		if s.LinkInfo.CommonNetworkRelativeLink != nil {
			netName = s.LinkInfo.CommonNetworkRelativeLink.NetName
		}
	}

	fileModTime := ""
	if !fi.ModTime.IsZero() {
		fileModTime = fi.ModTime.UTC().Format("2006-01-02 15:04:05")
	}
	fileName := filepath.Base(path)

	if short {
		return []string{
			fileName,
			fileModTime,
			path,
			s.StringData.Name.Value,
			s.StringData.RelativePath.Value,
			s.StringData.WorkingDir.Value,
			s.StringData.Arguments.Value,
			s.StringData.IconLocation.Value,
			strconv.Itoa(len(s.Anomalies)),
		}
	}

	return []string{
		fileName,
		strconv.FormatInt(fi.Size, 10),
		fileModTime,
		path,
		s.StringData.Name.Value,
		s.StringData.RelativePath.Value,
		s.StringData.WorkingDir.Value,
		s.StringData.Arguments.Value,
		s.StringData.IconLocation.Value,
		s.Header.CreationTime.String(),
		s.Header.AccessTime.String(),
		s.Header.WriteTime.String(),
		strconv.FormatUint(uint64(s.Header.TargetSize), 10),
		localBasePath,
		netName,
		strconv.Itoa(len(s.Anomalies)),
	}
}

// Table writes rows as CSV or TSV to w, with a header row first
// matching short's column set. In csv, commas within string fields are
// substituted by semicolons before emission, per spec.md §6; tsv has
// no such requirement since its own delimiter isn't a comma.
func Table(w io.Writer, format Format, short bool, rows [][]string) error {
	cw := csv.NewWriter(w)
	if format == FormatTSV {
		cw.Comma = '\t'
	}

	header := fullTableHeader
	if short {
		header = shortTableHeader
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		sanitized := make([]string, len(row))
		for i, field := range row {
			field = strings.ReplaceAll(field, "\n", " ")
			if format == FormatCSV {
				field = strings.ReplaceAll(field, ",", ";")
			}
			sanitized[i] = field
		}
		if err := cw.Write(sanitized); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
