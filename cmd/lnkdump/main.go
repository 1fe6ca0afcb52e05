// Copyright 2026 The lnk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	lnk "github.com/forensic-go/lnk"
	"github.com/forensic-go/lnk/internal/fileinfo"
	"github.com/forensic-go/lnk/internal/render"
)

var (
	verbose              bool
	short                bool
	includeEmbeddedProps bool
	outputFormat         string
	skipExtra            bool
)

var log = logrus.New()

// expandArgs resolves the dump subcommand's <file|dir>... arguments
// into a flat list of regular files. Per spec.md §6, either exactly
// one directory (walked recursively) or one-or-more explicit files is
// accepted; mixing a directory with any other argument is rejected.
func expandArgs(args []string) ([]string, error) {
	if len(args) > 1 {
		for _, a := range args {
			info, err := os.Stat(a)
			if err != nil {
				return nil, err
			}
			if info.IsDir() {
				return nil, fmt.Errorf("%s is a directory: cannot mix a directory with other arguments", a)
			}
		}
		return args, nil
	}

	info, err := os.Stat(args[0])
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return args, nil
	}

	var files []string
	err = filepath.WalkDir(args[0], func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, p)
		}
		return nil
	})
	return files, err
}

func dumpOne(path string) (*lnk.ShortcutFile, error) {
	s, err := lnk.New(path, &lnk.Options{SkipExtraData: skipExtra, Logger: log})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func runDump(cmd *cobra.Command, args []string) error {
	format, err := render.ParseFormat(outputFormat)
	if err != nil {
		return err
	}

	files, err := expandArgs(args)
	if err != nil {
		return err
	}

	w := os.Stdout

	if format != render.FormatTXT {
		var rows [][]string
		for _, path := range files {
			s, err := dumpOne(path)
			if err != nil {
				log.Warnf("%s: %v", path, err)
				continue
			}
			fi, err := fileinfo.Stat(path)
			if err != nil {
				log.Warnf("%s: stat: %v", path, err)
			}
			rows = append(rows, render.Row(path, fi, s, short))
			s.Close()
		}
		return render.Table(w, format, short, rows)
	}

	for _, path := range files {
		s, err := dumpOne(path)
		if err != nil {
			log.Warnf("%s: %v", path, err)
			continue
		}
		fmt.Fprintf(w, "%s\n", path)
		render.Text(w, s, short, includeEmbeddedProps)
		s.Close()
	}
	return nil
}

func main() {
	log.SetLevel(logrus.WarnLevel)

	rootCmd := &cobra.Command{
		Use:   "lnkdump",
		Short: "A Windows shortcut (.lnk) forensic parser",
		Long:  "lnkdump decodes MS-SHLLINK shortcut files for forensic inspection.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("lnkdump version 0.1.0")
		},
	}

	dumpCmd := &cobra.Command{
		Use:   "dump [-s] [-i] [-o csv|tsv|txt] <file|dir>...",
		Short: "Decode one or more shortcut files, or every file under a directory",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runDump,
	}
	dumpCmd.Flags().BoolVarP(&short, "short", "s", false, "shortened output: omit offsets, sizes, reserved fields, raw flag bit-sets, and UUID version/variant details")
	dumpCmd.Flags().BoolVarP(&includeEmbeddedProps, "include-embedded-props", "i", false, "include parsed property stores embedded in ItemID payloads (text output only, ignored with -s)")
	dumpCmd.Flags().StringVarP(&outputFormat, "output", "o", "txt", "output format: csv, tsv, or txt")
	dumpCmd.Flags().BoolVar(&skipExtra, "skip-extra", false, "skip ExtraData block decoding")

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.AddCommand(versionCmd, dumpCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
