// Copyright 2024 The LineLog Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Command linelog is an operator front end for the linelog package: it
// drives an import from a git repository, checks out and blames a
// saved history, and re-serializes a saved history to disk.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/linelogdev/linelog"
	"github.com/linelogdev/linelog/githistory"
)

var logger = logrus.New()

func main() {
	app := kingpin.New("linelog", "Inspect and build compressed line-history logs.")
	app.HelpFlag.Short('h')
	debug := app.Flag("debug", "Enable debug logging.").Bool()

	importCmd := app.Command("import", "Import a path's history from a git repository and write it to a file.")
	importRepo := importCmd.Flag("repo", "Repository directory.").Required().String()
	importPath := importCmd.Flag("path", "Path within the repository to import.").Required().String()
	importOut := importCmd.Flag("out", "Output file.").Required().String()

	checkoutCmd := app.Command("checkout", "Print the content of a saved history at a revision.")
	checkoutIn := checkoutCmd.Flag("in", "Input file.").Required().String()
	checkoutRev := checkoutCmd.Flag("rev", "Revision to check out.").Required().Int()
	checkoutStart := checkoutCmd.Flag("start", "Start revision for a union view (omit or pass -1 for a plain snapshot).").Default("-1").Int()

	blameCmd := app.Command("blame", "Print each line of a revision annotated with its introducing revision.")
	blameIn := blameCmd.Flag("in", "Input file.").Required().String()
	blameRev := blameCmd.Flag("rev", "Revision to blame.").Required().Int()

	reexportCmd := app.Command("reexport", "Re-serialize a saved history, for format migration testing.")
	reexportIn := reexportCmd.Flag("in", "Input file.").Required().String()
	reexportOut := reexportCmd.Flag("out", "Output file.").Required().String()

	cmd, err := app.Parse(os.Args[1:])
	if err != nil {
		kingpin.Fatalf("%v", err)
	}
	if *debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	var runErr error
	switch cmd {
	case importCmd.FullCommand():
		runErr = runImport(*importRepo, *importPath, *importOut)
	case checkoutCmd.FullCommand():
		runErr = runCheckout(*checkoutIn, *checkoutRev, checkoutStartArg(checkoutStart))
	case blameCmd.FullCommand():
		runErr = runBlame(*blameIn, *blameRev)
	case reexportCmd.FullCommand():
		runErr = runReexport(*reexportIn, *reexportOut)
	}
	if runErr != nil {
		logger.Fatal(runErr)
	}
}

// checkoutStartArg treats an unset --start (default -1) as "no start
// revision". 0 is itself a valid revision a caller might name
// explicitly, and kingpin gives no direct way to tell an unset plain Int
// flag from one set to its zero value, so negative is reserved as
// "absent".
func checkoutStartArg(start *int) []int {
	if *start < 0 {
		return nil
	}
	return []int{*start}
}

func runImport(repo, path, out string) error {
	ctx := context.Background()
	logger.WithField("repo", repo).WithField("path", path).Info("importing history")

	revs, err := githistory.Import(ctx, repo, path)
	if err != nil {
		return fmt.Errorf("linelog: import: %w", err)
	}
	logger.WithField("revisions", len(revs)).Info("imported revisions")

	l := linelog.New()
	if err := githistory.Replay(l, revs); err != nil {
		return fmt.Errorf("linelog: import: %w", err)
	}

	data, err := l.Export()
	if err != nil {
		return fmt.Errorf("linelog: import: %w", err)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("linelog: import: %w", err)
	}
	logger.WithField("out", out).WithField("maxRev", l.MaxRev()).Info("wrote history")
	return nil
}

func runCheckout(in string, rev int, start []int) error {
	l, err := loadLineLog(in)
	if err != nil {
		return err
	}
	l.CheckOut(rev, start...)
	fmt.Print(l.Content())
	return nil
}

func runBlame(in string, rev int) error {
	l, err := loadLineLog(in)
	if err != nil {
		return err
	}
	l.CheckOut(rev)
	for i, li := range l.Lines() {
		if i == len(l.Lines())-1 {
			break
		}
		fmt.Printf("rev %d\t%s", li.Rev, li.Data)
	}
	return nil
}

func runReexport(in, out string) error {
	l, err := loadLineLog(in)
	if err != nil {
		return err
	}
	data, err := l.Export()
	if err != nil {
		return fmt.Errorf("linelog: reexport: %w", err)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("linelog: reexport: %w", err)
	}
	return nil
}

func loadLineLog(path string) (*linelog.LineLog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("linelog: read %s: %w", path, err)
	}
	l, err := linelog.Import(data)
	if err != nil {
		return nil, fmt.Errorf("linelog: import %s: %w", path, err)
	}
	return l, nil
}
