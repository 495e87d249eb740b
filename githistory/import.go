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

package githistory

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/linelogdev/linelog/githash"
	"github.com/linelogdev/linelog/object"
)

// Import returns the history of path within the git repository at
// repoDir, oldest revision first, ready to be passed to Replay.
//
// A commit that does not have path in its tree (the path was deleted,
// or git reports the blob as missing from the object database) is
// skipped rather than failing the whole import; skips are logged at
// warn. Import itself never fails because of a single bad commit —
// only because the repository or path could not be enumerated at all.
func Import(ctx context.Context, repoDir, path string) ([]Revision, error) {
	hashes, err := commitHashes(ctx, repoDir, path)
	if err != nil {
		return nil, fmt.Errorf("githistory: import %s: %w", path, err)
	}

	b, err := startBatch(ctx, repoDir)
	if err != nil {
		return nil, fmt.Errorf("githistory: import %s: %w", path, err)
	}
	defer b.close()

	revs := make([]Revision, 0, len(hashes))
	for _, oid := range hashes {
		rev, ok := importOne(ctx, repoDir, b, oid, path)
		if !ok {
			continue
		}
		revs = append(revs, rev)
	}
	return revs, nil
}

func importOne(ctx context.Context, repoDir string, b *batch, oid, path string) (Revision, bool) {
	blobOID, ok := blobAt(ctx, repoDir, oid, path)
	if !ok {
		logrus.WithField("commit", oid).WithField("path", path).Warn("githistory: path not present in commit, skipping")
		return Revision{}, false
	}

	commitType, commitData, err := b.object(oid)
	if err != nil {
		logrus.WithField("commit", oid).WithError(err).Warn("githistory: could not read commit object, skipping")
		return Revision{}, false
	}
	if object.Type(commitType) != object.TypeCommit {
		logrus.WithField("commit", oid).WithField("type", commitType).Warn("githistory: expected a commit object, skipping")
		return Revision{}, false
	}
	commit, err := object.ParseCommit(commitData)
	if err != nil {
		logrus.WithField("commit", oid).WithError(err).Warn("githistory: could not parse commit object, skipping")
		return Revision{}, false
	}

	blobType, blobData, err := b.object(blobOID)
	if err != nil {
		if errors.Is(err, errNotFound) {
			logrus.WithField("commit", oid).WithField("blob", blobOID).Warn("githistory: blob missing from object database, skipping")
		} else {
			logrus.WithField("commit", oid).WithError(err).Warn("githistory: could not read blob object, skipping")
		}
		return Revision{}, false
	}
	if object.Type(blobType) != object.TypeBlob {
		logrus.WithField("commit", oid).WithField("blob", blobOID).WithField("type", blobType).Warn("githistory: expected a blob object, skipping")
		return Revision{}, false
	}
	if err := verifyBlobSum(blobOID, blobData); err != nil {
		logrus.WithField("commit", oid).WithField("blob", blobOID).WithError(err).Warn("githistory: blob failed integrity check, skipping")
		return Revision{}, false
	}

	authorName, authorEmail := commit.Author.Name(), commit.Author.Email()
	return Revision{
		OID:       oid,
		Content:   string(blobData),
		Timestamp: millis(commit.CommitTime),
		Extra: map[string]any{
			"author":        authorName,
			"authorEmail":   authorEmail,
			"committer":     commit.Committer.Name(),
			"committerTime": millis(commit.CommitTime),
			"summary":       commit.Summary(),
		},
	}, true
}

// verifyBlobSum recomputes the Git blob object ID for data and checks
// it against oid, the id git itself reported the content under. This
// guards against a git cat-file --batch response being misaligned with
// the oid that was requested (the protocol is unframed beyond the
// header line, so a bug in batch.object could silently pair the wrong
// body with an oid).
func verifyBlobSum(oid string, data []byte) error {
	want, err := githash.ParseSHA1(oid)
	if err != nil {
		return fmt.Errorf("parse blob oid: %w", err)
	}
	got, err := object.BlobSum(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("compute blob sum: %w", err)
	}
	if got != want {
		return fmt.Errorf("blob content does not match oid: computed %s", got)
	}
	return nil
}

// commitHashes returns the commit hashes that touched path, oldest
// first, following renames the way `git log --follow` does.
func commitHashes(ctx context.Context, repoDir, path string) ([]string, error) {
	out, err := run(ctx, repoDir, "log", "--reverse", "--follow", "--format=%H", "--", path)
	if err != nil {
		return nil, err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// blobAt returns the blob oid for path as of commit, and false if path
// is absent from that commit's tree.
func blobAt(ctx context.Context, repoDir, commit, path string) (string, bool) {
	out, err := run(ctx, repoDir, "ls-tree", commit, "--", path)
	if err != nil {
		return "", false
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", false
	}
	// "<mode> <type> <oid>\t<path>"
	fields := strings.Fields(out)
	if len(fields) < 3 {
		return "", false
	}
	return fields[2], true
}
