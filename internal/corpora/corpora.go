// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package corpora runs file-system-driven test corpora: directories of
// source files paired with golden output files.
//
// A parser test corpus is a tree of .fern files; each one may have sibling
// golden files such as foo.fern.ast and foo.fern.stderr holding the expected
// tree dump and diagnostics. Setting the refresh environment variable to a
// glob regenerates the goldens for the matching tests instead of checking
// them.
package corpora

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
)

// Corpus is a file-system-backed test table.
type Corpus struct {
	// The root of the corpus directory, relative to the source file that
	// calls [Corpus.Run].
	Root string

	// The environment variable consulted for refresh mode. Its value is a
	// doublestar glob of test names whose goldens should be rewritten.
	Refresh string

	// The extension (without the dot) of the files that define test cases,
	// e.g. "fern".
	Extension string

	// The outputs each test produces. A missing golden file is treated as an
	// expected empty output.
	Outputs []Output

	// Test runs one test case and returns its outputs, parallel to Outputs.
	Test func(t *testing.T, path, text string) []string
}

// Output describes one golden file produced by each test case.
type Output struct {
	// The golden file's extension, appended to the test case's file name: for
	// the case foo.fern and the extension "ast", the golden is foo.fern.ast.
	Extension string

	// The comparison function. Nil means compare byte-for-byte, reporting
	// mismatches as a unified diff.
	Compare Compare
}

// Compare compares a test output against its golden. It returns "" on a
// match and an error message otherwise.
type Compare func(got, want string) string

// Run discovers and runs every test case under the corpus root as a subtest
// of t.
func (c Corpus) Run(t *testing.T) {
	testDir := callerDir(0)
	root := filepath.Join(testDir, c.Root)

	var cases []string
	err := filepath.Walk(root, func(p string, fi fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fi.IsDir() && strings.TrimPrefix(path.Ext(p), ".") == c.Extension {
			cases = append(cases, p)
		}
		return nil
	})
	if err != nil {
		t.Fatal("corpora: error while walking corpus root:", err)
	}
	if len(cases) == 0 {
		t.Fatalf("corpora: no .%s files under %q", c.Extension, root)
	}

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if !doublestar.ValidatePattern(refresh) {
			t.Fatalf("corpora: invalid glob in $%s: %q", c.Refresh, refresh)
		}
	}
	if refresh != "" {
		// A refreshed run must not pass, so that stale goldens cannot sneak
		// through CI.
		t.Logf("corpora: refreshing goldens because %s=%s", c.Refresh, refresh)
		t.Fail()
	}

	for _, casePath := range cases {
		name, _ := filepath.Rel(testDir, casePath)
		t.Run(name, func(t *testing.T) {
			text, err := os.ReadFile(casePath)
			if err != nil {
				t.Fatalf("corpora: error while loading input %q: %v", casePath, err)
			}

			results := c.Test(t, name, string(text))
			if len(results) != len(c.Outputs) {
				t.Fatalf("corpora: test returned %d outputs, want %d", len(results), len(c.Outputs))
			}

			refreshThis, _ := doublestar.Match(refresh, name)
			for i, output := range c.Outputs {
				golden := fmt.Sprint(casePath, ".", output.Extension)
				if refreshThis {
					c.writeGolden(t, golden, results[i])
					continue
				}

				want, err := os.ReadFile(golden)
				if err != nil && !errors.Is(err, os.ErrNotExist) {
					t.Errorf("corpora: error while loading golden %q: %v", golden, err)
					continue
				}

				compare := output.Compare
				if compare == nil {
					compare = diffCompare
				}
				if msg := compare(results[i], string(want)); msg != "" {
					t.Errorf("output mismatch for %q:\n%s", golden, msg)
				}
			}
		})
	}
}

func (c Corpus) writeGolden(t *testing.T, path, text string) {
	if text == "" {
		err := os.Remove(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			t.Errorf("corpora: error while deleting golden %q: %v", path, err)
		}
		return
	}
	if err := os.WriteFile(path, []byte(text), 0o666); err != nil {
		t.Errorf("corpora: error while writing golden %q: %v", path, err)
	}
}

func diffCompare(got, want string) string {
	if got == want {
		return ""
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}

	// Colorize insertions and deletions so diffs are easier to scan.
	lines := strings.Split(diff, "\n")
	for i, s := range lines {
		switch {
		case strings.HasPrefix(s, "+"):
			lines[i] = "\033[1;92m" + s + "\033[0m"
		case strings.HasPrefix(s, "-"):
			lines[i] = "\033[1;91m" + s + "\033[0m"
		}
	}
	return strings.Join(lines, "\n")
}

func callerDir(skip int) string {
	_, file, _, ok := runtime.Caller(skip + 2)
	if !ok {
		panic("corpora: could not determine test file's directory")
	}
	return filepath.Dir(file)
}
