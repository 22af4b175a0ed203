package interp_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/lumenlang/lumen/internal/interp"
	"github.com/lumenlang/lumen/internal/parser"
	"github.com/lumenlang/lumen/internal/semantic"
)

// TestFixtures runs every .lm program under testdata/fixtures end to end —
// parse, resolve, interpret — and snapshots its stdout. Add a new fixture
// file and a matching snapshot is created on the next run; `UPDATE_SNAPS=true
// go test ./...` regenerates it after an intentional behavior change.
func TestFixtures(t *testing.T) {
	files, err := filepath.Glob("../../testdata/fixtures/*.lm")
	if err != nil {
		t.Fatalf("glob fixtures: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no fixtures found under testdata/fixtures")
	}

	for _, path := range files {
		path := path
		name := strings.TrimSuffix(filepath.Base(path), ".lm")

		t.Run(name, func(t *testing.T) {
			source, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read %s: %v", path, err)
			}

			p := parser.New(string(source))
			program := p.ParseProgram()
			if errs := p.Errors(); len(errs) > 0 {
				t.Fatalf("parse errors in %s: %v", name, errs)
			}

			locals, _, errs := semantic.Resolve(program.Statements)
			if len(errs) > 0 {
				msgs := make([]string, len(errs))
				for i, e := range errs {
					msgs[i] = e.Message()
				}
				t.Fatalf("type errors in %s:\n%s", name, strings.Join(msgs, "\n"))
			}

			var out bytes.Buffer
			interpreter := interp.New(&out)
			if err := interpreter.Run(program, locals); err != nil {
				t.Fatalf("runtime error in %s: %v", name, err)
			}

			snaps.MatchSnapshot(t, fmt.Sprintf("%s_stdout", name), out.String())
		})
	}
}
