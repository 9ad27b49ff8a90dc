package service

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/civiclens/civiclens/internal/model"
)

// Confirmer is the human-approval capability for one jurisdiction's batch.
// The decision is all-or-nothing: there is no per-record approval within a
// batch, a deliberate scope boundary that keeps review fast across 50
// jurisdictions.
type Confirmer interface {
	Confirm(batchSummary string) (bool, error)
}

// StdinConfirmer reads one approve/reject decision per batch from an
// interactive terminal. Empty or whitespace input approves; any other
// non-affirmative input rejects.
type StdinConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func NewStdinConfirmer(in io.Reader, out io.Writer) *StdinConfirmer {
	return &StdinConfirmer{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (c *StdinConfirmer) Confirm(batchSummary string) (bool, error) {
	fmt.Fprint(c.out, batchSummary)
	fmt.Fprint(c.out, "Apply these changes? [Y/n]: ")

	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	return IsAffirmative(line), nil
}

// IsAffirmative treats empty and whitespace-only input as yes
func IsAffirmative(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "y", "yes":
		return true
	default:
		return false
	}
}

// RenderBatch produces the deterministic human-readable listing for one
// jurisdiction's diffs: new officials first, then updates, each group sorted
// by name.
func RenderBatch(jurisdiction string, diffs []model.Diff) string {
	var added, updated []model.Diff
	for _, d := range diffs {
		if d.IsNew {
			added = append(added, d)
		} else {
			updated = append(updated, d)
		}
	}

	byName := func(diffs []model.Diff) func(i, j int) bool {
		return func(i, j int) bool {
			if diffs[i].Record.Name != diffs[j].Record.Name {
				return diffs[i].Record.Name < diffs[j].Record.Name
			}
			return diffs[i].OfficeID < diffs[j].OfficeID
		}
	}
	sort.Slice(added, byName(added))
	sort.Slice(updated, byName(updated))

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s: %d new, %d updated\n", jurisdiction, len(added), len(updated))

	for _, d := range added {
		fmt.Fprintf(&b, "  [NEW]     %s (%s) %s\n", d.Record.Name, d.Record.Party, d.OfficeID)
	}
	for _, d := range updated {
		fmt.Fprintf(&b, "  [UPDATED] %s (%s) %s: %s\n", d.Record.Name, d.Record.Party, d.OfficeID, d.Summary)
	}

	return b.String()
}
