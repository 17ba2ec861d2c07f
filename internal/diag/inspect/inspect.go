package inspect

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/catalogicsoftware/vstor-zfs/internal/diag"
)

// FindString reports whether any retained entry's message contains needle
// as a substring. An empty or inactive log yields false.
func FindString(f *diag.Facility, needle string) bool {
	for _, e := range f.SnapshotMsgLog() {
		if strings.Contains(e.Msg, needle) {
			return true
		}
	}
	return false
}

// Print writes every retained entry to w, oldest first, each line prefixed
// by tag.
func Print(f *diag.Facility, tag string, w io.Writer) error {
	for _, e := range f.SnapshotMsgLog() {
		_, err := fmt.Fprintf(w, "%s: %s %s:%d %s: %s\n",
			tag, e.Time.UTC().Format(time.RFC3339Nano), e.File, e.Line, e.Func, e.Msg)
		if err != nil {
			return err
		}
	}
	return nil
}
