// Package export writes discovery results to timestamped flat files. This is
// the only persistence the assistant has; there is no structured storage.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const banner = "======================================================================"

// recommendedSources are the human-curated outlets listed in every export so
// readers can double-check what the search results claimed.
var recommendedSources = []string{
	"TimeOut Melbourne",
	"Eventbrite Melbourne",
	"What's On Melbourne",
	"The Age (local newspaper)",
	"Herald Sun (local newspaper)",
}

// Writer saves aggregated event/news text to a directory, one file per call.
type Writer struct {
	dir string
	now func() time.Time
}

// NewWriter creates a Writer targeting dir. A nil clock falls back to
// time.Now; tests inject a fixed clock to get deterministic filenames.
func NewWriter(dir string, now func() time.Time) *Writer {
	if now == nil {
		now = time.Now
	}
	return &Writer{dir: dir, now: now}
}

// Save wraps text in the fixed header/footer template and writes it as one
// unit. The filename is derived from the current timestamp at second
// granularity. Returns the path of the written file.
func (w *Writer) Save(text string) (string, error) {
	ts := w.now()
	filename := filepath.Join(w.dir, fmt.Sprintf("melbourne_events_%s.txt", ts.Format("2006-01-02_15-04-05")))

	content := fmt.Sprintf(`%s
                MELBOURNE EVENT AND NEWS DISCOVERY RESULTS
%s
Generated: %s
Location: Melbourne, Victoria, Australia

%s

%s
Note: Please verify event details and news on official sources before relying on this information.

Recommended Melbourne event sources:
%s
%s
`, banner, banner, ts.Format("2006-01-02 15:04:05"), text, banner, sourceList(), banner)

	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		return "", err
	}
	return filename, nil
}

func sourceList() string {
	out := ""
	for i, s := range recommendedSources {
		if i > 0 {
			out += "\n"
		}
		out += "- " + s
	}
	return out
}
