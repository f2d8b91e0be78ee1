// CLAUDE:SUMMARY Field heuristics: label+positional name recovery, SGPA-over-CGPA regex score recovery.
// Package sheet extracts the student name and grade score from a
// result-sheet PDF.
//
// The sheets are machine-generated but their layout drifts: the name is
// sometimes inline after "Name of the Student:", sometimes on the line
// below the label; the score is labeled SGPA on semester sheets and
// CGPA on cumulative ones. The heuristics here tolerate all of that
// without a layout model — this is not a general PDF parser, it only
// recovers those two labeled values.
package sheet

import (
	"regexp"
	"strconv"
	"strings"
)

// nameLabel marks the line carrying (or preceding) the student name.
const nameLabel = "Name of the Student"

var (
	sgpaRe = regexp.MustCompile(`SGPA\s*[:\-]?\s*([0-9]+(?:\.[0-9]+)?)`)
	cgpaRe = regexp.MustCompile(`CGPA\s*[:\-]?\s*([0-9]+(?:\.[0-9]+)?)`)
)

// Extract decodes a result-sheet PDF and applies the field heuristics.
// Undecodable bytes and empty sheets classify as Unparseable; a missing
// name alone never aborts score extraction.
func Extract(data []byte) Result {
	pages := pageTexts(data)
	text := strings.TrimSpace(strings.Join(pages, "\n"))
	if text == "" {
		return Result{Status: Unparseable, Name: NameNotFound}
	}
	return parse(text)
}

// parse applies the heuristics to already-decoded sheet text.
func parse(text string) Result {
	name := findName(text)
	score, found := findScore(text)

	switch {
	case found && name != NameNotFound:
		return Result{Status: Complete, Name: name, SGPA: score}
	case name != NameNotFound:
		return Result{Status: NameOnly, Name: name}
	default:
		return Result{Status: Unparseable, Name: NameNotFound}
	}
}

// findName scans for the first line containing the name label. Inline
// "label: value" wins; an empty value after the colon falls back to the
// next non-empty line.
func findName(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	for i, line := range lines {
		if !strings.Contains(line, nameLabel) {
			continue
		}
		if _, after, ok := strings.Cut(line, ":"); ok {
			if after = strings.TrimSpace(after); after != "" {
				return after
			}
		}
		if i+1 < len(lines) {
			return lines[i+1]
		}
		break
	}
	return NameNotFound
}

// findScore searches the whole blob, not line-by-line: the score token
// and its value are sometimes split across positioning operators and
// land on one long line. SGPA is preferred over CGPA when both appear.
func findScore(text string) (float64, bool) {
	m := sgpaRe.FindStringSubmatch(text)
	if m == nil {
		m = cgpaRe.FindStringSubmatch(text)
	}
	if m == nil {
		return 0, false
	}
	score, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return score, true
}
