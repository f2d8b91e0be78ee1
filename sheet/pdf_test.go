package sheet

import (
	"strconv"
	"strings"
	"testing"
)

func TestPageTexts_RealSheet(t *testing.T) {
	// WHAT: A well-formed single-page PDF decodes to text containing the
	// name label and score token.
	// WHY: End-to-end decode path; both decoders must survive this input.
	raw := buildSheetPDF([]string{
		"Exam Result Sheet",
		"Name of the Student : GANESH HEGDE",
		"SGPA : 8.75",
	})

	res := Extract(raw)
	if res.Status != Complete {
		pages := pageTexts(raw)
		t.Fatalf("status: got %v, want Complete (decoded pages: %q)", res.Status, pages)
	}
	// Decoders may merge rows on minimal PDFs; the name must at least
	// start at the right place.
	if !strings.Contains(res.Name, "GANESH HEGDE") {
		t.Errorf("name: got %q", res.Name)
	}
	if res.SGPA != 8.75 {
		t.Errorf("sgpa: got %v", res.SGPA)
	}
}

func TestTextFromStream_Operators(t *testing.T) {
	// WHAT: Tj shows text, T* breaks lines, octal escapes decode.
	// WHY: The stream fallback must preserve line structure for the
	// next-line name heuristic.
	stream := []byte("BT\n(Name of the Student) Tj\nT*\n(HEMA\\040K) Tj\nT*\n(SGPA : 7.5) Tj\nET")
	got := textFromStream(stream)
	lines := strings.Split(got, "\n")
	if len(lines) < 3 {
		t.Fatalf("expected 3 lines, got %q", got)
	}
	if !strings.Contains(lines[1], "HEMA K") {
		t.Errorf("octal escape: got %q", lines[1])
	}
}

func TestCleanText_KeepsNewlines(t *testing.T) {
	// WHAT: Horizontal whitespace collapses, newlines survive.
	got := cleanText("a\t\t b \n\n  c\r\nd")
	if !strings.Contains(got, "\n") {
		t.Fatalf("newlines lost: %q", got)
	}
	if strings.Contains(got, "\t") || strings.Contains(got, "  ") {
		t.Errorf("whitespace not collapsed: %q", got)
	}
}

// buildSheetPDF creates a valid one-page PDF with proper xref offsets,
// one Tj-shown string per input line separated by T*.
func buildSheetPDF(lines []string) []byte {
	var stream strings.Builder
	stream.WriteString("BT\n/F1 12 Tf\n14 TL\n72 720 Td\n")
	for i, line := range lines {
		escaped := strings.ReplaceAll(line, `\`, `\\`)
		escaped = strings.ReplaceAll(escaped, "(", `\(`)
		escaped = strings.ReplaceAll(escaped, ")", `\)`)
		if i > 0 {
			stream.WriteString("T*\n")
		}
		stream.WriteString("(" + escaped + ") Tj\n")
	}
	stream.WriteString("ET")
	content := stream.String()

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	offsets := make([]int, 6)

	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	offsets[2] = b.Len()
	b.WriteString("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")

	offsets[3] = b.Len()
	b.WriteString("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>\nendobj\n")

	offsets[4] = b.Len()
	b.WriteString("4 0 obj\n<< /Length " + strconv.Itoa(len(content)) + " >>\nstream\n")
	b.WriteString(content)
	b.WriteString("\nendstream\nendobj\n")

	offsets[5] = b.Len()
	b.WriteString("5 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")

	xrefOffset := b.Len()
	b.WriteString("xref\n0 6\n")
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= 5; i++ {
		off := strconv.Itoa(offsets[i])
		b.WriteString(strings.Repeat("0", 10-len(off)) + off + " 00000 n \n")
	}
	b.WriteString("trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n")
	b.WriteString(strconv.Itoa(xrefOffset))
	b.WriteString("\n%%EOF\n")

	return []byte(b.String())
}
