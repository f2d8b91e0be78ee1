// CLAUDE:SUMMARY PDF-to-text decoding: ledongthuc row-aware extraction with a pdfcpu content-stream fallback.
package sheet

import (
	"bytes"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pageTexts decodes PDF bytes into one text blob per page. Pages that
// fail to decode yield empty strings, never errors — a half-readable
// sheet is still worth running the heuristics on.
//
// The row-aware reader is tried first because it preserves line
// structure, which the name fallback heuristic depends on. Sheets it
// cannot read at all go through a raw content-stream pass instead.
func pageTexts(data []byte) []string {
	if texts := readerPages(data); hasText(texts) {
		return texts
	}
	return streamPages(data)
}

func hasText(texts []string) bool {
	for _, t := range texts {
		if strings.TrimSpace(t) != "" {
			return true
		}
	}
	return false
}

// readerPages extracts per-page text rows via ledongthuc/pdf.
// The library panics on some malformed cross-reference tables; that is
// folded into "no text" like any other decode failure.
func readerPages(data []byte) (texts []string) {
	defer func() {
		if r := recover(); r != nil {
			texts = nil
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil
	}

	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			texts = append(texts, "")
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			texts = append(texts, "")
			continue
		}
		var sb strings.Builder
		for _, row := range rows {
			var line strings.Builder
			for _, word := range row.Content {
				line.WriteString(word.S)
			}
			if l := strings.TrimSpace(line.String()); l != "" {
				sb.WriteString(l)
				sb.WriteByte('\n')
			}
		}
		texts = append(texts, cleanText(sb.String()))
	}
	return texts
}

// streamPages parses raw PDF content streams for text-showing
// operators. Cruder than the row-aware reader but survives sheets with
// broken metadata, as long as their streams are uncompressed or
// pdfcpu can optimise them.
func streamPages(data []byte) []string {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil
	}

	var texts []string
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
		if err != nil {
			texts = append(texts, "")
			continue
		}
		raw, err := io.ReadAll(r)
		if err != nil || len(raw) == 0 {
			texts = append(texts, "")
			continue
		}
		texts = append(texts, textFromStream(raw))
	}
	return texts
}

// pdfStringRe matches PDF string literals in parentheses: (text here)
var pdfStringRe = regexp.MustCompile(`\(([^)]*)\)`)

// textFromStream walks content-stream lines for Tj/TJ/' text operators.
// T* and ' start new output lines; Td/TD positioning becomes a space.
func textFromStream(data []byte) string {
	var sb strings.Builder

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		switch {
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				sb.WriteString(decodeStringLiteral(m[1]))
			}
		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				sb.WriteByte('\n')
				sb.WriteString(decodeStringLiteral(m[1]))
			}
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")):
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
		case bytes.Equal(line, []byte("T*")):
			sb.WriteByte('\n')
		}
	}

	return cleanText(sb.String())
}

// decodeStringLiteral handles basic PDF escape sequences, including
// octal escapes like \040.
func decodeStringLiteral(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			if raw[i] >= '0' && raw[i] <= '7' {
				val := int(raw[i] - '0')
				for j := 0; j < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; j++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				sb.WriteByte(byte(val))
			} else {
				sb.WriteByte(raw[i])
			}
		}
	}
	return sb.String()
}

// cleanText collapses runs of horizontal whitespace and drops
// non-printable runes, but keeps newlines — the name heuristic needs
// the line structure intact.
func cleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var sb strings.Builder
	prevSpace := false
	for _, r := range text {
		switch {
		case r == '\n':
			sb.WriteByte('\n')
			prevSpace = false
		case unicode.IsSpace(r):
			if !prevSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				prevSpace = true
			}
		case unicode.IsPrint(r):
			sb.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimSpace(sb.String())
}
