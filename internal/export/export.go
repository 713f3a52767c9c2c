// Package export renders a sheet's user answers to the flat text interchange
// format: the section name on the first line, then one "number,answer" line
// per question in ascending order. Answers containing commas are not
// representable in this format.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Document is the parsed form of an export file.
type Document struct {
	SectionName string
	Answers     []Answer
}

// Answer is one exported (question number, user answer) pair.
type Answer struct {
	Number int
	Text   string
}

// Write renders the document. Every line including the last is
// newline-terminated.
func Write(w io.Writer, doc Document) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n", doc.SectionName); err != nil {
		return err
	}
	for _, answer := range doc.Answers {
		if _, err := fmt.Fprintf(bw, "%d,%s\n", answer.Number, answer.Text); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Render returns the document as a string.
func Render(doc Document) string {
	var sb strings.Builder
	_ = Write(&sb, doc)
	return sb.String()
}

// Read parses an export document, reconstructing the ordered pairs written by
// Write. Only the first comma on a line separates number from answer, so
// answer text survives unmodified apart from the documented comma limitation.
func Read(r io.Reader) (Document, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return Document{}, err
		}
		return Document{}, fmt.Errorf("export document is empty")
	}
	doc := Document{SectionName: scanner.Text()}
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		numText, answer, found := strings.Cut(line, ",")
		if !found {
			return Document{}, fmt.Errorf("malformed export line %q", line)
		}
		num, err := strconv.Atoi(numText)
		if err != nil {
			return Document{}, fmt.Errorf("malformed question number in line %q: %w", line, err)
		}
		doc.Answers = append(doc.Answers, Answer{Number: num, Text: answer})
	}
	return doc, scanner.Err()
}
