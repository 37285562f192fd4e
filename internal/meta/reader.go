package meta

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// maxLineSize bounds a single metadata line.
const maxLineSize = 16 * 1024 * 1024

// SyntaxError reports a metadata line that is not a JSON object or could not
// be read.
type SyntaxError struct {
	File string
	Line int
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("malformed metadata in %s line %d: %v", e.File, e.Line, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// MissingDocIDError reports a record without a string doc_id.
type MissingDocIDError struct {
	File string
	Line int
}

func (e *MissingDocIDError) Error() string {
	return fmt.Sprintf("metadata record on line %d of %s is missing field %s", e.Line, e.File, FieldDocID)
}

// ReadFile opens and decodes a metadata file. See Read.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open meta file: %w", err)
	}
	defer f.Close()
	return Read(f, path)
}

// Read decodes JSON Lines from r. Blank lines are skipped.
// On a malformed or unreadable line it returns the records decoded so far
// together with a *SyntaxError; name is used in error values only.
func Read(r io.Reader, name string) ([]Record, error) {
	var records []Record

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		fields, err := decodeObject(raw)
		if err != nil {
			return records, &SyntaxError{File: name, Line: line, Err: err}
		}
		records = append(records, Record{Line: line, Fields: fields})
	}
	if err := scanner.Err(); err != nil {
		// The line that could not be read is reported like a malformed one.
		return records, &SyntaxError{File: name, Line: line + 1, Err: err}
	}

	return records, nil
}

// DocIDs returns the doc_id of every record in order, stopping with a
// *MissingDocIDError at the first record that lacks one.
func DocIDs(records []Record, name string) ([]string, error) {
	ids := make([]string, 0, len(records))
	for _, rec := range records {
		id, ok := rec.DocID()
		if !ok {
			return ids, &MissingDocIDError{File: name, Line: rec.Line}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func decodeObject(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, fmt.Errorf("line is not a JSON object")
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after JSON object")
	}
	return fields, nil
}
