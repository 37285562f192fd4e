package validate

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dkgw-corpus/dkgw/internal/meta"
	"github.com/dkgw-corpus/dkgw/internal/report"
	"github.com/dkgw-corpus/dkgw/internal/section"
)

// Check names, as shown in summaries.
const (
	NamePrefix         = "Content files prefix"
	NameAuxiliaryFiles = "Auxiliary files"
	NameManifest       = "Test files manifest"
	NameMetadataFields = "Fields in metadata"
	NameEncoding       = "Content files encoding"
)

// CheckPrefix verifies that every content file name starts with the
// section's namespace.
func CheckPrefix(s *section.Section) *report.Report {
	r := report.New(NamePrefix)

	files, err := s.ContentFiles()
	if err != nil {
		r.Fail(fmt.Sprintf("Cannot list content files: %v", err))
		return r
	}

	ns := s.Namespace()
	for _, name := range files {
		if strings.HasPrefix(name, ns) {
			r.Pass(1)
			continue
		}
		r.Fail(fmt.Sprintf("The name of file %s should start with the namespace %s", s.ContentPath(name), ns))
	}
	return r
}

// CheckAuxiliaryFiles verifies that the metadata file and LICENSE exist.
func CheckAuxiliaryFiles(s *section.Section) *report.Report {
	r := report.New(NameAuxiliaryFiles)
	for _, name := range s.AuxiliaryFiles() {
		if s.HasFile(name) {
			r.Pass(1)
			continue
		}
		r.Fail(fmt.Sprintf("File %s does not exist", name))
	}
	return r
}

// CheckManifest reconciles content files with the doc_id values declared in
// the metadata file. Every shared id is a pass; every id present on only one
// side is a failure. A malformed metadata file fails the check as a whole.
func CheckManifest(s *section.Section) *report.Report {
	r := report.New(NameManifest)

	records, err := s.Metadata()
	if err != nil {
		r.Fail(metadataFailure(s, err))
		return r
	}
	declared, err := meta.DocIDs(records, s.MetaFileName())
	if err != nil {
		r.Fail(metadataFailure(s, err))
		return r
	}

	files, err := s.ContentFiles()
	if err != nil {
		r.Fail(fmt.Sprintf("Cannot list content files: %v", err))
		return r
	}

	actual := toSet(files)
	expected := toSet(declared)

	r.Pass(len(intersect(actual, expected)))
	r.Add(checkEmpty(difference(actual, expected), "File %s not declared in meta file"))
	r.Add(checkEmpty(difference(expected, actual), "File %s declared in meta file, but does not exist"))
	return r
}

// CheckMetadataFields validates each metadata record against the schema and
// checks year and date fields. All violations are collected; none stops the
// check. now supplies the current year.
func CheckMetadataFields(s *section.Section, now time.Time) *report.Report {
	r := report.New(NameMetadataFields)

	records, err := s.Metadata()
	if err != nil {
		// Records decoded before the failure are still checked.
		r.Fail(metadataFailure(s, err))
	}

	for _, rec := range records {
		sub := checkRecord(rec, now)
		if sub.OK() {
			r.Pass(1)
		}
		r.Add(sub)
	}
	return r
}

// checkRecord validates one metadata record.
func checkRecord(rec meta.Record, now time.Time) *report.Report {
	r := report.New("")

	docID, ok := rec.DocID()
	if !ok {
		docID = "<missing>"
	}
	keys := toSet(rec.Keys())

	missing := difference(toSet(meta.RequiredFields()), keys)
	r.Add(checkEmpty(missing, "Metadata missing field %s for doc_id = "+escapeVerb(docID)))

	if raw, present := rec.Fields[meta.FieldDocID]; present && !ok {
		r.Fail(fmt.Sprintf("Metadata field %s is not a string on line %d", meta.FieldDocID, rec.Line))
		docID = fmt.Sprint(raw)
	}

	illegal := make(map[string]struct{})
	for k := range keys {
		if !meta.IsKnownField(k) {
			illegal[k] = struct{}{}
		}
	}
	r.Add(checkEmpty(illegal, "Metadata contains undocumented field %s for doc_id = "+escapeVerb(docID)))

	if _, present := rec.Value(meta.FieldYearPublished); present {
		year, raw, err := rec.Int(meta.FieldYearPublished)
		switch {
		case err != nil:
			r.Fail(fmt.Sprintf("%s: %s is not an integer for doc_id = %s", meta.FieldYearPublished, raw, docID))
		case year > now.Year():
			r.Fail(fmt.Sprintf("%s: %d is in the future!", meta.FieldYearPublished, year))
		}
	}

	for _, field := range meta.DateFields() {
		v, present := rec.Value(field)
		if !present {
			continue
		}
		str, isString := v.(string)
		if !isString {
			r.Fail(fmt.Sprintf("Meta date %s is not a string for doc_id = %s", field, docID))
			continue
		}
		date := CheckDate(str, now)
		r.Failed += date.Failed
		r.Messages = append(r.Messages, date.Messages...)
	}

	return r
}

// CheckEncoding verifies that every content file is valid UTF-8.
func CheckEncoding(s *section.Section) *report.Report {
	r := report.New(NameEncoding)

	files, err := s.ContentFiles()
	if err != nil {
		r.Fail(fmt.Sprintf("Cannot list content files: %v", err))
		return r
	}

	for _, name := range files {
		path := s.ContentPath(name)
		data, err := os.ReadFile(path)
		if err != nil {
			r.Fail(fmt.Sprintf("Cannot read file %s: %v", path, err))
			continue
		}
		if !utf8.Valid(data) {
			r.Fail(fmt.Sprintf("File %s is not UTF-8 encoded", path))
			continue
		}
		r.Pass(1)
	}
	return r
}

// metadataFailure turns a metadata load error into a failure message.
func metadataFailure(s *section.Section, err error) string {
	var syntaxErr *meta.SyntaxError
	var missingID *meta.MissingDocIDError
	switch {
	case errors.As(err, &syntaxErr):
		return fmt.Sprintf("Malformed metadata in %s line %d: %v", s.MetaFileName(), syntaxErr.Line, syntaxErr.Err)
	case errors.As(err, &missingID):
		return fmt.Sprintf("Metadata record on line %d of %s is missing field %s", missingID.Line, s.MetaFileName(), meta.FieldDocID)
	default:
		return fmt.Sprintf("Cannot read meta file %s: %v", s.MetaFileName(), err)
	}
}

// checkEmpty fails once per member of set, formatting each with format.
// Members are reported in sorted order.
func checkEmpty(set map[string]struct{}, format string) *report.Report {
	r := report.New("")
	for _, item := range sortedKeys(set) {
		r.Fail(fmt.Sprintf(format, item))
	}
	return r
}

// escapeVerb protects literal text that is spliced into a format string.
func escapeVerb(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}

func difference(a, b map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for k := range a {
		if _, ok := b[k]; !ok {
			out[k] = struct{}{}
		}
	}
	return out
}

func intersect(a, b map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for k := range a {
		if _, ok := b[k]; ok {
			out[k] = struct{}{}
		}
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
