package validate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dkgw-corpus/dkgw/internal/section"
)

// fixedNow is the clock used by year checks in tests.
var fixedNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

// newSection creates a section directory named ns containing files and
// returns its path.
func newSection(t *testing.T, ns string, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), ns)
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatalf("failed to create section dir: %v", err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

// openSection opens the section at path or fails the test.
func openSection(t *testing.T, path string) *section.Section {
	t.Helper()
	s, err := section.Open(path)
	if err != nil {
		t.Fatalf("section.Open(%s) failed: %v", path, err)
	}
	return s
}

func TestCheckPrefix(t *testing.T) {
	dir := newSection(t, "ns", map[string]string{
		"ns_1":     "",
		"other_1":  "",
		"ns":       "",
		"ns.jsonl": "",
		"LICENSE":  "",
	})

	r := CheckPrefix(openSection(t, dir))

	if r.Name != NamePrefix {
		t.Errorf("Name = %q, want %q", r.Name, NamePrefix)
	}
	if r.Passed != 2 || r.Failed != 1 {
		t.Errorf("passed/failed = %d/%d, want 2/1", r.Passed, r.Failed)
	}
	want := []string{"The name of file " + filepath.Join(dir, "other_1") + " should start with the namespace ns"}
	if diff := cmp.Diff(want, r.Messages); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckAuxiliaryFiles(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  []string
	}{
		{
			name:  "both present",
			files: map[string]string{"ns.jsonl": "", "LICENSE": ""},
			want:  []string{},
		},
		{
			name:  "license missing",
			files: map[string]string{"ns.jsonl": ""},
			want:  []string{"File LICENSE does not exist"},
		},
		{
			name:  "both missing",
			files: map[string]string{"ns_1": ""},
			want:  []string{"File ns.jsonl does not exist", "File LICENSE does not exist"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := CheckAuxiliaryFiles(openSection(t, newSection(t, "ns", tt.files)))
			if diff := cmp.Diff(tt.want, r.Messages); diff != "" {
				t.Errorf("messages mismatch (-want +got):\n%s", diff)
			}
			if r.Passed+r.Failed != 2 {
				t.Errorf("total = %d, want 2", r.Passed+r.Failed)
			}
		})
	}
}

func TestCheckManifest_SymmetricDifference(t *testing.T) {
	dir := newSection(t, "ns", map[string]string{
		"a":        "",
		"b":        "",
		"LICENSE":  "",
		"ns.jsonl": "{\"doc_id\":\"b\"}\n{\"doc_id\":\"c\"}\n",
	})

	r := CheckManifest(openSection(t, dir))

	if r.Passed != 1 || r.Failed != 2 {
		t.Errorf("passed/failed = %d/%d, want 1/2", r.Passed, r.Failed)
	}
	want := []string{
		"File a not declared in meta file",
		"File c declared in meta file, but does not exist",
	}
	if diff := cmp.Diff(want, r.Messages); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckManifest_MetadataProblems(t *testing.T) {
	tests := []struct {
		name       string
		files      map[string]string
		wantPrefix string
	}{
		{
			name:       "malformed json",
			files:      map[string]string{"ns_1": "", "ns.jsonl": "{\"doc_id\":\"ns_1\"}\n{oops\n"},
			wantPrefix: "Malformed metadata in ns.jsonl line 2:",
		},
		{
			name:       "missing doc_id",
			files:      map[string]string{"ns_1": "", "ns.jsonl": "{\"uri\":\"x\"}\n"},
			wantPrefix: "Metadata record on line 1 of ns.jsonl is missing field doc_id",
		},
		{
			name:       "missing meta file",
			files:      map[string]string{"ns_1": ""},
			wantPrefix: "Cannot read meta file ns.jsonl:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := CheckManifest(openSection(t, newSection(t, "ns", tt.files)))
			if r.Failed != 1 || r.Passed != 0 {
				t.Fatalf("passed/failed = %d/%d, want 0/1 (messages %v)", r.Passed, r.Failed, r.Messages)
			}
			if !strings.HasPrefix(r.Messages[0], tt.wantPrefix) {
				t.Errorf("message = %q, want prefix %q", r.Messages[0], tt.wantPrefix)
			}
		})
	}
}

func TestCheckMetadataFields_IllegalField(t *testing.T) {
	dir := newSection(t, "ns", map[string]string{
		"ns.jsonl": `{"doc_id":"x","color":"red"}` + "\n",
	})

	r := CheckMetadataFields(openSection(t, dir), fixedNow)

	want := []string{"Metadata contains undocumented field color for doc_id = x"}
	if diff := cmp.Diff(want, r.Messages); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
	for _, m := range r.Messages {
		if strings.HasPrefix(m, "Metadata missing field") {
			t.Errorf("unexpected required-field failure: %s", m)
		}
	}
}

func TestCheckMetadataFields_Records(t *testing.T) {
	lines := []string{
		`{"doc_id":"ns_1","date_published":"Tue, 15 Mar 2022 10:00:00 CET +0100","uri":"https://example.org"}`,
		`{"uri":"https://example.org"}`,
		`{"doc_id":"ns_3","year_published":2030}`,
		`{"doc_id":"ns_4","year_published":"soon"}`,
		`{"doc_id":"ns_5","date_built":"2022-03-15","date_collected":null}`,
		`{"doc_id":"ns_6","date_collected":20220315}`,
		`{"doc_id":"ns_7","year_published":"1999","location_name":"Aarhus","location_latlong":"56.15,10.21"}`,
		`{"doc_id":5,"shape":"round"}`,
	}
	dir := newSection(t, "ns", map[string]string{
		"ns.jsonl": strings.Join(lines, "\n") + "\n",
	})

	r := CheckMetadataFields(openSection(t, dir), fixedNow)

	want := []string{
		"Metadata missing field doc_id for doc_id = <missing>",
		"year_published: 2030 is in the future!",
		"year_published: soon is not an integer for doc_id = ns_4",
		"Missing timezone as string from meta date: 2022-03-15",
		"Missing timezone as offset from meta date: 2022-03-15",
		"Missing year in meta date: 2022-03-15",
		"Meta date date_collected is not a string for doc_id = ns_6",
		"Metadata field doc_id is not a string on line 8",
		"Metadata contains undocumented field shape for doc_id = 5",
	}
	if diff := cmp.Diff(want, r.Messages); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
	if r.Passed != 2 {
		t.Errorf("Passed = %d, want 2 clean records", r.Passed)
	}
	if r.Failed != len(want) {
		t.Errorf("Failed = %d, want %d", r.Failed, len(want))
	}
}

func TestCheckMetadataFields_MalformedLineKeepsEarlierRecords(t *testing.T) {
	dir := newSection(t, "ns", map[string]string{
		"ns.jsonl": `{"doc_id":"ns_1","color":"red"}` + "\nnot json\n" + `{"doc_id":"ns_3","shape":"round"}` + "\n",
	})

	r := CheckMetadataFields(openSection(t, dir), fixedNow)

	if len(r.Messages) != 2 {
		t.Fatalf("got %d messages, want 2: %v", len(r.Messages), r.Messages)
	}
	if !strings.HasPrefix(r.Messages[0], "Malformed metadata in ns.jsonl line 2:") {
		t.Errorf("first message = %q, want malformed-line failure", r.Messages[0])
	}
	if r.Messages[1] != "Metadata contains undocumented field color for doc_id = ns_1" {
		t.Errorf("second message = %q, want illegal-field failure for ns_1", r.Messages[1])
	}
}

func TestCheckMetadataFields_OverlongLineKeepsEarlierRecords(t *testing.T) {
	long := `{"doc_id":"ns_2","uri":"` + strings.Repeat("x", 16*1024*1024) + `"}`
	dir := newSection(t, "ns", map[string]string{
		"ns.jsonl": `{"doc_id":"ns_1","color":"red"}` + "\n" + long + "\n",
	})

	r := CheckMetadataFields(openSection(t, dir), fixedNow)

	if len(r.Messages) != 2 {
		t.Fatalf("got %d messages, want 2: %v", len(r.Messages), r.Messages)
	}
	if !strings.HasPrefix(r.Messages[0], "Malformed metadata in ns.jsonl line 2:") {
		t.Errorf("first message = %q, want unreadable-line failure", r.Messages[0])
	}
	if r.Messages[1] != "Metadata contains undocumented field color for doc_id = ns_1" {
		t.Errorf("second message = %q, want illegal-field failure for ns_1", r.Messages[1])
	}
}

func TestCheckMetadataFields_MissingMetaFile(t *testing.T) {
	r := CheckMetadataFields(openSection(t, newSection(t, "ns", nil)), fixedNow)
	if r.Failed != 1 || !strings.HasPrefix(r.Messages[0], "Cannot read meta file ns.jsonl:") {
		t.Errorf("got %d failures %v, want one unreadable meta file failure", r.Failed, r.Messages)
	}
}

func TestCheckEncoding(t *testing.T) {
	dir := newSection(t, "ns", map[string]string{
		"ns_1": "Der var engang en konge",
		"ns_2": "Ærø og Ålborg",
		"ns_3": string([]byte{0x66, 0x6f, 0xe6, 0x20, 0x6f}),
	})

	r := CheckEncoding(openSection(t, dir))

	if r.Passed != 2 || r.Failed != 1 {
		t.Errorf("passed/failed = %d/%d, want 2/1", r.Passed, r.Failed)
	}
	want := []string{"File " + filepath.Join(dir, "ns_3") + " is not UTF-8 encoded"}
	if diff := cmp.Diff(want, r.Messages); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
}
