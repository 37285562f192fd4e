// Package section models one DKGW corpus section: a directory named after its
// namespace holding content files, a metadata file and a license file.
package section

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/dkgw-corpus/dkgw/internal/meta"
)

// LicenseFile is the name of the license file required in every section.
const LicenseFile = "LICENSE"

// ErrNotFound is returned when the section directory does not exist.
var ErrNotFound = errors.New("section directory not found")

// Section is an opened section directory.
type Section struct {
	path      string
	namespace string

	metaLoaded  bool
	metaRecords []meta.Record
	metaErr     error
}

// Open resolves the section at path. The namespace is the final path component.
func Open(path string) (*Section, error) {
	clean := filepath.Clean(path)
	info, err := os.Stat(clean)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat section %s: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrNotFound, path)
	}

	namespace := filepath.Base(clean)
	if namespace == "." || namespace == string(filepath.Separator) {
		abs, err := filepath.Abs(clean)
		if err != nil {
			return nil, fmt.Errorf("resolve section path %s: %w", path, err)
		}
		namespace = filepath.Base(abs)
	}

	return &Section{path: path, namespace: namespace}, nil
}

// Path returns the section path as given to Open.
func (s *Section) Path() string { return s.path }

// Namespace returns the section's namespace.
func (s *Section) Namespace() string { return s.namespace }

// MetaFileName returns the base name of the metadata file.
func (s *Section) MetaFileName() string { return meta.FileName(s.namespace) }

// MetaPath returns the path to the metadata file.
func (s *Section) MetaPath() string { return filepath.Join(s.path, s.MetaFileName()) }

// AuxiliaryFiles returns the sidecar files every section must contain, in
// check order.
func (s *Section) AuxiliaryFiles() []string {
	return []string{s.MetaFileName(), LicenseFile}
}

// ContentFiles lists the names of content files, sorted. A content file is a
// regular file directly in the section with no extension. LICENSE is an
// auxiliary file and is never a content file.
func (s *Section) ContentFiles() ([]string, error) {
	entries, err := os.ReadDir(s.path)
	if err != nil {
		return nil, fmt.Errorf("list section %s: %w", s.path, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if filepath.Ext(name) != "" || name == LicenseFile {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// ContentPath joins a content file name onto the section path.
func (s *Section) ContentPath(name string) string {
	return filepath.Join(s.path, name)
}

// HasFile reports whether name exists directly inside the section.
func (s *Section) HasFile(name string) bool {
	_, err := os.Stat(filepath.Join(s.path, name))
	return err == nil
}

// Metadata returns the decoded metadata records. The file is read once per
// Section; later calls return the same records and error. On a malformed line
// the records before it are returned alongside the *meta.SyntaxError.
func (s *Section) Metadata() ([]meta.Record, error) {
	if !s.metaLoaded {
		s.metaRecords, s.metaErr = meta.ReadFile(s.MetaPath())
		s.metaLoaded = true
	}
	return s.metaRecords, s.metaErr
}
