// Package meta describes the DKGW metadata schema and reads the per-section
// JSON Lines metadata file.
package meta

import "sort"

// Metadata field names.
const (
	FieldDocID           = "doc_id"
	FieldYearPublished   = "year_published"
	FieldDateBuilt       = "date_built"
	FieldLocationName    = "location_name"
	FieldLocationLatLong = "location_latlong"
	FieldDateCollected   = "date_collected"
	FieldDatePublished   = "date_published"
	FieldURI             = "uri"
)

// FileExtension is the extension of the per-section metadata file.
const FileExtension = ".jsonl"

var (
	requiredFields  = [...]string{FieldDocID}
	optionalFields  = [...]string{FieldYearPublished, FieldDateBuilt, FieldLocationName, FieldLocationLatLong, FieldDateCollected}
	preferredFields = [...]string{FieldDatePublished, FieldURI}
	dateFields      = [...]string{FieldDateBuilt, FieldDateCollected, FieldDatePublished}
)

// RequiredFields returns the fields every record must carry.
func RequiredFields() []string { return append([]string(nil), requiredFields[:]...) }

// OptionalFields returns the documented fields a record may omit.
func OptionalFields() []string { return append([]string(nil), optionalFields[:]...) }

// PreferredFields returns fields that are allowed and encouraged but not required.
func PreferredFields() []string { return append([]string(nil), preferredFields[:]...) }

// DateFields returns the fields whose values must look like a zoned date,
// in validation order.
func DateFields() []string { return append([]string(nil), dateFields[:]...) }

// AllFields returns the union of required, optional and preferred fields, sorted.
func AllFields() []string {
	all := RequiredFields()
	all = append(all, OptionalFields()...)
	all = append(all, PreferredFields()...)
	sort.Strings(all)
	return all
}

// IsKnownField reports whether name belongs to the documented schema.
func IsKnownField(name string) bool {
	for _, group := range [][]string{RequiredFields(), OptionalFields(), PreferredFields()} {
		for _, f := range group {
			if f == name {
				return true
			}
		}
	}
	return false
}

// FileName returns the metadata file name for a namespace.
func FileName(namespace string) string {
	return namespace + FileExtension
}
