package wiki

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// fieldSeparator joins the search fields of a record. It cannot be typed, so a query never matches across two fields.
const fieldSeparator = "\x00"

// Filters narrow a SearchAll call. Zero values match everything.
type Filters struct {
	Franchise string
	Kind      Kind
}

// Entry is a search result tagged with its kind.
type Entry struct {
	Kind   Kind
	Record Record
}

// Store is an immutable in-memory collection of reference records.
// Safe for concurrent use.
type Store struct {
	kindToRecords map[Kind][]Record
}

// NewStore builds a store from the given records. Duplicate ids within a kind are rejected.
func NewStore(records ...Record) (*Store, error) {
	kindToRecords := map[Kind][]Record{}
	kindToIDs := map[Kind]map[string]struct{}{}
	for _, record := range records {
		kind := record.Kind()
		id := record.Meta().ID
		if id == "" {
			return nil, errors.Errorf("%s %q has no id", kind, record.Meta().Name)
		}
		ids, ok := kindToIDs[kind]
		if !ok {
			ids = map[string]struct{}{}
			kindToIDs[kind] = ids
		}
		if _, ok := ids[id]; ok {
			return nil, errors.Errorf("duplicate %s id %q", kind, id)
		}
		ids[id] = struct{}{}
		kindToRecords[kind] = append(kindToRecords[kind], record)
	}
	for kind, records := range kindToRecords {
		sortRecords(records)
		kindToRecords[kind] = records
	}
	return &Store{kindToRecords: kindToRecords}, nil
}

// GetAll returns every record of a kind, sorted by name.
func (s *Store) GetAll(kind Kind) []Record {
	return append([]Record(nil), s.kindToRecords[kind]...)
}

// Search returns the records of a kind matching the query, sorted by name.
func (s *Store) Search(kind Kind, query string) []Record {
	var results []Record
	for _, record := range s.kindToRecords[kind] {
		if Matches(record, query) {
			results = append(results, record)
		}
	}
	return results
}

// SearchAll searches every kind at once.
func (s *Store) SearchAll(query string, filters Filters) []Entry {
	var records []Record
	for _, kind := range Kinds {
		if filters.Kind != "" && filters.Kind != kind {
			continue
		}
		for _, record := range s.Search(kind, query) {
			if filters.Franchise != "" && !strings.EqualFold(filters.Franchise, record.Meta().Franchise) {
				continue
			}
			records = append(records, record)
		}
	}
	sortRecords(records)

	entries := make([]Entry, 0, len(records))
	for _, record := range records {
		entries = append(entries, Entry{Kind: record.Kind(), Record: record})
	}
	return entries
}

// Counts returns the number of records per kind. Every kind is present.
func (s *Store) Counts() map[Kind]int {
	counts := make(map[Kind]int, len(Kinds))
	for _, kind := range Kinds {
		counts[kind] = len(s.kindToRecords[kind])
	}
	return counts
}

// Matches reports whether the query is a case-insensitive substring of one of the record's search fields.
func Matches(record Record, query string) bool {
	blob := strings.ToLower(strings.Join(record.SearchFields(), fieldSeparator))
	return strings.Contains(blob, strings.ToLower(query))
}

// sortRecords sorts by name using English collation, then by kind and id for a stable order.
func sortRecords(records []Record) {
	collator := collate.New(language.English)
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].Meta(), records[j].Meta()
		if c := collator.CompareString(a.Name, b.Name); c != 0 {
			return c < 0
		}
		if records[i].Kind() != records[j].Kind() {
			return records[i].Kind() < records[j].Kind()
		}
		return a.ID < b.ID
	})
}
