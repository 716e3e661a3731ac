package router

import (
	"strings"

	"go.uber.org/zap"

	"github.com/nostromo/mother/internal/wiki"
)

const wikiDirective = "/wiki"

// ReferenceStore answers reference directives.
type ReferenceStore interface {
	GetAll(kind wiki.Kind) []wiki.Record
	Search(kind wiki.Kind, query string) []wiki.Record
	SearchAll(query string, filters wiki.Filters) []wiki.Entry
	Counts() map[wiki.Kind]int
}

var directiveToKind = func() map[string]wiki.Kind {
	directiveToKind := map[string]wiki.Kind{}
	for _, kind := range wiki.Kinds {
		directiveToKind["/"+kind.Plural()] = kind
	}
	return directiveToKind
}()

func isReference(input string) bool {
	input = strings.ToLower(input)
	if strings.HasPrefix(input, wikiDirective) {
		return true
	}
	for directive := range directiveToKind {
		if strings.HasPrefix(input, directive) {
			return true
		}
	}
	return false
}

// splitDirective returns the lowercased first token and the rest of the line.
func splitDirective(input string) (string, string) {
	input = strings.TrimSpace(input)
	index := strings.IndexFunc(input, func(r rune) bool { return r == ' ' || r == '\t' })
	if index < 0 {
		return strings.ToLower(input), ""
	}
	return strings.ToLower(input[:index]), strings.TrimSpace(input[index:])
}

func (r *Router) queryReference(input string) string {
	directive, query := splitDirective(input)
	if directive == wikiDirective {
		if query == "" || strings.EqualFold(query, "help") {
			return wiki.FormatHelp(r.store.Counts())
		}
		entries := r.store.SearchAll(query, wiki.Filters{})
		records := make([]wiki.Record, 0, len(entries))
		for _, entry := range entries {
			records = append(records, entry.Record)
		}
		return r.formatResults("search results", query, records)
	}

	kind, ok := directiveToKind[directive]
	if !ok {
		return ReplyUnknownDirective
	}
	if query == "" {
		return wiki.FormatListing(kind.Plural(), r.store.GetAll(kind))
	}
	return r.formatResults(kind.Plural(), query, r.store.Search(kind, query))
}

func (r *Router) formatResults(title, query string, records []wiki.Record) string {
	switch len(records) {
	case 0:
		return "NO DATA FOUND FOR QUERY: " + query
	case 1:
		text, err := wiki.FormatLong(records[0])
		if err != nil {
			r.logger.Error("formatting record", zap.String("id", records[0].Meta().ID), zap.Error(err))
			return wiki.FormatShort(records[0])
		}
		return text
	default:
		return wiki.FormatListing(title, records)
	}
}
