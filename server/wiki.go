package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nostromo/mother/internal/wiki"
)

type countsResponse struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

type recordsResponse struct {
	Kind    wiki.Kind     `json:"kind"`
	Query   string        `json:"query"`
	Records []wiki.Record `json:"records"`
}

type searchResult struct {
	Kind   wiki.Kind   `json:"kind"`
	Record wiki.Record `json:"record"`
}

type searchResponse struct {
	Query   string         `json:"query"`
	Results []searchResult `json:"results"`
}

func (s *Server) handleCounts(w http.ResponseWriter, r *http.Request) {
	response := countsResponse{Counts: map[string]int{}}
	for kind, count := range s.store.Counts() {
		response.Counts[kind.Plural()] = count
		response.Total += count
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleKind(w http.ResponseWriter, r *http.Request) {
	kind, ok := wiki.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		s.respondError(w, http.StatusNotFound, "unknown kind")
		return
	}
	query := r.URL.Query().Get("q")
	records := s.store.Search(kind, query)
	if records == nil {
		records = []wiki.Record{}
	}
	s.respondJSON(w, http.StatusOK, recordsResponse{Kind: kind, Query: query, Records: records})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	filters := wiki.Filters{Franchise: values.Get("franchise")}
	if value := values.Get("kind"); value != "" {
		kind, ok := wiki.ParseKind(value)
		if !ok {
			s.respondError(w, http.StatusBadRequest, "unknown kind")
			return
		}
		filters.Kind = kind
	}
	query := values.Get("q")
	response := searchResponse{Query: query, Results: []searchResult{}}
	for _, entry := range s.store.SearchAll(query, filters) {
		response.Results = append(response.Results, searchResult{Kind: entry.Kind, Record: entry.Record})
	}
	s.respondJSON(w, http.StatusOK, response)
}
