// File: services/search/service.go
package search

import (
	"context"
	"fmt"
	"strings"

	"roamify/models"
	"roamify/services/geodata"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SearchService is the surface the HTTP layer talks to.
type SearchService interface {
	// StartSearch kicks off a progressive search and returns immediately
	// with an empty processing snapshot.
	StartSearch(query models.TravelQuery) (models.SearchSnapshot, error)
	// PollSearch returns the current snapshot. ok is false for unknown or
	// expired session IDs; callers restart the search in that case.
	PollSearch(sessionID string) (snap models.SearchSnapshot, ok bool)
}

// DefaultSearchService wires the session store and the orchestrator.
type DefaultSearchService struct {
	Store         *Store
	Orchestrator  *Orchestrator
	MaxCandidates int
	Logger        *zap.Logger
}

func (s *DefaultSearchService) StartSearch(query models.TravelQuery) (models.SearchSnapshot, error) {
	query.Normalize()
	origin, ok := geodata.Lookup(query.OriginCode)
	if !ok {
		return models.SearchSnapshot{}, fmt.Errorf("unknown origin code %q", query.OriginCode)
	}
	if query.Budget <= 0 {
		return models.SearchSnapshot{}, fmt.Errorf("budget must be positive")
	}

	cands := prioritize(geodata.Filter(query.Region, query.Country), origin.Code, s.MaxCandidates)
	if len(cands) == 0 {
		return models.SearchSnapshot{}, fmt.Errorf("no destinations match region %q country %q", query.Region, query.Country)
	}

	sessionID := uuid.New().String()
	ctx, cancel := context.WithCancel(context.Background())
	s.Store.Create(sessionID, query, len(cands), cancel)

	go s.Orchestrator.Run(ctx, sessionID, query, origin, cands)

	s.Logger.Info("search started",
		zap.String("sessionID", sessionID),
		zap.String("origin", origin.Code),
		zap.Int("candidates", len(cands)))

	snap, _ := s.Store.Snapshot(sessionID)
	return snap, nil
}

func (s *DefaultSearchService) PollSearch(sessionID string) (models.SearchSnapshot, bool) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return models.SearchSnapshot{}, false
	}
	return s.Store.Snapshot(sessionID)
}
