package faresolver

import (
	"encoding/json"
	"net/http"

	"github.com/transit-tools/fare-resolver/fare"
	"github.com/transit-tools/fare-resolver/internal"
)

// Service ties the active table store, the resolve cache and the reload
// routine behind the HTTP handlers.
type Service struct {
	Store  *fare.Store
	Cache  *ResolveCache
	Reload func() (*fare.Table, error)
}

func NewService(store *fare.Store, cache *ResolveCache, reload func() (*fare.Table, error)) *Service {
	return &Service{Store: store, Cache: cache, Reload: reload}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}
	if t := s.Store.Active(); t != nil {
		built := t.BuiltAt
		resp.BuiltAt = &built
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Service) handleSummary(w http.ResponseWriter, r *http.Request) {
	t := s.Store.Active()
	if t == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "no fare table loaded"})
		return
	}
	writeJSON(w, http.StatusOK, t.Summarize())
}

func (s *Service) handleResolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "POST required"})
		return
	}
	t := s.Store.Active()
	if t == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "no fare table loaded"})
		return
	}
	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	resp := ResolveResponse{Results: make([]LegResult, 0, len(req.Legs))}
	for _, leg := range req.Legs {
		resp.Results = append(resp.Results, s.resolveLeg(r, t, leg))
	}
	for _, res := range resp.Results {
		if res.Hit {
			resp.Summary.Hits++
			resp.Summary.TotalFare += res.Record.Fare
		} else {
			resp.Summary.Misses++
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// resolveLeg resolves one leg through the cache. A leg with an unparseable
// date is a miss with an explanation, not a request failure.
func (s *Service) resolveLeg(r *http.Request, t *fare.Table, leg LegRequest) LegResult {
	d, ok := fare.ParseDateLoose(leg.Date)
	if !ok {
		return LegResult{Date: leg.Date, From: leg.From, To: leg.To, Error: "unparseable date"}
	}
	dateKey := d.Time.Format("2006-01-02")
	if buf, ok := s.Cache.Get(r.Context(), dateKey, leg.From, leg.To); ok {
		var cached LegResult
		if err := json.Unmarshal(buf, &cached); err == nil {
			return cached
		}
	}

	m := t.Resolve(d.Time, leg.From, leg.To)
	res := LegResult{
		Date:        dateKey,
		From:        m.From,
		To:          m.To,
		Hit:         m.Hit,
		Record:      m.Record,
		Tried:       m.Tried,
		HasAnyRoute: m.HasAnyRoute,
		Reverse:     m.Reverse,
	}
	if buf, err := json.Marshal(res); err == nil {
		s.Cache.Set(r.Context(), buf, dateKey, leg.From, leg.To)
	}
	return res
}

func (s *Service) handleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "POST required"})
		return
	}
	if s.Reload == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "no reload source configured"})
		return
	}
	t, err := s.Store.Reload(s.Reload)
	if err != nil {
		// Prior table stays authoritative on failure.
		internal.L().Warnw("fare table reload failed", "err", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}
	s.Cache.Reset()
	internal.L().Infow("fare table reloaded",
		"source", t.Source, "fares", len(t.Records))
	writeJSON(w, http.StatusOK, t.Summarize())
}
