package server

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/gnolang/fitch/check"
	"github.com/gnolang/fitch/internal/checker"
	"github.com/gnolang/fitch/internal/rules"
	"github.com/gnolang/fitch/internal/types"
)

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var problem types.Problem
	if err := decodeBody(w, r, &problem); err != nil {
		jsonError(w, "invalid problem: "+err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := s.check(problem)
	if err != nil {
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var problems []types.Problem
	if err := decodeBody(w, r, &problems); err != nil {
		jsonError(w, "invalid batch: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(problems) > maxBatchItems {
		jsonError(w, fmt.Sprintf("batch exceeds %d problems", maxBatchItems), http.StatusRequestEntityTooLarge)
		return
	}

	outcomes, err := check.ProcessRecords(r.Context(), s.log, s.engine, problems)
	if err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	records := make([]check.OutputRecord, len(outcomes))
	for i, o := range outcomes {
		records[i] = o.Record()
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	sets := make(map[string][]string)
	for _, name := range checker.RuleSetNames() {
		set, err := checker.RuleSet(name)
		if err != nil {
			jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		sets[name] = set
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"rules":     rules.Names(),
		"rule_sets": sets,
	})
}

// check validates problem, consulting the cache first. Malformed problems
// are returned as errors and never cached.
func (s *Server) check(problem types.Problem) (check.OutputRecord, error) {
	key, err := cacheKey(problem)
	if err != nil {
		return check.OutputRecord{}, err
	}
	if rec, ok := s.cache.Get(key); ok {
		rec.ID = problem.ID
		return rec, nil
	}

	outcome := check.ProcessRecord(s.engine, problem)
	if outcome.Err != nil {
		s.log.Info("Rejected malformed problem", zap.String("id", problem.ID), zap.Error(outcome.Err))
		return check.OutputRecord{}, outcome.Err
	}
	rec := outcome.Record()
	s.cache.Add(key, rec)
	return rec, nil
}

// cacheKey hashes the parts of a problem that determine its result.
func cacheKey(problem types.Problem) (string, error) {
	problem.ID = ""
	d, err := json.Marshal(problem)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(d)
	return hex.EncodeToString(sum[:]), nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
