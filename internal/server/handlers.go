package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/apistyle/apilint/pkg/core"
	"github.com/apistyle/apilint/pkg/lint"
	"github.com/apistyle/apilint/pkg/lint/project"
	"github.com/apistyle/apilint/pkg/schema"
)

// maxCheckBody caps the request body for /api/check. Schema documents
// are small; anything larger is almost certainly a mistake.
const maxCheckBody = 1 << 20

type checkResponse struct {
	Document string         `json:"document"`
	Summary  checkSummary   `json:"summary"`
	Findings []checkFinding `json:"findings"`
}

type checkSummary struct {
	Total     int `json:"total"`
	Must      int `json:"must"`
	Should    int `json:"should"`
	Malformed int `json:"malformed"`
}

type checkFinding struct {
	RuleID           string `json:"rule_id,omitempty"`
	Rule             string `json:"rule"`
	Kind             string `json:"kind"`
	Severity         string `json:"severity"`
	Path             string `json:"path"`
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url,omitempty"`
}

type runDetailResponse struct {
	Run      *core.Run            `json:"run"`
	Findings []core.FindingRecord `json:"findings"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListRules returns metadata for every registered rule, schema
// rules first, then project rules.
func (s *Server) handleListRules(w http.ResponseWriter, r *http.Request) {
	infos := []core.RuleInfo{}
	for _, rule := range lint.GetAll() {
		infos = append(infos, rule.Info())
	}
	for _, rule := range project.GetAll() {
		infos = append(infos, rule.Info())
	}
	s.writeJSON(w, http.StatusOK, infos)
}

// handleCheck lints a single schema document posted as YAML or JSON.
// Project-level rules need the whole document set and do not run here.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "request"
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxCheckBody))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "request body exceeds 1 MiB")
			return
		}
		s.writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		s.writeError(w, http.StatusBadRequest, "request body is empty")
		return
	}

	doc, err := schema.Parse(name, body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	findings, err := lint.NewChecker(s.lintCfg).Check(doc)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := checkResponse{
		Document: name,
		Findings: make([]checkFinding, 0, len(findings)),
	}
	for _, f := range findings {
		resp.Findings = append(resp.Findings, checkFinding{
			RuleID:           f.RuleID,
			Rule:             f.Rule,
			Kind:             f.Kind.String(),
			Severity:         f.Severity.String(),
			Path:             f.Path,
			Message:          f.Message,
			DocumentationURL: f.DocumentationURL,
		})
		resp.Summary.Total++
		switch {
		case f.Kind == lint.KindMalformedNode:
			resp.Summary.Malformed++
		case f.Severity == lint.SeverityMust:
			resp.Summary.Must++
		default:
			resp.Summary.Should++
		}
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "run history is not available")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	runs, err := s.store.ListRuns(limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if runs == nil {
		runs = []*core.Run{}
	}
	s.writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "run history is not available")
		return
	}

	id := chi.URLParam(r, "id")
	run, err := s.store.GetRun(id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			s.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	findings, err := s.store.FindingsForRun(id)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if findings == nil {
		findings = []core.FindingRecord{}
	}

	s.writeJSON(w, http.StatusOK, runDetailResponse{Run: run, Findings: findings})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}
