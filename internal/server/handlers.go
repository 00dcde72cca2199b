package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"yashubustudio/samas/samas"
)

type processRequest struct {
	Text string `json:"text"`
}

type processResponse struct {
	Expanded       string   `json:"expanded"`
	Compounds      []string `json:"compounds"`
	Annotations    []string `json:"annotations"`
	ElapsedSeconds float64  `json:"elapsed_seconds"`
	RequestID      string   `json:"request_id"`
}

type lookupResponse struct {
	samas.DatasetRow
	Category string `json:"category"`
	Meaning  string `json:"meaning"`
}

type categoryJSON struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type categoriesResponse struct {
	Categories []categoryJSON `json:"categories"`
}

type healthResponse struct {
	Status      string            `json:"status"`
	DatasetRows int               `json:"dataset_rows"`
	Model       samas.ModelStatus `json:"model"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logf("encode error: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg, RequestID: requestID(r)})
}

// process runs one text and records its metrics.
func (s *Server) process(text string) (samas.Result, error) {
	res, err := s.svc.Process(text)
	if err != nil {
		return res, err
	}
	s.metrics.process.Observe(res.Elapsed.Seconds())
	s.metrics.compounds.Add(float64(len(res.Compounds)))
	return res, nil
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	var data pageData
	switch r.Method {
	case http.MethodGet:
	case http.MethodPost:
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		data.Text = r.PostForm.Get("text")
		res, err := s.process(data.Text)
		switch {
		case errors.Is(err, samas.ErrEmptyInput):
			data.Warning = true
		case err != nil:
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		default:
			data.Result = &res
		}
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "GET or POST required", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderPage(w, data); err != nil {
		s.logf("render error: %v", err)
	}
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, r, http.StatusMethodNotAllowed, "POST required")
		return
	}
	var body processRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "body must be JSON with a 'text' field")
		return
	}
	res, err := s.process(body.Text)
	if errors.Is(err, samas.ErrEmptyInput) {
		s.writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, processResponse{
		Expanded:       res.Expanded,
		Compounds:      res.Compounds,
		Annotations:    res.Annotations,
		ElapsedSeconds: math.Round(res.Elapsed.Seconds()*1e4) / 1e4,
		RequestID:      requestID(r),
	})
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, r, http.StatusMethodNotAllowed, "GET required")
		return
	}
	word := strings.TrimSpace(r.URL.Query().Get("word"))
	if word == "" {
		s.writeError(w, r, http.StatusBadRequest, "missing 'word' query parameter")
		return
	}
	row, ok := s.svc.Lookup(word)
	if !ok {
		s.writeError(w, r, http.StatusNotFound, fmt.Sprintf("word %q not found", word))
		return
	}
	s.writeJSON(w, http.StatusOK, lookupResponse{
		DatasetRow: row,
		Category:   s.svc.Mapping().Display(row.Label),
		Meaning:    row.Meaning(),
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, r, http.StatusMethodNotAllowed, "GET required")
		return
	}
	counts := s.svc.Dataset().LabelCounts()
	cats := s.svc.Mapping().Categories()
	out := make([]categoryJSON, 0, len(cats))
	for _, c := range cats {
		out = append(out, categoryJSON{Code: c.Code, Name: c.Name, Count: counts[c.Code]})
	}
	s.writeJSON(w, http.StatusOK, categoriesResponse{Categories: out})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, r, http.StatusMethodNotAllowed, "GET required")
		return
	}
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:      "ok",
		DatasetRows: s.svc.Dataset().Len(),
		Model:       s.svc.ModelStatus(),
	})
}
