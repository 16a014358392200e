package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jobfit/jobfit/internal/analyzer"
	"github.com/jobfit/jobfit/internal/docparse"
	"github.com/jobfit/jobfit/internal/skills"
)

type analyzeRequest struct {
	ResumeText     string `json:"resume_text"`
	JobDescription string `json:"job_description"`
}

type parseResponse struct {
	Text string `json:"text"`
}

type pitchResponse struct {
	Pitch string `json:"pitch"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, r, fmt.Errorf("%w: invalid request body", skills.ErrInvalidInput))
		return
	}

	report, err := s.analysis.Analyze(r.Context(), req.ResumeText, req.JobDescription)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, report)
}

func (s *Server) handleParseResume(w http.ResponseWriter, r *http.Request) {
	s.handleParse(w, r)
}

func (s *Server) handleParseJD(w http.ResponseWriter, r *http.Request) {
	s.handleParse(w, r)
}

// handleParse extracts plain text from an uploaded document. Both upload
// endpoints behave identically; they exist separately so clients can evolve
// independently.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, r, fmt.Errorf("%w: missing file upload", skills.ErrInvalidInput))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, r, fmt.Errorf("%w: reading upload: %v", skills.ErrInvalidInput, err))
		return
	}

	text, err := docparse.Extract(header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, parseResponse{Text: text})
}

func (s *Server) handleGeneratePitch(w http.ResponseWriter, r *http.Request) {
	var req analyzer.PitchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, r, fmt.Errorf("%w: invalid request body", skills.ErrInvalidInput))
		return
	}

	pitch, err := s.analysis.Pitch(r.Context(), req)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, pitchResponse{Pitch: pitch})
}
