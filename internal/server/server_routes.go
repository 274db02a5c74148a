package server

import (
	"encoding/json"
	"net/http"

	"github.com/brk3/lifemanager/internal/cloudsync"
	"github.com/brk3/lifemanager/internal/logger"
	"github.com/brk3/lifemanager/pkg/period"
	"github.com/brk3/lifemanager/pkg/versioninfo"
	"github.com/go-chi/chi/v5"
)

const maxCodeLen = 128

func writeJSON(w http.ResponseWriter, code int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(v)
}

func (s *Server) getVersionInfo(w http.ResponseWriter, _ *http.Request) {
	if err := writeJSON(w, http.StatusOK, versioninfo.Current()); err != nil {
		logger.Error("Failed to serialize version info response", "error", err)
		http.Error(w, `{"error":"failed to serialize version info"}`, http.StatusInternalServerError)
		return
	}
}

func syncCode(r *http.Request) string {
	code := cloudsync.Normalize(chi.URLParam(r, "code"))
	if len(code) > maxCodeLen {
		return ""
	}
	return code
}

func (s *Server) getSyncDocument(w http.ResponseWriter, r *http.Request) {
	code := syncCode(r)
	if code == "" {
		http.Error(w, `{"error":"sync code is required"}`, http.StatusBadRequest)
		return
	}
	collection := s.collection(r)
	logger.Debug("Loading sync document", "collection", collection, "code", code)

	doc, err := s.remote.Load(r.Context(), collection, code)
	if err != nil {
		syncReadsTotal.WithLabelValues("error").Inc()
		logger.Error("Failed to load sync document", "collection", collection, "code", code, "error", err)
		http.Error(w, `{"error":"storage error"}`, http.StatusInternalServerError)
		return
	}
	if doc == nil {
		syncReadsTotal.WithLabelValues("missing").Inc()
		http.Error(w, `{"error":"no data found for this code"}`, http.StatusNotFound)
		return
	}
	syncReadsTotal.WithLabelValues("found").Inc()

	if err := writeJSON(w, http.StatusOK, doc); err != nil {
		logger.Error("Failed to serialize sync document", "code", code, "error", err)
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

func (s *Server) putSyncDocument(w http.ResponseWriter, r *http.Request) {
	code := syncCode(r)
	if code == "" {
		http.Error(w, `{"error":"sync code is required"}`, http.StatusBadRequest)
		return
	}

	var doc cloudsync.Document
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxDocumentBytes)).Decode(&doc); err != nil {
		syncWritesTotal.WithLabelValues("invalid").Inc()
		http.Error(w, `{"error":"invalid JSON"}`, http.StatusBadRequest)
		return
	}
	if err := validateDocument(doc); err != nil {
		syncWritesTotal.WithLabelValues("invalid").Inc()
		logger.Warn("Rejected sync document", "code", code, "error", err)
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	collection := s.collection(r)
	if err := s.remote.Save(r.Context(), collection, code, doc); err != nil {
		syncWritesTotal.WithLabelValues("error").Inc()
		logger.Error("Failed to store sync document", "collection", collection, "code", code, "error", err)
		http.Error(w, `{"error":"database write failed"}`, http.StatusInternalServerError)
		return
	}
	syncWritesTotal.WithLabelValues("ok").Inc()
	s.updateDocumentGauge(collection)

	saved, err := s.remote.Load(r.Context(), collection, code)
	if err != nil || saved == nil {
		logger.Error("Failed to read back sync document", "code", code, "error", err)
		http.Error(w, `{"error":"storage error"}`, http.StatusInternalServerError)
		return
	}
	resp := SyncWriteResponse{Code: code, LastUpdated: saved.LastUpdated}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.Error("Failed to serialize sync write response", "code", code, "error", err)
		return
	}
}

func (s *Server) updateDocumentGauge(collection string) {
	n, err := s.docs.CountDocuments(collection)
	if err != nil {
		logger.Warn("Failed to count sync documents", "collection", collection, "error", err)
		return
	}
	syncDocuments.WithLabelValues(collection).Set(float64(n))
}

func validateDocument(doc cloudsync.Document) error {
	if doc.Version == "" {
		return errMissingVersion
	}
	for day := range doc.DailyLogs {
		if !period.ValidDayKey(day) {
			return errBadDayKey
		}
	}
	for day := range doc.Scores {
		if !period.ValidDayKey(day) {
			return errBadDayKey
		}
	}
	return nil
}
