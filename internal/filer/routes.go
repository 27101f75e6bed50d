package filer

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/akhelifi/bibliosort/internal/classifier"
	"github.com/akhelifi/bibliosort/internal/drive"
	"github.com/akhelifi/bibliosort/internal/extract"
)

// RegisterRoutes mounts the classification endpoints on the given router.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/api/classify", handleClassify(svc))
	r.Get("/api/report", handleReport(svc))
}

type classifyRequest struct {
	Path          string `json:"path"`
	OverrideLabel string `json:"override_label"`
}

type errorResponse struct {
	Error  string  `json:"error"`
	Result *Result `json:"result,omitempty"`
}

func handleClassify(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req classifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}
		if req.Path == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "path is required"})
			return
		}

		result, err := svc.Submit(r.Context(), req.Path, req.OverrideLabel)
		if err != nil {
			switch {
			case errors.Is(err, classifier.ErrEmptyDocument), errors.Is(err, extract.ErrExtraction):
				writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
			case errors.Is(err, ErrUnknownLabel):
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			case errors.Is(err, drive.ErrUnavailable):
				// The classification itself succeeded and is in the
				// ledger; hand it back along with the filing failure.
				writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error(), Result: result})
			default:
				writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			}
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func handleReport(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := svc.Report(r.Context())
		if err != nil {
			if errors.Is(err, drive.ErrUnavailable) {
				writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
				return
			}
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
