package importcsv

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/http/validate"
	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/importer"
)

type Handler struct {
	importSvc      *importer.Service
	maxUploadBytes int64
}

func NewHandler(importSvc *importer.Service, maxUploadBytes int64) *Handler {
	return &Handler{
		importSvc:      importSvc,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.kinds)
	r.With(validate.Request[kindParams](validate.Params)).Post("/{kind}", h.importCSV)
}

type kindParams struct {
	Kind string `form:"kind" validate:"required,max=64"`
}

type kindsResponse struct {
	Kinds []importer.Kind `json:"kinds"`
}

func (h *Handler) kinds(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(kindsResponse{Kinds: h.importSvc.Kinds()}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	params, _ := validate.From[kindParams](r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := h.importSvc.Import(importer.Kind(params.Kind), file)
	if err != nil {
		if errors.Is(err, importer.ErrUnknownKind) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	slog.Info("csv imported",
		"kind", params.Kind,
		"file", header.Filename,
		"total", result.TotalRows,
		"valid", result.ValidRows,
		"invalid", result.InvalidRows,
	)

	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(result); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
