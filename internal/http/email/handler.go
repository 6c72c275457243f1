package email

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/email"
)

type Handler struct {
	parser         *email.Parser
	maxUploadBytes int64
}

func NewHandler(parser *email.Parser, maxUploadBytes int64) *Handler {
	return &Handler{
		parser:         parser,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/parse", h.parse)
}

type attachmentResponse struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

type messageResponse struct {
	From         string               `json:"from"`
	To           []string             `json:"to"`
	Subject      string               `json:"subject"`
	Body         string               `json:"body"`
	Date         time.Time            `json:"date"`
	Attachments  []attachmentResponse `json:"attachments"`
	WorkflowType email.WorkflowType   `json:"workflow_type"`
}

func toResponse(msg *email.Message) messageResponse {
	resp := messageResponse{
		From:         msg.From,
		To:           msg.To,
		Subject:      msg.Subject,
		Body:         msg.Body,
		Date:         msg.Date,
		Attachments:  make([]attachmentResponse, 0, len(msg.Attachments)),
		WorkflowType: email.DetectWorkflowType(msg),
	}

	if resp.To == nil {
		resp.To = []string{}
	}

	for _, a := range msg.Attachments {
		resp.Attachments = append(resp.Attachments, attachmentResponse{
			Filename:    a.Filename,
			ContentType: a.ContentType,
			Size:        a.Size,
		})
	}

	return resp
}

func (h *Handler) parse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	msg, err := h.parser.Parse(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(msg)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
