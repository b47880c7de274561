package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mrlokans/scribe/internal/events"
	"github.com/mrlokans/scribe/internal/services"
)

type dictionaryRequest struct {
	events.Envelope
	Operation string `json:"operation"`
	Word      string `json:"word"`
	Language  string `json:"language"`
}

// DictionaryEntry is one word in a list response.
type DictionaryEntry struct {
	Word    string    `json:"word"`
	AddedAt time.Time `json:"added_at"`
}

// DictionaryResponse answers any of the dictionary operations; only the
// fields relevant to the operation are populated.
type DictionaryResponse struct {
	events.BaseResponse
	Operation string            `json:"operation"`
	Word      string            `json:"word,omitempty"`
	Added     *bool             `json:"added,omitempty"`
	Removed   *bool             `json:"removed,omitempty"`
	IsValid   *bool             `json:"is_valid,omitempty"`
	Words     []DictionaryEntry `json:"words,omitempty"`
	Count     *int              `json:"count,omitempty"`
}

// DictionaryHandler serves add, remove, check and list operations on the
// custom dictionary.
type DictionaryHandler struct {
	checker *services.Checker
}

func NewDictionaryHandler(checker *services.Checker) *DictionaryHandler {
	return &DictionaryHandler{checker: checker}
}

func (h *DictionaryHandler) Key() string { return KeyDictionary }

func (h *DictionaryHandler) Handle(ctx context.Context, payload json.RawMessage, conn events.Conn) any {
	var req dictionaryRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return events.HandlerError(h.Key(), "malformed payload: "+err.Error(), req.CorrelationID)
	}
	if req.Language == "" {
		req.Language = "en"
	}

	resp := DictionaryResponse{
		BaseResponse: events.BaseResponse{
			MessageKey:    "dictionary_response",
			Success:       true,
			CorrelationID: req.CorrelationID,
		},
		Operation: req.Operation,
		Word:      req.Word,
	}

	switch req.Operation {
	case "add", "remove", "check":
		if req.Word == "" {
			return events.HandlerError(h.Key(),
				fmt.Sprintf("operation %q requires a word", req.Operation), req.CorrelationID)
		}
	case "list":
	case "":
		return events.HandlerError(h.Key(), "operation is required", req.CorrelationID)
	default:
		return events.HandlerError(h.Key(),
			fmt.Sprintf("unknown operation %q, expected add, remove, check or list", req.Operation),
			req.CorrelationID)
	}

	switch req.Operation {
	case "add":
		added, err := h.checker.AddWord(req.Word)
		if err != nil {
			return events.HandlerError(h.Key(), err.Error(), req.CorrelationID)
		}
		resp.Added = &added

	case "remove":
		removed, err := h.checker.RemoveWord(req.Word)
		if err != nil {
			return events.HandlerError(h.Key(), err.Error(), req.CorrelationID)
		}
		resp.Removed = &removed

	case "check":
		valid, err := h.checker.IsWordValid(ctx, req.Word, req.Language)
		if err != nil {
			return events.HandlerError(h.Key(), err.Error(), req.CorrelationID)
		}
		resp.IsValid = &valid

	case "list":
		words, err := h.checker.ListWords()
		if err != nil {
			return events.HandlerError(h.Key(), err.Error(), req.CorrelationID)
		}
		entries := make([]DictionaryEntry, len(words))
		for i, w := range words {
			entries[i] = DictionaryEntry{Word: w.Word, AddedAt: w.AddedAt}
		}
		count := len(entries)
		resp.Words = entries
		resp.Count = &count
	}

	return resp
}
