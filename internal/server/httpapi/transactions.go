package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ledgerkeeper/ledgerkeeper/internal/server/models"
)

// dateFormat is the wire format for transaction dates.
const dateFormat = "2006-01-02"

// createTransactionRequest is the JSON body for recording a transaction.
type createTransactionRequest struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

// updateTransactionRequest carries a partial update. Absent fields keep
// their stored values.
type updateTransactionRequest struct {
	Amount      *float64 `json:"amount"`
	Description *string  `json:"description"`
	Date        *string  `json:"date"`
}

type transactionResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

func toTransactionResponse(tr *models.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tr.ID,
		UserID:      tr.UserID,
		Amount:      tr.Amount,
		Description: tr.Description,
		Date:        tr.Date.Format(dateFormat),
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	date, err := time.Parse(dateFormat, req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	tr, err := s.transactions.Create(r.Context(), userFromContext(r.Context()), req.Amount, req.Description, date)
	if err != nil {
		s.writeAPIError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTransactionResponse(tr))
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	list, err := s.transactions.List(r.Context(), userFromContext(r.Context()), filter)
	if err != nil {
		s.writeAPIError(w, r, err)
		return
	}

	// Keep the empty list a JSON array, not null.
	out := make([]transactionResponse, 0, len(list))
	for _, tr := range list {
		out = append(out, toTransactionResponse(tr))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	tr, err := s.transactions.Get(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.writeAPIError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(tr))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	patch := &models.TransactionPatch{Amount: req.Amount, Description: req.Description}
	if req.Date != nil {
		date, err := time.Parse(dateFormat, *req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		patch.Date = &date
	}

	tr, err := s.transactions.Update(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "id"), patch)
	if err != nil {
		s.writeAPIError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(tr))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	err := s.transactions.Delete(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.writeAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseListFilter reads the q, min_amount, and max_amount query parameters.
func parseListFilter(r *http.Request) (*models.TransactionFilter, error) {
	q := r.URL.Query()
	filter := &models.TransactionFilter{Query: q.Get("q")}

	if raw := q.Get("min_amount"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.New("min_amount must be a number")
		}
		filter.MinAmount = &v
	}
	if raw := q.Get("max_amount"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.New("max_amount must be a number")
		}
		filter.MaxAmount = &v
	}

	return filter, nil
}
