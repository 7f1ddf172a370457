// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/riskcheck/cliparse"
	"github.com/danielhkuo/riskcheck/db"
	"github.com/danielhkuo/riskcheck/middleware"
	"github.com/danielhkuo/riskcheck/models"
)

type AnswerHandler struct {
	db  *db.DB
	cfg cliparse.Config
}

func NewAnswerHandler(conn *db.DB, cfg cliparse.Config) *AnswerHandler {
	return &AnswerHandler{db: conn, cfg: cfg}
}

// ListAnswers handles GET /api/answer
func (h *AnswerHandler) ListAnswers(w http.ResponseWriter, r *http.Request) {
	answers, err := scanAnswers(r.Context(), h.db, `
		SELECT id, value, questionnaire_id
		FROM answer
		ORDER BY id
	`)
	if err != nil {
		slog.Error("failed to query answers", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, answers)
}

// GetAnswer handles GET /api/answer/{id}
func (h *AnswerHandler) GetAnswer(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var answer models.Answer
	err = h.db.QueryRowContext(r.Context(), `
		SELECT id, value, questionnaire_id
		FROM answer
		WHERE id = ?
	`, id).Scan(&answer.ID, &answer.Value, &answer.QuestionnaireID)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Answer not found")
		return
	}
	if err != nil {
		slog.Error("failed to query answer", "error", err, "answer_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, answer)
}

// CreateAnswer handles POST /api/answer
func (h *AnswerHandler) CreateAnswer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CreateAnswerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := middleware.ValidateStruct(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ok, err := questionnaireExists(ctx, h.db, req.QuestionnaireID)
	if err != nil {
		slog.Error("failed to query questionnaire", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "questionnaireId does not exist")
		return
	}

	id, err := h.db.InsertID(ctx, `
		INSERT INTO answer (value, questionnaire_id)
		VALUES (?, ?)
	`, req.Value, req.QuestionnaireID)
	if err != nil {
		slog.Error("failed to insert answer", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create answer")
		return
	}

	slog.Info("answer created", "answer_id", id, "questionnaire_id", req.QuestionnaireID)

	w.Header().Set("Location", "/api/answer/"+strconv.FormatInt(id, 10))
	middleware.JSONResponse(w, http.StatusCreated, models.Answer{
		ID:              id,
		Value:           req.Value,
		QuestionnaireID: req.QuestionnaireID,
	})
}

// UpdateAnswer handles PUT /api/answer/{id}
func (h *AnswerHandler) UpdateAnswer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.UpdateAnswerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.ID != id {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id in path and body must match")
		return
	}
	if err := middleware.ValidateStruct(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ok, err := questionnaireExists(ctx, h.db, req.QuestionnaireID)
	if err != nil {
		slog.Error("failed to query questionnaire", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "questionnaireId does not exist")
		return
	}

	res, err := h.db.ExecContext(ctx, `
		UPDATE answer
		SET value = ?, questionnaire_id = ?
		WHERE id = ?
	`, req.Value, req.QuestionnaireID, id)
	if err != nil {
		slog.Error("failed to update answer", "error", err, "answer_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update answer")
		return
	}
	affected, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err, "answer_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update answer")
		return
	}

	if affected == 0 {
		h.resolveUpdateMiss(w, r, id)
		return
	}

	slog.Info("answer updated", "answer_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// resolveUpdateMiss decides between not found and a concurrent modification
func (h *AnswerHandler) resolveUpdateMiss(w http.ResponseWriter, r *http.Request, id int64) {
	exists, err := db.Exists(r.Context(), h.db, "SELECT 1 FROM answer WHERE id = ?", id)
	if err != nil {
		slog.Error("failed to query answer", "error", err, "answer_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Answer not found")
		return
	}

	slog.Warn("answer update conflict", "answer_id", id)
	middleware.ErrorResponse(w, http.StatusConflict, "Answer was modified concurrently")
}

// DeleteAnswer handles DELETE /api/answer/{id}
func (h *AnswerHandler) DeleteAnswer(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.db.ExecContext(r.Context(), "DELETE FROM answer WHERE id = ?", id)
	if err != nil {
		slog.Error("failed to delete answer", "error", err, "answer_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete answer")
		return
	}
	affected, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err, "answer_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete answer")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Answer not found")
		return
	}

	slog.Info("answer deleted", "answer_id", id)
	w.WriteHeader(http.StatusNoContent)
}
