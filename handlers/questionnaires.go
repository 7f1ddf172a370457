// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/riskcheck/cliparse"
	"github.com/danielhkuo/riskcheck/db"
	"github.com/danielhkuo/riskcheck/middleware"
	"github.com/danielhkuo/riskcheck/models"
)

type QuestionnaireHandler struct {
	db  *db.DB
	cfg cliparse.Config
}

func NewQuestionnaireHandler(conn *db.DB, cfg cliparse.Config) *QuestionnaireHandler {
	return &QuestionnaireHandler{db: conn, cfg: cfg}
}

// ListQuestionnaires handles GET /api/questionnaire
func (h *QuestionnaireHandler) ListQuestionnaires(w http.ResponseWriter, r *http.Request) {
	questionnaires, err := loadQuestionnaires(r.Context(), h.db, 0)
	if err != nil {
		slog.Error("failed to query questionnaires", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, questionnaires)
}

// GetQuestionnaire handles GET /api/questionnaire/{id}
func (h *QuestionnaireHandler) GetQuestionnaire(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	questionnaires, err := loadQuestionnaires(r.Context(), h.db, id)
	if err != nil {
		slog.Error("failed to query questionnaire", "error", err, "questionnaire_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if len(questionnaires) == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Questionnaire not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, questionnaires[0])
}

// SubmitQuestionnaire handles POST /api/questionnaire
// Stores the questionnaire and all of its answers in one transaction
func (h *QuestionnaireHandler) SubmitQuestionnaire(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.UserIDFromContext(ctx)

	var req models.SubmitQuestionnaireRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := middleware.ValidateStruct(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// The token may outlive its user
	ok, err := userExists(ctx, h.db, userID)
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Unknown user")
		return
	}

	var questionnaireID int64
	err = h.db.Transaction(ctx, func(tx *db.Tx) error {
		var err error
		questionnaireID, err = tx.InsertID(ctx, `
			INSERT INTO questionnaire (user_id)
			VALUES (?)
		`, userID)
		if err != nil {
			return err
		}
		return insertAnswers(ctx, tx, questionnaireID, req.Answers)
	})
	if err != nil {
		slog.Error("failed to save questionnaire", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save questionnaire")
		return
	}

	slog.Info("questionnaire submitted", "questionnaire_id", questionnaireID, "user_id", userID,
		"score", RiskScore(answerValues(req.Answers)))

	middleware.JSONResponse(w, http.StatusOK, models.SubmitQuestionnaireResponse{
		ID:      questionnaireID,
		Message: "Questionnaire saved successfully.",
	})
}

// UpdateQuestionnaire handles PUT /api/questionnaire/{id}
// Overwrites the owner and, when answers are present, replaces the answer set
func (h *QuestionnaireHandler) UpdateQuestionnaire(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.UpdateQuestionnaireRequest
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

	ok, err := userExists(ctx, h.db, req.UserID)
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "userId does not exist")
		return
	}

	err = h.db.Transaction(ctx, func(tx *db.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE questionnaire
			SET user_id = ?
			WHERE id = ?
		`, req.UserID, id)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return errNotUpdated
		}

		if req.Answers == nil {
			return nil
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM answer WHERE questionnaire_id = ?", id); err != nil {
			return err
		}
		return insertAnswers(ctx, tx, id, req.Answers)
	})

	if errors.Is(err, errNotUpdated) {
		h.resolveUpdateMiss(w, r, id)
		return
	}
	if err != nil {
		slog.Error("failed to update questionnaire", "error", err, "questionnaire_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update questionnaire")
		return
	}

	slog.Info("questionnaire updated", "questionnaire_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// resolveUpdateMiss decides between not found and a concurrent modification
func (h *QuestionnaireHandler) resolveUpdateMiss(w http.ResponseWriter, r *http.Request, id int64) {
	exists, err := questionnaireExists(r.Context(), h.db, id)
	if err != nil {
		slog.Error("failed to query questionnaire", "error", err, "questionnaire_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Questionnaire not found")
		return
	}

	slog.Warn("questionnaire update conflict", "questionnaire_id", id)
	middleware.ErrorResponse(w, http.StatusConflict, "Questionnaire was modified concurrently")
}

// DeleteQuestionnaire handles DELETE /api/questionnaire/{id}
// Answers are removed together with their questionnaire
func (h *QuestionnaireHandler) DeleteQuestionnaire(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.db.Transaction(ctx, func(tx *db.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM answer WHERE questionnaire_id = ?", id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM questionnaire WHERE id = ?", id)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return errNotDeleted
		}
		return nil
	})

	if errors.Is(err, errNotDeleted) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Questionnaire not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete questionnaire", "error", err, "questionnaire_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete questionnaire")
		return
	}

	slog.Info("questionnaire deleted", "questionnaire_id", id)
	w.WriteHeader(http.StatusNoContent)
}
