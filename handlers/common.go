// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/danielhkuo/riskcheck/db"
	"github.com/danielhkuo/riskcheck/models"
)

var (
	errNotUpdated = errors.New("no rows updated")
	errNotDeleted = errors.New("no rows deleted")
)

// parseID reads the positive integer {id} path value
func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("id must be a positive integer")
	}
	return id, nil
}

// loadQuestionnaires returns questionnaires with owner and answers attached,
// ordered by id. id == 0 loads all of them.
func loadQuestionnaires(ctx context.Context, q db.Querier, id int64) ([]models.Questionnaire, error) {
	query := `
		SELECT q.id, q.user_id, u.email
		FROM questionnaire q
		JOIN app_user u ON u.id = q.user_id`
	var args []any
	if id != 0 {
		query += " WHERE q.id = ?"
		args = append(args, id)
	}
	query += " ORDER BY q.id"

	questionnaires, err := scanQuestionnaires(ctx, q, query, args...)
	if err != nil {
		return nil, err
	}
	if len(questionnaires) == 0 {
		return questionnaires, nil
	}

	answerQuery := "SELECT id, value, questionnaire_id FROM answer"
	if id != 0 {
		answerQuery += " WHERE questionnaire_id = ?"
	}
	answerQuery += " ORDER BY id"

	answers, err := scanAnswers(ctx, q, answerQuery, args...)
	if err != nil {
		return nil, err
	}

	index := make(map[int64]int, len(questionnaires))
	for i := range questionnaires {
		index[questionnaires[i].ID] = i
	}
	for _, a := range answers {
		if i, ok := index[a.QuestionnaireID]; ok {
			questionnaires[i].Answers = append(questionnaires[i].Answers, a)
		}
	}

	return questionnaires, nil
}

func scanQuestionnaires(ctx context.Context, q db.Querier, query string, args ...any) ([]models.Questionnaire, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questionnaires := []models.Questionnaire{}
	for rows.Next() {
		var qn models.Questionnaire
		var user models.User
		if err := rows.Scan(&qn.ID, &qn.UserID, &user.Email); err != nil {
			return nil, err
		}
		user.ID = qn.UserID
		qn.User = &user
		qn.Answers = []models.Answer{}
		questionnaires = append(questionnaires, qn)
	}
	return questionnaires, rows.Err()
}

func scanAnswers(ctx context.Context, q db.Querier, query string, args ...any) ([]models.Answer, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	answers := []models.Answer{}
	for rows.Next() {
		var a models.Answer
		if err := rows.Scan(&a.ID, &a.Value, &a.QuestionnaireID); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

func insertAnswers(ctx context.Context, tx *db.Tx, questionnaireID int64, answers []models.AnswerRequest) error {
	for _, a := range answers {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO answer (value, questionnaire_id)
			VALUES (?, ?)
		`, a.Value, questionnaireID)
		if err != nil {
			return err
		}
	}
	return nil
}

func questionnaireExists(ctx context.Context, q db.Querier, id int64) (bool, error) {
	return db.Exists(ctx, q, "SELECT 1 FROM questionnaire WHERE id = ?", id)
}

func userExists(ctx context.Context, q db.Querier, id string) (bool, error) {
	return db.Exists(ctx, q, "SELECT 1 FROM app_user WHERE id = ?", id)
}
