// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/riskcheck/cliparse"
	"github.com/danielhkuo/riskcheck/db"
	"github.com/danielhkuo/riskcheck/middleware"
	"github.com/danielhkuo/riskcheck/models"
)

type MetricsHandler struct {
	db  *db.DB
	cfg cliparse.Config
}

func NewMetricsHandler(conn *db.DB, cfg cliparse.Config) *MetricsHandler {
	return &MetricsHandler{db: conn, cfg: cfg}
}

// GetMyMetrics handles GET /api/questionnaire/me/metrics
func (h *MetricsHandler) GetMyMetrics(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	scores, err := LoadScores(r.Context(), h.db, userID)
	if err != nil {
		slog.Error("failed to load scores", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, ComputePersonalMetrics(scores))
}

// GetGlobalMetrics handles GET /api/questionnaire/global/metrics
func (h *MetricsHandler) GetGlobalMetrics(w http.ResponseWriter, r *http.Request) {
	scores, err := LoadScores(r.Context(), h.db, "")
	if err != nil {
		slog.Error("failed to load scores", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, ComputeGlobalMetrics(scores))
}

// LoadScores returns the risk score of every questionnaire owned by userID,
// or of every questionnaire when userID is empty, in questionnaire id order.
// A questionnaire without answers scores 0.
func LoadScores(ctx context.Context, q db.Querier, userID string) ([]int, error) {
	query := `
		SELECT q.id, a.value
		FROM questionnaire q
		LEFT JOIN answer a ON a.questionnaire_id = q.id`
	var args []any
	if userID != "" {
		query += " WHERE q.user_id = ?"
		args = append(args, userID)
	}
	query += " ORDER BY q.id, a.id"

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query answers: %w", err)
	}
	defer rows.Close()

	scores := []int{}
	var current int64
	var values []int
	for rows.Next() {
		var id int64
		var value sql.NullInt64
		if err := rows.Scan(&id, &value); err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}

		if id != current {
			if current != 0 {
				scores = append(scores, RiskScore(values))
			}
			current = id
			values = values[:0]
		}
		if value.Valid {
			values = append(values, int(value.Int64))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read answers: %w", err)
	}
	if current != 0 {
		scores = append(scores, RiskScore(values))
	}

	return scores, nil
}

// RiskScore counts the answers equal to models.RiskAnswerValue
func RiskScore(values []int) int {
	score := 0
	for _, v := range values {
		if v == models.RiskAnswerValue {
			score++
		}
	}
	return score
}

// ComputePersonalMetrics reduces one user's scores. History keeps the input order.
func ComputePersonalMetrics(scores []int) models.PersonalMetrics {
	if len(scores) == 0 {
		return models.PersonalMetrics{History: []int{}}
	}

	history := make([]int, len(scores))
	copy(history, scores)

	return models.PersonalMetrics{
		Count:   len(scores),
		Average: mean(scores),
		Max:     maxScore(scores),
		History: history,
	}
}

// ComputeGlobalMetrics reduces the scores of every questionnaire
func ComputeGlobalMetrics(scores []int) models.GlobalMetrics {
	distribution := make(map[int]int)
	if len(scores) == 0 {
		return models.GlobalMetrics{Distribution: distribution}
	}

	atRisk := 0
	for _, s := range scores {
		distribution[s]++
		if s >= models.RiskThreshold {
			atRisk++
		}
	}

	return models.GlobalMetrics{
		Average:        mean(scores),
		PercentageRisk: 100.0 * float64(atRisk) / float64(len(scores)),
		Total:          len(scores),
		Distribution:   distribution,
	}
}

func mean(scores []int) float64 {
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return float64(sum) / float64(len(scores))
}

func maxScore(scores []int) int {
	m := scores[0]
	for _, s := range scores[1:] {
		if s > m {
			m = s
		}
	}
	return m
}

func answerValues(answers []models.AnswerRequest) []int {
	values := make([]int, len(answers))
	for i, a := range answers {
		values[i] = a.Value
	}
	return values
}
