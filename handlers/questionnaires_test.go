// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/danielhkuo/riskcheck/middleware"
	"github.com/danielhkuo/riskcheck/models"
	"github.com/danielhkuo/riskcheck/testutil"
)

func TestSubmitQuestionnaire(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewQuestionnaireHandler(db, cfg)
	submit := middleware.RequireAuth(cfg.JWTSecret, handler.SubmitQuestionnaire)
	userID := testutil.CreateTestUser(t, db, "submit@example.com")

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
	}{
		{"exactly 20 answers", models.SubmitQuestionnaireRequest{Answers: testutil.RiskAnswers(7)}, http.StatusOK},
		{"19 answers", models.SubmitQuestionnaireRequest{Answers: make([]models.AnswerRequest, 19)}, http.StatusBadRequest},
		{"21 answers", models.SubmitQuestionnaireRequest{Answers: make([]models.AnswerRequest, 21)}, http.StatusBadRequest},
		{"no answers", models.SubmitQuestionnaireRequest{Answers: []models.AnswerRequest{}}, http.StatusBadRequest},
		{"missing answers", map[string]string{}, http.StatusBadRequest},
		{"invalid JSON", "not json", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.CountRows(t, db, "SELECT COUNT(*) FROM questionnaire")

			req := testutil.MakeRequest("POST", "/api/questionnaire", tt.body, testutil.AuthHeader(t, cfg, userID))
			w := httptest.NewRecorder()
			submit(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			after := testutil.CountRows(t, db, "SELECT COUNT(*) FROM questionnaire")
			if tt.expectedStatus != http.StatusOK {
				if after != before {
					t.Errorf("rejected submission must not be stored")
				}
				return
			}

			var resp models.SubmitQuestionnaireResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.ID <= 0 || resp.Message == "" {
				t.Errorf("unexpected response %+v", resp)
			}
			if after != before+1 {
				t.Errorf("expected one new questionnaire, got %d -> %d", before, after)
			}

			answers := testutil.CountRows(t, db, "SELECT COUNT(*) FROM answer WHERE questionnaire_id = ?", resp.ID)
			if answers != models.QuestionnaireLength {
				t.Errorf("expected %d answers, got %d", models.QuestionnaireLength, answers)
			}
		})
	}
}

func TestSubmitQuestionnaire_UpdatesMetrics(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewQuestionnaireHandler(db, cfg)
	userID := testutil.CreateTestUser(t, db, "metrics@example.com")
	testutil.CreateTestQuestionnaire(t, db, userID, testutil.RiskAnswers(3))

	req := testutil.MakeRequest("POST", "/api/questionnaire",
		models.SubmitQuestionnaireRequest{Answers: testutil.RiskAnswers(7)},
		testutil.AuthHeader(t, cfg, userID))
	w := httptest.NewRecorder()
	middleware.RequireAuth(cfg.JWTSecret, handler.SubmitQuestionnaire)(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	scores, err := LoadScores(req.Context(), db, userID)
	if err != nil {
		t.Fatal(err)
	}
	m := ComputePersonalMetrics(scores)
	if m.Count != 2 || m.History[len(m.History)-1] != 7 {
		t.Errorf("new submission not reflected: %+v", m)
	}

	global := ComputeGlobalMetrics(scores)
	if global.PercentageRisk != 50 {
		t.Errorf("score 7 should count as at risk, got %f", global.PercentageRisk)
	}
}

func TestSubmitQuestionnaire_UnknownUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewQuestionnaireHandler(db, cfg)

	req := testutil.MakeRequest("POST", "/api/questionnaire",
		models.SubmitQuestionnaireRequest{Answers: testutil.RiskAnswers(1)},
		testutil.AuthHeader(t, cfg, "deleted-user"))
	w := httptest.NewRecorder()
	middleware.RequireAuth(cfg.JWTSecret, handler.SubmitQuestionnaire)(w, req)

	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestGetAndListQuestionnaires(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewQuestionnaireHandler(db, testutil.GetTestConfig())
	userID := testutil.CreateTestUser(t, db, "owner@example.com")
	first := testutil.CreateTestQuestionnaire(t, db, userID, testutil.RiskAnswers(4))
	testutil.CreateTestQuestionnaire(t, db, userID, testutil.RiskAnswers(9))

	t.Run("list", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ListQuestionnaires(w, testutil.MakeRequest("GET", "/api/questionnaire", nil, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var list []models.Questionnaire
		testutil.AssertJSON(t, w, &list)
		if len(list) != 2 {
			t.Fatalf("expected 2 questionnaires, got %d", len(list))
		}
		for _, q := range list {
			if len(q.Answers) != models.QuestionnaireLength {
				t.Errorf("questionnaire %d has %d answers", q.ID, len(q.Answers))
			}
			if q.User == nil || q.User.Email != "owner@example.com" {
				t.Errorf("questionnaire %d missing owner: %+v", q.ID, q.User)
			}
		}
	})

	t.Run("get", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/api/questionnaire/"+strconv.FormatInt(first, 10), nil, nil)
		req.SetPathValue("id", strconv.FormatInt(first, 10))
		w := httptest.NewRecorder()
		handler.GetQuestionnaire(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var q models.Questionnaire
		testutil.AssertJSON(t, w, &q)
		if q.ID != first || q.UserID != userID {
			t.Errorf("unexpected questionnaire %+v", q)
		}
		values := make([]int, len(q.Answers))
		for i, a := range q.Answers {
			values[i] = a.Value
			if a.QuestionnaireID != first {
				t.Errorf("answer %d belongs to %d", a.ID, a.QuestionnaireID)
			}
		}
		if RiskScore(values) != 4 {
			t.Errorf("expected score 4, got %d", RiskScore(values))
		}
	})

	t.Run("get missing and invalid", func(t *testing.T) {
		for id, status := range map[string]int{"999": http.StatusNotFound, "abc": http.StatusBadRequest, "0": http.StatusBadRequest} {
			req := testutil.MakeRequest("GET", "/api/questionnaire/"+id, nil, nil)
			req.SetPathValue("id", id)
			w := httptest.NewRecorder()
			handler.GetQuestionnaire(w, req)
			testutil.AssertStatus(t, w, status)
		}
	})
}

func TestUpdateQuestionnaire(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewQuestionnaireHandler(db, cfg)
	update := middleware.RequireAuth(cfg.JWTSecret, handler.UpdateQuestionnaire)

	owner := testutil.CreateTestUser(t, db, "owner@example.com")
	heir := testutil.CreateTestUser(t, db, "heir@example.com")
	id := testutil.CreateTestQuestionnaire(t, db, owner, testutil.RiskAnswers(2))
	idStr := strconv.FormatInt(id, 10)

	tests := []struct {
		name           string
		pathID         string
		body           interface{}
		expectedStatus int
	}{
		{"path/body mismatch", idStr, models.UpdateQuestionnaireRequest{ID: id + 1, UserID: heir}, http.StatusBadRequest},
		{"missing user", idStr, models.UpdateQuestionnaireRequest{ID: id}, http.StatusBadRequest},
		{"unknown user", idStr, models.UpdateQuestionnaireRequest{ID: id, UserID: "ghost"}, http.StatusBadRequest},
		{"nonexistent questionnaire", "999", models.UpdateQuestionnaireRequest{ID: 999, UserID: heir}, http.StatusNotFound},
		{"invalid JSON", idStr, "oops", http.StatusBadRequest},
		{"short answer set", idStr, models.UpdateQuestionnaireRequest{ID: id, UserID: heir, Answers: make([]models.AnswerRequest, 5)}, http.StatusBadRequest},
		{"reassign owner", idStr, models.UpdateQuestionnaireRequest{ID: id, UserID: heir}, http.StatusNoContent},
		{"same owner again", idStr, models.UpdateQuestionnaireRequest{ID: id, UserID: heir}, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("PUT", "/api/questionnaire/"+tt.pathID, tt.body, testutil.AuthHeader(t, cfg, owner))
			req.SetPathValue("id", tt.pathID)
			w := httptest.NewRecorder()
			update(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	var userID string
	if err := db.QueryRowContext(t.Context(), "SELECT user_id FROM questionnaire WHERE id = ?", id).Scan(&userID); err != nil {
		t.Fatal(err)
	}
	if userID != heir {
		t.Errorf("expected owner %s, got %s", heir, userID)
	}
	if n := testutil.CountRows(t, db, "SELECT COUNT(*) FROM answer WHERE questionnaire_id = ?", id); n != models.QuestionnaireLength {
		t.Errorf("answers must be untouched without an answers field, got %d", n)
	}
}

func TestUpdateQuestionnaire_ReplacesAnswers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewQuestionnaireHandler(db, cfg)
	owner := testutil.CreateTestUser(t, db, "owner@example.com")
	id := testutil.CreateTestQuestionnaire(t, db, owner, testutil.RiskAnswers(2))
	idStr := strconv.FormatInt(id, 10)

	body := models.UpdateQuestionnaireRequest{ID: id, UserID: owner, Answers: testutil.RiskAnswers(15)}
	req := testutil.MakeRequest("PUT", "/api/questionnaire/"+idStr, body, testutil.AuthHeader(t, cfg, owner))
	req.SetPathValue("id", idStr)
	w := httptest.NewRecorder()
	middleware.RequireAuth(cfg.JWTSecret, handler.UpdateQuestionnaire)(w, req)
	testutil.AssertStatus(t, w, http.StatusNoContent)

	scores, err := LoadScores(t.Context(), db, owner)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 || scores[0] != 15 {
		t.Errorf("expected replaced score 15, got %v", scores)
	}
	if n := testutil.CountRows(t, db, "SELECT COUNT(*) FROM answer"); n != models.QuestionnaireLength {
		t.Errorf("old answers must be removed, found %d", n)
	}
}

func TestDeleteQuestionnaire(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewQuestionnaireHandler(db, cfg)
	answers := NewAnswerHandler(db, cfg)
	del := middleware.RequireAuth(cfg.JWTSecret, handler.DeleteQuestionnaire)

	owner := testutil.CreateTestUser(t, db, "owner@example.com")
	id := testutil.CreateTestQuestionnaire(t, db, owner, testutil.RiskAnswers(5))
	keep := testutil.CreateTestQuestionnaire(t, db, owner, testutil.RiskAnswers(1))
	idStr := strconv.FormatInt(id, 10)

	var answerID int64
	if err := db.QueryRowContext(t.Context(), "SELECT MIN(id) FROM answer WHERE questionnaire_id = ?", id).Scan(&answerID); err != nil {
		t.Fatal(err)
	}

	req := testutil.MakeRequest("DELETE", "/api/questionnaire/"+idStr, nil, testutil.AuthHeader(t, cfg, owner))
	req.SetPathValue("id", idStr)
	w := httptest.NewRecorder()
	del(w, req)
	testutil.AssertStatus(t, w, http.StatusNoContent)

	if n := testutil.CountRows(t, db, "SELECT COUNT(*) FROM answer WHERE questionnaire_id = ?", id); n != 0 {
		t.Errorf("expected no orphan answers, found %d", n)
	}
	if n := testutil.CountRows(t, db, "SELECT COUNT(*) FROM answer WHERE questionnaire_id = ?", keep); n != models.QuestionnaireLength {
		t.Errorf("other questionnaire lost answers, found %d", n)
	}

	// The deleted questionnaire's answers are no longer retrievable
	answerStr := strconv.FormatInt(answerID, 10)
	getReq := testutil.MakeRequest("GET", "/api/answer/"+answerStr, nil, nil)
	getReq.SetPathValue("id", answerStr)
	w = httptest.NewRecorder()
	answers.GetAnswer(w, getReq)
	testutil.AssertStatus(t, w, http.StatusNotFound)

	// Deleting again reports not found
	req = testutil.MakeRequest("DELETE", "/api/questionnaire/"+idStr, nil, testutil.AuthHeader(t, cfg, owner))
	req.SetPathValue("id", idStr)
	w = httptest.NewRecorder()
	del(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestQuestionnaireResolveUpdateMiss(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewQuestionnaireHandler(db, testutil.GetTestConfig())
	owner := testutil.CreateTestUser(t, db, "owner@example.com")
	id := testutil.CreateTestQuestionnaire(t, db, owner, testutil.RiskAnswers(3))

	tests := []struct {
		name           string
		id             int64
		expectedStatus int
	}{
		{"row still present", id, http.StatusConflict},
		{"row gone", id + 1000, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("PUT", "/api/questionnaire/"+strconv.FormatInt(tt.id, 10), nil, nil)
			w := httptest.NewRecorder()
			handler.resolveUpdateMiss(w, req, tt.id)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}
