// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/riskcheck/cliparse"
	"github.com/danielhkuo/riskcheck/db"
	"github.com/danielhkuo/riskcheck/handlers"
	"github.com/danielhkuo/riskcheck/middleware"
)

func NewRouter(conn *db.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(conn, cfg)
	questionnaireHandler := handlers.NewQuestionnaireHandler(conn, cfg)
	metricsHandler := handlers.NewMetricsHandler(conn, cfg)
	answerHandler := handlers.NewAnswerHandler(conn, cfg)

	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAuth(cfg.JWTSecret, next))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts
	mux.HandleFunc("POST /api/auth/register", middleware.WithLogging(accountHandler.Register))
	mux.HandleFunc("POST /api/auth/login", middleware.WithLogging(accountHandler.Login))
	mux.HandleFunc("GET /api/auth/me", authed(accountHandler.GetMe))

	// Questionnaires
	mux.HandleFunc("GET /api/questionnaire", middleware.WithLogging(questionnaireHandler.ListQuestionnaires))
	mux.HandleFunc("GET /api/questionnaire/{id}", middleware.WithLogging(questionnaireHandler.GetQuestionnaire))
	mux.HandleFunc("POST /api/questionnaire", authed(questionnaireHandler.SubmitQuestionnaire))
	mux.HandleFunc("PUT /api/questionnaire/{id}", authed(questionnaireHandler.UpdateQuestionnaire))
	mux.HandleFunc("DELETE /api/questionnaire/{id}", authed(questionnaireHandler.DeleteQuestionnaire))

	// Metrics
	mux.HandleFunc("GET /api/questionnaire/me/metrics", authed(metricsHandler.GetMyMetrics))
	mux.HandleFunc("GET /api/questionnaire/global/metrics", middleware.WithLogging(metricsHandler.GetGlobalMetrics))

	// Answers (administrative access)
	mux.HandleFunc("GET /api/answer", middleware.WithLogging(answerHandler.ListAnswers))
	mux.HandleFunc("GET /api/answer/{id}", middleware.WithLogging(answerHandler.GetAnswer))
	mux.HandleFunc("POST /api/answer", middleware.WithLogging(answerHandler.CreateAnswer))
	mux.HandleFunc("PUT /api/answer/{id}", middleware.WithLogging(answerHandler.UpdateAnswer))
	mux.HandleFunc("DELETE /api/answer/{id}", middleware.WithLogging(answerHandler.DeleteAnswer))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("riskcheck API v1"))
	})

	return mux
}
