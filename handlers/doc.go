// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the riskcheck API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - AccountHandler: Registration, login and the current user
  - QuestionnaireHandler: Submission, lookup, update and deletion
  - MetricsHandler: Personal and global risk statistics
  - AnswerHandler: Administrative CRUD over single answers

Handlers are created via constructor functions that accept *db.DB and Config:

	questionnaireHandler := handlers.NewQuestionnaireHandler(conn, cfg)

# Submissions

	POST /api/questionnaire → SubmitQuestionnaire (exactly 20 answers)

The questionnaire and its answers are written in one transaction. Any other
answer count is rejected with 400 before touching the database.

# Updates

PUT handlers compare the path id with the body id (400 on mismatch). An
UPDATE that touches no row is re-checked: a missing row yields 404, a row
that still exists yields 409.

# Metrics

Scores are computed in metrics.go:

	scores, err := LoadScores(ctx, conn, userID) // "" for all users
	personal := ComputePersonalMetrics(scores)
	global := ComputeGlobalMetrics(scores)

Scores come back in questionnaire id order, which is also the order of
history.

Authenticated handlers expect middleware.RequireAuth in front of them and
read the caller via middleware.UserIDFromContext.
*/
package handlers
