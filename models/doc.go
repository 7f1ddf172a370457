// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response and domain types for the riskcheck API.

# Domain Types

  - User: A registered account (password hash never serialized)
  - Questionnaire: One submission of QuestionnaireLength answers, owned by a user
  - Answer: A single item value (0 or 1 by convention)

# Scoring

A questionnaire's risk score is the number of answers equal to
RiskAnswerValue. Scores at or above RiskThreshold count towards the global
percentageRisk.

# Metrics

	PersonalMetrics{Count, Average, Max, History}
	GlobalMetrics{Average, PercentageRisk, Total, Distribution}

Distribution maps a score to how many questionnaires have it; JSON encodes
the keys as decimal strings.

# Validation

Request types carry validate tags consumed by middleware.ValidateStruct.
SubmitQuestionnaireRequest requires exactly 20 answers.

# Error Response

All errors return ErrorResponse:

	{"error": "Bad Request", "message": "exactly 20 answers are required"}
*/
package models
