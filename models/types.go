package models

// Questionnaire constants
const (
	// QuestionnaireLength is the number of answers a submission must carry.
	QuestionnaireLength = 20

	// RiskThreshold is the score at or above which a questionnaire counts as at risk.
	RiskThreshold = 7

	// RiskAnswerValue is the answer value that contributes to the risk score.
	RiskAnswerValue = 1
)

// Request types

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AnswerRequest struct {
	Value int `json:"value"`
}

type SubmitQuestionnaireRequest struct {
	Answers []AnswerRequest `json:"answers" validate:"required,len=20"`
}

// Answers is optional; when present it replaces the stored set.
type UpdateQuestionnaireRequest struct {
	ID      int64           `json:"id"`
	UserID  string          `json:"userId" validate:"required"`
	Answers []AnswerRequest `json:"answers,omitempty" validate:"omitempty,len=20"`
}

type CreateAnswerRequest struct {
	Value           int   `json:"value"`
	QuestionnaireID int64 `json:"questionnaireId" validate:"required"`
}

type UpdateAnswerRequest struct {
	ID              int64 `json:"id"`
	Value           int   `json:"value"`
	QuestionnaireID int64 `json:"questionnaireId" validate:"required"`
}

// Response types

type AuthResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

type SubmitQuestionnaireResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// Domain types

type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Never expose in JSON
}

type Answer struct {
	ID              int64 `json:"id"`
	Value           int   `json:"value"`
	QuestionnaireID int64 `json:"questionnaireId"`
}

type Questionnaire struct {
	ID      int64    `json:"id"`
	UserID  string   `json:"userId"`
	User    *User    `json:"user,omitempty"`
	Answers []Answer `json:"answers"`
}

// Metrics types

type PersonalMetrics struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Max     int     `json:"max"`
	History []int   `json:"history"`
}

type GlobalMetrics struct {
	Average        float64     `json:"average"`
	PercentageRisk float64     `json:"percentageRisk"`
	Total          int         `json:"total"`
	Distribution   map[int]int `json:"distribution"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
