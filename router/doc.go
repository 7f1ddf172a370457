// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the riskcheck API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(conn, cfg)

# Routes

Accounts:

	POST /api/auth/register
	POST /api/auth/login
	GET  /api/auth/me                        (auth)

Questionnaires:

	GET    /api/questionnaire
	GET    /api/questionnaire/{id}
	POST   /api/questionnaire                (auth)
	PUT    /api/questionnaire/{id}           (auth)
	DELETE /api/questionnaire/{id}           (auth)
	GET    /api/questionnaire/me/metrics     (auth)
	GET    /api/questionnaire/global/metrics

Answers:

	GET    /api/answer
	GET    /api/answer/{id}
	POST   /api/answer
	PUT    /api/answer/{id}
	DELETE /api/answer/{id}

Utility:

	GET /health → "OK"
	GET /       → "riskcheck API v1"

(auth) routes require an "Authorization: Bearer <token>" header. All API
routes are wrapped with request logging.
*/
package router
