// Package http implements the REST transport of the progress server.
//
// Routes:
//
//	GET    /api/version/        server build version, no auth
//	GET    /metrics             Prometheus metrics, no auth
//	POST   /api/progress/       store a full snapshot
//	POST   /api/progress/delta  apply a delta to the stored snapshot
//	GET    /api/progress/       load the stored snapshot
//	GET    /api/progress/meta   version and timestamps of the stored snapshot
//	DELETE /api/progress/       remove the player's progress
//
// Progress routes require a bearer JWT whose subject is the player id.
// Bodies of both save routes carry an HMAC of the payload which is checked
// before the request reaches the service layer.
package http
