// Package server runs the transports of the progress server: the REST API
// over HTTP and the gRPC health service. It binds listeners at construction,
// serves until a termination signal arrives and shuts everything down
// gracefully.
package server
