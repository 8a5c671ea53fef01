// Package config provides configuration loading, merging, and validation
// facilities for the client runtime and the progress server.
//
// Configuration is assembled from multiple sources in the following priority
// order (a field set by an earlier source is never overridden):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry points are [GetStructuredConfig] for the raw merged values,
// [GetClientConfig] for the client runtime and [GetServerConfig] for the
// progress server. The two views apply defaults and validate only what their
// process needs.
package config
