// Package services defines the [Catalog] interface for upstream football data providers and implements it for football-data.org.
//
// # Catalog Interface
//
// The scanner consumes the upstream exclusively through [Catalog], so tests and
// alternative providers can substitute the real API without touching scan logic.
//
// # football-data.org Implementation
//
// [FootballDataService] talks to the v4 REST API using a single static token
// sent as an X-Auth-Token header on every request. There is no OAuth flow.
//
// An empty token is not a constructor error: every call returns
// [shared.ErrMissingCredentials] instead, which the scanner absorbs into empty
// results. The worst outcome of a missing or invalid token is an empty scan.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrMissingCredentials] : no API token configured
//   - [shared.ErrAPIRequest] : non-2xx response from the upstream
//
// Transport failures are wrapped with context. Callers that need fail-soft
// behavior (the scanner) treat any error as an empty result set.
package services
