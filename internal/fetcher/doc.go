// Package fetcher provides the HTTP page retrieval capability consumed by
// the traversal engine and the page body saver.
//
// Design decision: Fetching lives in its own package, behind the
// crawler.Fetcher interface, because:
//  1. The engine's contract is "text or failure", nothing HTTP-specific
//  2. Tests replace it with deterministic fakes
//  3. Transport policy (timeouts, body limits, User-Agent) is configured in
//     exactly one place
package fetcher
