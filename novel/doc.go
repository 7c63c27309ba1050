// Package novel is the high-level client for the novel-writing
// platform's AI endpoints. It covers the three ways the platform
// reports long-running AI work back to a client:
//
//   - streaming POST endpoints that produce text incrementally
//     (PolishStream, GenerateStream),
//   - GET event streams attached to an already-running task
//     (WatchTask),
//   - background jobs driven by trigger-then-poll (AnalyzeChapter).
//
// Every request carries a generated X-Request-ID and the configured
// bearer token. Chapter and project CRUD is out of scope; this package
// only speaks the task-progress surfaces.
package novel
