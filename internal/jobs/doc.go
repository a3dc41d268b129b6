// Package jobs implements background jobs for the Agenda API.
//
// Jobs run independently of HTTP request handling and share one shape:
//
//	job.Start()          // idempotent, launches the loop
//	job.RunOnce(ctx)     // one pass, for tests or manual triggers
//	job.IsRunning()
//	job.Stop()           // idempotent, waits for the loop to exit
//
// # Jobs
//
//   - SnapshotWriter: persists the in-memory store to its JSON snapshot on
//     an interval and once more on Stop.
//
// Jobs log errors through slog and keep running.
package jobs
