// Package checkpoint persists harvest cursors so a scheduled ingestion
// script can resume where the previous run stopped. It defines the [Store]
// interface and provides two implementations:
//
//   - [MemoryStore]: cursors held in memory, lost on process exit. Useful
//     for tests and throwaway runs.
//   - [SQLiteStore]: cursors persisted in a SQLite database, the usual
//     choice for scripts run from cron.
//
// A Redis-backed store lives in the checkpoint/redis submodule. Custom
// backends can be created by implementing the [Store] interface.
package checkpoint
