// Package jobs provides scheduled background tasks for the marketplace.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// BoardRefreshJob polls the status board of every supplier that has an open
// board view. The HTTP layer watches a supplier when its board is requested
// and invalidates it after each status write, so a refresh started before the
// write never overwrites the newer state.
//
// # Usage
//
//	boardJob := jobs.NewBoardRefreshJob(boardHandler, cfg.BoardRefreshSchedule, logger)
//	jobManager := jobs.NewJobManager(boardJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - A failed refresh is logged and the previous snapshot is kept
//   - Failed job starts stop any already running jobs
package jobs
