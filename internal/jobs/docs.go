// Package jobs provides scheduled background tasks for the dispatch
// service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations outside the request path.
//
// # Available Jobs
//
// 1. LocationPruningJob - Runs every minute to bound per-driver location
// history and deactivate locations of drivers that have gone silent.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(pruneHandler, logger, keepPerDriver, staleAfter)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
package jobs
