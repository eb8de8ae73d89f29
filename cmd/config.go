package cmd

import "time"

// Config carries all runtime settings for the dispatch service.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	AmqpURL      string
	AmqpExchange string

	// LocationMinInterval is the coalescing window for driver pings.
	LocationMinInterval time.Duration
	// LocationHistoryKeep is the per-driver history bound enforced by the
	// pruning job.
	LocationHistoryKeep int
	// LocationStaleAfter is how long a driver may stay silent before its
	// current location is deactivated.
	LocationStaleAfter time.Duration

	// DriverSearchRadiusKm is the radius used when matching the nearest
	// driver to a delivery.
	DriverSearchRadiusKm float64
}
