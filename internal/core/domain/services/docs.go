// Package services contains stateless domain services that coordinate
// behavior across aggregates, currently the DriverMatcher that pairs
// deliveries with the nearest available driver.
package services
