// Package tracking contains the location-record entities feeding the
// proximity index: DriverLocation (periodic driver pings, bounded history,
// most-recent-wins current position) and DeliveryLocation (append-only
// in-transit samples for a delivery).
package tracking
