package http

import "time"

// Request and response bodies for the dispatch HTTP API.

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type pointBody struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type createDeliveryRequest struct {
	OrderID string `json:"order_id"`
}

type createDeliveryResponse struct {
	ID string `json:"id"`
}

type assignDriverRequest struct {
	DriverID string `json:"driver_id"`
}

type updateStatusRequest struct {
	Status   string     `json:"status"`
	Notes    *string    `json:"notes,omitempty"`
	Location *pointBody `json:"location,omitempty"`
}

type driverLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type deliveryLocationRequest struct {
	DriverID  string  `json:"driver_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type nearbyDriverResponse struct {
	DriverID   string    `json:"driver_id"`
	Location   pointBody `json:"location"`
	DistanceKm float64   `json:"distance_km"`
}

type nearbyDeliveryResponse struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id"`
	Status      string    `json:"status"`
	Destination pointBody `json:"destination"`
	DistanceKm  float64   `json:"distance_km"`
}

type driverLocationResponse struct {
	DriverID   string    `json:"driver_id"`
	Location   pointBody `json:"location"`
	RecordedAt time.Time `json:"recorded_at"`
	IsActive   bool      `json:"is_active"`
}

type timelineEventResponse struct {
	EventID   string     `json:"event_id"`
	Type      string     `json:"type"`
	Timestamp time.Time  `json:"timestamp"`
	Notes     *string    `json:"notes,omitempty"`
	Location  *pointBody `json:"location,omitempty"`
}
