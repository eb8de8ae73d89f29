package http

import (
	"net/http"
	"strconv"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server handles HTTP requests for the dispatch API.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createDeliveryHandler         commands.CreateDeliveryCommandHandler
	assignDriverHandler           commands.AssignDriverCommandHandler
	assignNearestDriverHandler    commands.AssignNearestDriverCommandHandler
	updateDeliveryStatusHandler   commands.UpdateDeliveryStatusCommandHandler
	updateDriverLocationHandler   commands.UpdateDriverLocationCommandHandler
	recordDeliveryLocationHandler commands.RecordDeliveryLocationCommandHandler

	// Query handlers
	findNearbyDriversHandler    queries.FindNearbyDriversQueryHandler
	findNearbyDeliveriesHandler queries.FindNearbyDeliveriesQueryHandler
	getDriverLocationHandler    queries.GetDriverLocationQueryHandler
	getDeliveryTimelineHandler  queries.GetDeliveryTimelineQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createDeliveryHandler commands.CreateDeliveryCommandHandler,
	assignDriverHandler commands.AssignDriverCommandHandler,
	assignNearestDriverHandler commands.AssignNearestDriverCommandHandler,
	updateDeliveryStatusHandler commands.UpdateDeliveryStatusCommandHandler,
	updateDriverLocationHandler commands.UpdateDriverLocationCommandHandler,
	recordDeliveryLocationHandler commands.RecordDeliveryLocationCommandHandler,
	findNearbyDriversHandler queries.FindNearbyDriversQueryHandler,
	findNearbyDeliveriesHandler queries.FindNearbyDeliveriesQueryHandler,
	getDriverLocationHandler queries.GetDriverLocationQueryHandler,
	getDeliveryTimelineHandler queries.GetDeliveryTimelineQueryHandler,
) *Server {
	return &Server{
		createDeliveryHandler:         createDeliveryHandler,
		assignDriverHandler:           assignDriverHandler,
		assignNearestDriverHandler:    assignNearestDriverHandler,
		updateDeliveryStatusHandler:   updateDeliveryStatusHandler,
		updateDriverLocationHandler:   updateDriverLocationHandler,
		recordDeliveryLocationHandler: recordDeliveryLocationHandler,
		findNearbyDriversHandler:      findNearbyDriversHandler,
		findNearbyDeliveriesHandler:   findNearbyDeliveriesHandler,
		getDriverLocationHandler:      getDriverLocationHandler,
		getDeliveryTimelineHandler:    getDeliveryTimelineHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/deliveries", s.CreateDelivery)
	v1.POST("/deliveries/:id/assign", s.AssignDriver)
	v1.POST("/deliveries/:id/assign-nearest", s.AssignNearestDriver)
	v1.POST("/deliveries/:id/status", s.UpdateDeliveryStatus)
	v1.POST("/deliveries/:id/location", s.RecordDeliveryLocation)
	v1.GET("/deliveries/nearby", s.FindNearbyDeliveries)
	v1.GET("/deliveries/:id/timeline", s.GetDeliveryTimeline)

	v1.POST("/drivers/:id/location", s.UpdateDriverLocation)
	v1.GET("/drivers/nearby", s.FindNearbyDrivers)
	v1.GET("/drivers/:id/location", s.GetDriverLocation)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// CreateDelivery handles POST /api/v1/deliveries - creates a delivery from a paid order.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	var req createDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidError("body"))
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return writeError(ctx, err)
	}

	deliveryID := kernel.NewUUID()
	cmd, err := commands.NewCreateDeliveryCommand(deliveryID, orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.createDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	metrics.DeliveriesCreatedTotal.Inc()
	return ctx.JSON(http.StatusCreated, createDeliveryResponse{ID: deliveryID.String()})
}

// AssignDriver handles POST /api/v1/deliveries/:id/assign - assigns a specific driver.
func (s *Server) AssignDriver(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req assignDriverRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidError("body"))
	}

	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAssignDriverCommand(deliveryID, driverID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.assignDriverHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	metrics.StatusTransitionsTotal.WithLabelValues(string(delivery.StatusAssigned)).Inc()
	return ctx.NoContent(http.StatusNoContent)
}

// AssignNearestDriver handles POST /api/v1/deliveries/:id/assign-nearest -
// assigns the closest available driver to the pickup point.
func (s *Server) AssignNearestDriver(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAssignNearestDriverCommand(deliveryID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.assignNearestDriverHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	metrics.StatusTransitionsTotal.WithLabelValues(string(delivery.StatusAssigned)).Inc()
	return ctx.NoContent(http.StatusNoContent)
}

// UpdateDeliveryStatus handles POST /api/v1/deliveries/:id/status - transitions a delivery.
func (s *Server) UpdateDeliveryStatus(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req updateStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidError("body"))
	}

	var location *kernel.GeoPoint
	if req.Location != nil {
		point, err := kernel.NewGeoPoint(req.Location.Latitude, req.Location.Longitude)
		if err != nil {
			return writeError(ctx, err)
		}
		location = &point
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(
		deliveryID, delivery.Status(req.Status), req.Notes, location)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.updateDeliveryStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	metrics.StatusTransitionsTotal.WithLabelValues(req.Status).Inc()
	return ctx.NoContent(http.StatusNoContent)
}

// UpdateDriverLocation handles POST /api/v1/drivers/:id/location - records a driver ping.
func (s *Server) UpdateDriverLocation(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req driverLocationRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidError("body"))
	}

	point, err := kernel.NewGeoPoint(req.Latitude, req.Longitude)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateDriverLocationCommand(driverID, point)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.updateDriverLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	metrics.DriverLocationUpdatesTotal.Inc()
	return ctx.NoContent(http.StatusNoContent)
}

// RecordDeliveryLocation handles POST /api/v1/deliveries/:id/location -
// records an in-transit location sample from the assigned driver.
func (s *Server) RecordDeliveryLocation(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req deliveryLocationRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidError("body"))
	}

	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return writeError(ctx, err)
	}

	point, err := kernel.NewGeoPoint(req.Latitude, req.Longitude)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewRecordDeliveryLocationCommand(deliveryID, driverID, point)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.recordDeliveryLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// FindNearbyDrivers handles GET /api/v1/drivers/nearby - finds active drivers in range.
func (s *Server) FindNearbyDrivers(ctx echo.Context) error {
	center, err := parseCenter(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	radiusKm, err := parseRadius(ctx, queries.DefaultDriverSearchRadiusKm)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewFindNearbyDriversQuery(center, radiusKm)
	if err != nil {
		return writeError(ctx, err)
	}

	metrics.ProximityQueriesTotal.WithLabelValues("drivers").Inc()
	timer := prometheus.NewTimer(metrics.ProximityQueryDuration)
	drivers, err := s.findNearbyDriversHandler.Handle(ctx.Request().Context(), query)
	timer.ObserveDuration()
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]nearbyDriverResponse, len(drivers))
	for i, driver := range drivers {
		response[i] = nearbyDriverResponse{
			DriverID: driver.DriverID.String(),
			Location: pointBody{
				Latitude:  driver.Location.Latitude(),
				Longitude: driver.Location.Longitude(),
			},
			DistanceKm: driver.DistanceKm,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// FindNearbyDeliveries handles GET /api/v1/deliveries/nearby - finds deliveries
// destined within range, optionally filtered by status.
func (s *Server) FindNearbyDeliveries(ctx echo.Context) error {
	center, err := parseCenter(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	radiusKm, err := parseRadius(ctx, queries.DefaultDeliverySearchRadiusKm)
	if err != nil {
		return writeError(ctx, err)
	}

	var status *delivery.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed := delivery.Status(raw)
		status = &parsed
	}

	query, err := queries.NewFindNearbyDeliveriesQuery(center, radiusKm, status)
	if err != nil {
		return writeError(ctx, err)
	}

	metrics.ProximityQueriesTotal.WithLabelValues("deliveries").Inc()
	timer := prometheus.NewTimer(metrics.ProximityQueryDuration)
	deliveries, err := s.findNearbyDeliveriesHandler.Handle(ctx.Request().Context(), query)
	timer.ObserveDuration()
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]nearbyDeliveryResponse, len(deliveries))
	for i, item := range deliveries {
		response[i] = nearbyDeliveryResponse{
			ID:      item.ID.String(),
			OrderID: item.OrderID.String(),
			Status:  string(item.Status),
			Destination: pointBody{
				Latitude:  item.Destination.Latitude(),
				Longitude: item.Destination.Longitude(),
			},
			DistanceKm: item.DistanceKm,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetDriverLocation handles GET /api/v1/drivers/:id/location - returns the current location.
func (s *Server) GetDriverLocation(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetDriverLocationQuery(driverID)
	if err != nil {
		return writeError(ctx, err)
	}

	location, err := s.getDriverLocationHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, driverLocationResponse{
		DriverID: location.DriverID.String(),
		Location: pointBody{
			Latitude:  location.Location.Latitude(),
			Longitude: location.Location.Longitude(),
		},
		RecordedAt: location.RecordedAt,
		IsActive:   location.IsActive,
	})
}

// GetDeliveryTimeline handles GET /api/v1/deliveries/:id/timeline - returns the event history.
func (s *Server) GetDeliveryTimeline(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetDeliveryTimelineQuery(deliveryID)
	if err != nil {
		return writeError(ctx, err)
	}

	events, err := s.getDeliveryTimelineHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]timelineEventResponse, len(events))
	for i, event := range events {
		item := timelineEventResponse{
			EventID:   event.EventID.String(),
			Type:      string(event.Type),
			Timestamp: event.Timestamp,
			Notes:     event.Notes,
		}
		if event.Location != nil {
			item.Location = &pointBody{
				Latitude:  event.Location.Latitude(),
				Longitude: event.Location.Longitude(),
			}
		}
		response[i] = item
	}

	return ctx.JSON(http.StatusOK, response)
}

func parseCenter(ctx echo.Context) (kernel.GeoPoint, error) {
	latitude, err := strconv.ParseFloat(ctx.QueryParam("lat"), 64)
	if err != nil {
		return kernel.GeoPoint{}, errs.NewValueIsInvalidErrorWithCause("lat", err)
	}

	longitude, err := strconv.ParseFloat(ctx.QueryParam("lon"), 64)
	if err != nil {
		return kernel.GeoPoint{}, errs.NewValueIsInvalidErrorWithCause("lon", err)
	}

	return kernel.NewGeoPoint(latitude, longitude)
}

func parseRadius(ctx echo.Context, defaultKm float64) (float64, error) {
	raw := ctx.QueryParam("radius_km")
	if raw == "" {
		return defaultKm, nil
	}

	radiusKm, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("radius_km", err)
	}
	return radiusKm, nil
}
