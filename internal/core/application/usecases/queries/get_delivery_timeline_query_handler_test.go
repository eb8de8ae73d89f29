package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/deliveryrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetDeliveryTimelineQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *deliveryrepo.GormDeliveryRepository
	handler   queries.GetDeliveryTimelineQueryHandler
}

func (suite *GetDeliveryTimelineQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&deliveryrepo.DeliveryDTO{}, &deliveryrepo.TimelineEventDTO{})
	suite.Require().NoError(err)

	suite.repo = deliveryrepo.NewGormDeliveryRepository(db, noopTracker{})
	suite.handler = queries.NewGetDeliveryTimelineQueryHandler(db)
}

func (suite *GetDeliveryTimelineQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetDeliveryTimelineQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE deliveries, delivery_timeline_events CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetDeliveryTimelineQueryHandlerTestSuite) TestHandle_ReturnsEventsOldestFirst() {
	destination, err := kernel.NewGeoPoint(40.7614, -73.9776)
	suite.Require().NoError(err)

	aggregate, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), delivery.OrderSnapshot{
		Destination: &destination,
		TotalPrice:  25.0,
		TotalItems:  2,
	})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(context.Background(), aggregate))

	suite.Require().NoError(aggregate.Assign(kernel.NewUUID()))
	suite.Require().NoError(suite.repo.Update(context.Background(), aggregate))

	notes := "picked up"
	suite.Require().NoError(aggregate.ChangeStatus(delivery.StatusOutForDelivery, &notes, nil))
	suite.Require().NoError(suite.repo.Update(context.Background(), aggregate))

	query, err := queries.NewGetDeliveryTimelineQuery(aggregate.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal(delivery.EventCreated, result[0].Type)
	suite.Equal(delivery.EventAssigned, result[1].Type)
	suite.Equal(delivery.EventOutForDelivery, result[2].Type)
	suite.Require().NotNil(result[2].Notes)
	suite.Equal("picked up", *result[2].Notes)
	suite.True(result[0].Timestamp.Before(result[2].Timestamp) ||
		result[0].Timestamp.Equal(result[2].Timestamp))
}

func (suite *GetDeliveryTimelineQueryHandlerTestSuite) TestHandle_UnknownDelivery_ReturnsNotFound() {
	query, err := queries.NewGetDeliveryTimelineQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetDeliveryTimelineQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetDeliveryTimelineQuery{}

	_, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetDeliveryTimelineQuery constructor")
}

func TestGetDeliveryTimelineQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetDeliveryTimelineQueryHandlerTestSuite))
}
