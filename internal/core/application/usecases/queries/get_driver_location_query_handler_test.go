package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/locationrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tracking"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetDriverLocationQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *locationrepo.GormDriverLocationRepository
	handler   queries.GetDriverLocationQueryHandler
}

func (suite *GetDriverLocationQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&locationrepo.DriverLocationDTO{})
	suite.Require().NoError(err)

	suite.repo = locationrepo.NewGormDriverLocationRepository(db)
	suite.handler = queries.NewGetDriverLocationQueryHandler(db)
}

func (suite *GetDriverLocationQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetDriverLocationQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE driver_locations").Error
	suite.Require().NoError(err)
}

func (suite *GetDriverLocationQueryHandlerTestSuite) TestHandle_ReturnsCurrentLocation() {
	driverID := kernel.NewUUID()
	base := time.Now().UTC().Truncate(time.Second)

	older, err := kernel.NewGeoPoint(40.7000, -74.0000)
	suite.Require().NoError(err)
	newer, err := kernel.NewGeoPoint(40.7200, -74.0200)
	suite.Require().NoError(err)

	for _, record := range []struct {
		point      kernel.GeoPoint
		recordedAt time.Time
	}{
		{older, base.Add(-time.Minute)},
		{newer, base},
	} {
		location, locErr := tracking.NewDriverLocation(
			kernel.NewUUID(), driverID, record.point, record.recordedAt)
		suite.Require().NoError(locErr)
		suite.Require().NoError(suite.repo.Add(context.Background(), location))
	}

	query, err := queries.NewGetDriverLocationQuery(driverID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.True(driverID.IsEqual(result.DriverID))
	isEqual, err := result.Location.IsEqual(newer)
	suite.Require().NoError(err)
	suite.True(isEqual)
	suite.WithinDuration(base, result.RecordedAt, time.Second)
	suite.True(result.IsActive)
}

func (suite *GetDriverLocationQueryHandlerTestSuite) TestHandle_UnknownDriver_ReturnsNotFound() {
	query, err := queries.NewGetDriverLocationQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetDriverLocationQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetDriverLocationQuery{}

	_, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetDriverLocationQuery constructor")
}

func TestGetDriverLocationQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetDriverLocationQueryHandlerTestSuite))
}
