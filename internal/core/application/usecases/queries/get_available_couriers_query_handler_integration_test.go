package queries_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/courierrepo"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// noopTracker satisfies the repository's aggregate tracking without a unit
// of work; query tests only need persisted rows.
type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// GetAvailableCouriersQueryHandlerIntegrationTestSuite exercises the
// courier ranking query against a PostgreSQL container.
type GetAvailableCouriersQueryHandlerIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *courierrepo.GormCourierRepository
	handler    queries.GetAvailableCouriersQueryHandler
}

func (suite *GetAvailableCouriersQueryHandlerIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&courierrepo.CourierDTO{}))
}

func (suite *GetAvailableCouriersQueryHandlerIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE couriers").Error)

	suite.repository = courierrepo.NewGormCourierRepository(suite.db, noopTracker{})
	suite.handler = queries.NewGetAvailableCouriersQueryHandler(suite.db)
}

func (suite *GetAvailableCouriersQueryHandlerIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

// addCourierAt persists an available courier with a reported position.
func (suite *GetAvailableCouriersQueryHandlerIntegrationTestSuite) addCourierAt(
	name string, lat, lng float64,
) *courier.Courier {
	ctx := context.Background()

	c, err := courier.NewCourier(kernel.NewUUID(), name)
	suite.Require().NoError(err)

	point, err := kernel.NewGeoPoint(lat, lng)
	suite.Require().NoError(err)
	applied, err := c.RecordPosition(point, time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	suite.Require().True(applied)

	suite.Require().NoError(suite.repository.Add(ctx, c))
	return c
}

func (suite *GetAvailableCouriersQueryHandlerIntegrationTestSuite) origin() kernel.GeoPoint {
	point, err := kernel.NewGeoPoint(48.8566, 2.3522)
	suite.Require().NoError(err)
	return point
}

func (suite *GetAvailableCouriersQueryHandlerIntegrationTestSuite) TestHandle_OrdersByDistanceWithMeters() {
	near := suite.addCourierAt("Near", 48.8570, 2.3530)
	far := suite.addCourierAt("Far", 48.9000, 2.4500)

	query, err := queries.NewGetAvailableCouriersQuery(suite.origin())
	suite.Require().NoError(err)

	responses, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(responses, 2)

	suite.True(responses[0].ID.IsEqual(near.ID()))
	suite.True(responses[1].ID.IsEqual(far.ID()))

	suite.Require().NotNil(responses[0].DistanceMeters)
	suite.Require().NotNil(responses[1].DistanceMeters)
	suite.Less(*responses[0].DistanceMeters, *responses[1].DistanceMeters)
	suite.Require().NotNil(responses[0].Position)
	suite.Require().NotNil(responses[0].PositionAt)
}

func (suite *GetAvailableCouriersQueryHandlerIntegrationTestSuite) TestHandle_ExcludesOffDutyCouriers() {
	ctx := context.Background()
	onDuty := suite.addCourierAt("OnDuty", 48.8570, 2.3530)
	offDuty := suite.addCourierAt("OffDuty", 48.8570, 2.3530)

	suite.Require().NoError(offDuty.SetAvailability(false))
	suite.Require().NoError(suite.repository.Update(ctx, offDuty))

	query, err := queries.NewGetAvailableCouriersQuery(suite.origin())
	suite.Require().NoError(err)

	responses, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(responses, 1)
	suite.True(responses[0].ID.IsEqual(onDuty.ID()))
}

func (suite *GetAvailableCouriersQueryHandlerIntegrationTestSuite) TestHandle_PositionlessCourierRanksLastWithoutDistance() {
	ctx := context.Background()
	positioned := suite.addCourierAt("Positioned", 48.8570, 2.3530)

	fresh, err := courier.NewCourier(kernel.NewUUID(), "Fresh")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, fresh))

	query, err := queries.NewGetAvailableCouriersQuery(suite.origin())
	suite.Require().NoError(err)

	responses, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(responses, 2)

	suite.True(responses[0].ID.IsEqual(positioned.ID()))
	suite.True(responses[1].ID.IsEqual(fresh.ID()))
	suite.Nil(responses[1].Position)
	suite.Nil(responses[1].DistanceMeters)
}

func TestGetAvailableCouriersQueryHandlerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(GetAvailableCouriersQueryHandlerIntegrationTestSuite))
}
