package api

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jack-barr3tt/stk-engine/src/common/data"
	"github.com/jack-barr3tt/stk-engine/src/common/metrics"
	"github.com/jack-barr3tt/stk-engine/src/common/page"
	"github.com/jack-barr3tt/stk-engine/src/common/render"
	"github.com/jack-barr3tt/stk-engine/src/common/types"
	"github.com/jack-barr3tt/stk-engine/src/common/utils"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type StationSource interface {
	Lookup(code string, t types.InspectionType) (types.StationInfo, bool)
	LookupProtocol(protocol string, t types.InspectionType) (types.StationInfo, bool)
}

type ChartCache interface {
	SaveChart(ctx context.Context, id string, chart *render.Chart) error
	GetChart(ctx context.Context, id string) (*render.Chart, error)
}

type APIServer struct {
	DB        *pgxpool.Pool
	Redis     *redis.Client
	Logger    *zap.SugaredLogger
	Data      *data.DataClient
	Stations  StationSource
	Charts    ChartCache
	Augmenter *page.Augmenter
}

func NewServer(ctx context.Context) (*APIServer, error) {
	db, err := utils.NewPostgresConnection(ctx)
	logger := utils.GetLogger()
	if err != nil {
		logger.Errorw("failed to connect to database", "error", err)
		return nil, err
	}

	redis := utils.NewRedisClient()

	data := data.NewDataClient(db, redis, logger)

	registry, err := data.LoadRegistry(ctx)
	if err != nil {
		logger.Errorw("failed to load station registry", "error", err)
		return nil, err
	}

	server := NewWith(registry, data.Charts(utils.GetEnvDuration("CHART_TTL", 24*time.Hour)), logger)
	server.DB = db
	server.Redis = redis
	server.Data = data
	return server, nil
}

// NewWith builds a server over already constructed dependencies.
func NewWith(stations StationSource, charts ChartCache, logger *zap.SugaredLogger) *APIServer {
	return &APIServer{
		Logger:    logger,
		Stations:  stations,
		Charts:    charts,
		Augmenter: page.NewAugmenter(stations, charts, logger),
	}
}

func RegisterHandlers(app *fiber.App, s *APIServer) {
	app.Get("/health", s.GetHealth)
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	api := app.Group("/api")
	api.Post("/augment", s.PostAugment)
	api.Post("/mileage", s.PostMileage)
	api.Post("/mileage/chart", s.PostMileageChart)
	api.Get("/charts/:id", s.GetChart)
	api.Get("/charts/:id/tooltip", s.GetChartTooltip)
	api.Get("/stations/:type/:code", s.GetStation)
	api.Get("/protocols/:protocol/station", s.GetProtocolStation)
}

func internalError(c *fiber.Ctx, summary, message string, err error) error {
	errStr := err.Error()
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   summary,
		Message: message,
		Stack:   &errStr,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "Bad Request",
		Message: message,
	})
}
