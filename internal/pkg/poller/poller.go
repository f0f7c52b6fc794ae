package poller

import (
	"context"
	"strconv"
	"time"

	"github.com/anicoll/growatt-integration/internal/pkg/contxt"
	"github.com/anicoll/growatt-integration/internal/pkg/growatt"
	"github.com/anicoll/growatt-integration/internal/pkg/model"
	"github.com/anicoll/growatt-integration/internal/pkg/publisher"
	"github.com/robfig/cron/v3"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type portalClient interface {
	GetPlants(ctx context.Context) ([]growatt.Plant, error)
	GetPlant(ctx context.Context, plantID string) (growatt.PlantData, error)
}

type Poller struct {
	client   portalClient
	interval time.Duration
	logger   *zap.Logger
}

func New(client portalClient, interval time.Duration) *Poller {
	return &Poller{
		client:   client,
		interval: interval,
		logger:   zap.L(),
	}
}

// Run polls once immediately, then on every tick until ctx is cancelled.
// Poll errors are sent to errChan and polling continues.
func (p *Poller) Run(ctx context.Context, errChan chan error) error {
	if err := p.Poll(contxt.NewContext(p.interval)); err != nil {
		errChan <- err
	}

	c := cron.New()
	if _, err := c.AddFunc("@every "+p.interval.String(), func() {
		if err := p.Poll(contxt.NewContext(p.interval)); err != nil {
			p.logger.Error("poll failed", zap.Error(err))
			errChan <- err
		}
	}); err != nil {
		return err
	}
	c.Start()

	<-ctx.Done()
	c.Stop()
	return ctx.Err()
}

// Poll fetches every visible plant, registers new ones with the
// publishers and publishes a metric snapshot per plant.
func (p *Poller) Poll(ctx context.Context) error {
	plants, err := p.client.GetPlants(ctx)
	if err != nil {
		return err
	}

	metricsByPlant := make(map[string]model.Metrics, len(plants))
	for _, plant := range plants {
		if err := publisher.RegisterPlant(&model.Plant{
			ID:      plant.PlantID,
			Name:    plant.PlantName,
			Address: plant.PlantAddress,
			Watts:   plant.PlantWatts,
		}); err != nil {
			return err
		}

		data, err := p.client.GetPlant(ctx, plant.PlantID)
		if err != nil {
			p.logger.Error("failed to fetch plant data", zap.Error(err), zap.String("plant", plant.PlantID))
			continue
		}
		metricsByPlant[plant.PlantID] = plantMetrics(plant.PlantID, data)
	}

	return publisher.PublishData(ctx, metricsByPlant)
}

type sample struct {
	slug  model.MetricSlug
	value *float64
}

func plantMetrics(plantID string, data growatt.PlantData) model.Metrics {
	now := time.Now()
	samples := []sample{
		{model.MetricCapacity, data.Capacity},
		{model.MetricTodayEnergy, data.TodayEnergy},
		{model.MetricTotalEnergy, data.TotalEnergy},
		{model.MetricCurrentPower, data.CurrentPower},
	}

	present := lo.Filter(samples, func(s sample, _ int) bool {
		return s.value != nil
	})

	return lo.Map(present, func(s sample, _ int) model.Metric {
		return model.Metric{
			TimeStamp: now,
			PlantID:   plantID,
			Slug:      s.slug.String(),
			Value:     strconv.FormatFloat(*s.value, 'f', -1, 64),
			Unit:      model.MetricUnits[s.slug],
		}
	})
}
