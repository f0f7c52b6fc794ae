package poller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anicoll/growatt-integration/internal/pkg/growatt"
	"github.com/anicoll/growatt-integration/internal/pkg/model"
	"github.com/anicoll/growatt-integration/internal/pkg/publisher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePortal struct {
	plants    []growatt.Plant
	plantData map[string]growatt.PlantData
	listErr   error
}

func (f *fakePortal) GetPlants(ctx context.Context) ([]growatt.Plant, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.plants, nil
}

func (f *fakePortal) GetPlant(ctx context.Context, plantID string) (growatt.PlantData, error) {
	data, ok := f.plantData[plantID]
	if !ok {
		return growatt.PlantData{}, errors.New("unknown plant")
	}
	return data, nil
}

type capturePublisher struct {
	plants  []*model.Plant
	records []map[string]any
}

func (c *capturePublisher) Write(ctx context.Context, data []map[string]any) error {
	c.records = append(c.records, data...)
	return nil
}

func (c *capturePublisher) RegisterPlant(plant *model.Plant) error {
	c.plants = append(c.plants, plant)
	return nil
}

func ptr[T any](v T) *T { return &v }

func TestPoll(t *testing.T) {
	capture := &capturePublisher{}
	require.NoError(t, publisher.RegisterPublisher("capture-poll", capture))

	portal := &fakePortal{
		plants: []growatt.Plant{
			{PlantID: "poll-1", PlantName: "Home"},
		},
		plantData: map[string]growatt.PlantData{
			"poll-1": {
				CurrentPower: ptr(1530.0),
				TodayEnergy:  ptr(4.2),
			},
		},
	}

	p := New(portal, time.Minute)
	require.NoError(t, p.Poll(context.Background()))

	require.Len(t, capture.plants, 1)
	assert.Equal(t, "poll-1", capture.plants[0].ID)
	assert.Equal(t, "Home", capture.plants[0].Name)

	require.Len(t, capture.records, 2)
	slugs := []string{}
	for _, record := range capture.records {
		assert.Equal(t, "poll-1", record["plant_id"])
		slugs = append(slugs, record["slug"].(string))
	}
	assert.ElementsMatch(t, []string{"today_energy", "current_power"}, slugs)
}

func TestPollSkipsFailedPlant(t *testing.T) {
	capture := &capturePublisher{}
	require.NoError(t, publisher.RegisterPublisher("capture-skip", capture))

	portal := &fakePortal{
		plants: []growatt.Plant{
			{PlantID: "skip-1", PlantName: "Broken"},
			{PlantID: "skip-2", PlantName: "Working"},
		},
		plantData: map[string]growatt.PlantData{
			"skip-2": {CurrentPower: ptr(900.0)},
		},
	}

	p := New(portal, time.Minute)
	require.NoError(t, p.Poll(context.Background()))

	require.Len(t, capture.plants, 2)
	for _, record := range capture.records {
		assert.Equal(t, "skip-2", record["plant_id"])
	}
}

func TestPollListError(t *testing.T) {
	portal := &fakePortal{listErr: errors.New("portal down")}
	p := New(portal, time.Minute)
	err := p.Poll(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "portal down")
}

func TestPlantMetrics(t *testing.T) {
	metrics := plantMetrics("pm-1", growatt.PlantData{
		Capacity:    ptr(6.6),
		TotalEnergy: ptr(12345.5),
	})

	require.Len(t, metrics, 2)
	assert.Equal(t, "capacity", metrics[0].Slug)
	assert.Equal(t, "6.6", metrics[0].Value)
	assert.Equal(t, model.NumericUnitKiloWattPeak, metrics[0].Unit)
	assert.Equal(t, "total_energy", metrics[1].Slug)
	assert.Equal(t, "12345.5", metrics[1].Value)
	assert.Equal(t, model.NumericUnitKiloWattHour, metrics[1].Unit)
}
