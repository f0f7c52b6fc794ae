package publisher

import (
	"context"
	"testing"

	"github.com/anicoll/growatt-integration/internal/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	records []map[string]any
	plants  []*model.Plant
}

func (f *fakePublisher) Write(ctx context.Context, data []map[string]any) error {
	f.records = append(f.records, data...)
	return nil
}

func (f *fakePublisher) RegisterPlant(plant *model.Plant) error {
	f.plants = append(f.plants, plant)
	return nil
}

func TestRegisterPublisherDuplicate(t *testing.T) {
	require.NoError(t, RegisterPublisher("dup", &fakePublisher{}))
	err := RegisterPublisher("dup", &fakePublisher{})
	require.ErrorIs(t, err, errAlreadyRegistered)
}

func TestPublishDataNormalisesValues(t *testing.T) {
	fake := &fakePublisher{}
	require.NoError(t, RegisterPublisher("normalise", fake))

	err := PublishData(context.Background(), map[string]model.Metrics{
		"norm-1": {
			{PlantID: "norm-1", Slug: "current_power", Value: "1530", Unit: model.NumericUnitWatt},
			{PlantID: "norm-1", Slug: "capacity", Value: "6.6", Unit: model.NumericUnitKiloWattPeak},
			{PlantID: "norm-1", Slug: "today_energy", Value: "--", Unit: model.NumericUnitKiloWattHour},
			{PlantID: "norm-1", Slug: "total_energy", Value: "not-a-number", Unit: model.NumericUnitKiloWattHour},
		},
	})
	require.NoError(t, err)

	byWriteSlug := map[string]map[string]any{}
	for _, record := range fake.records {
		byWriteSlug[record["slug"].(string)] = record
	}

	require.Len(t, byWriteSlug, 3, "non-numeric metric should be dropped")
	assert.Equal(t, "1530.0000", byWriteSlug["current_power"]["value"])
	// kWp is reported to adapters as kW
	assert.Equal(t, "kW", byWriteSlug["capacity"]["unit_of_measurement"])
	assert.Equal(t, "0.0000", byWriteSlug["today_energy"]["value"], "placeholder value becomes zero")
}

func TestPublishDataDeduplicates(t *testing.T) {
	fake := &fakePublisher{}
	require.NoError(t, RegisterPublisher("dedupe", fake))

	metrics := map[string]model.Metrics{
		"dedupe-1": {
			{PlantID: "dedupe-1", Slug: "current_power", Value: "900", Unit: model.NumericUnitWatt},
		},
	}
	require.NoError(t, PublishData(context.Background(), metrics))
	first := len(fake.records)

	require.NoError(t, PublishData(context.Background(), metrics))
	assert.Equal(t, first, len(fake.records), "unchanged value should not be republished")

	metrics["dedupe-1"][0].Value = "901"
	require.NoError(t, PublishData(context.Background(), metrics))
	assert.Greater(t, len(fake.records), first)
}
