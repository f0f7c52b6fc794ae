package publisher

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/anicoll/growatt-integration/internal/pkg/model"
	"go.uber.org/zap"
)

var errAlreadyRegistered = errors.New("publisher already registered")

var (
	registerdPublishers = make(map[string]publisher)
	sensors             sync.Map
)

type publisher interface {
	// Write publishes the sampled plant metrics to the registered adapters
	Write(ctx context.Context, data []map[string]any) error
	RegisterPlant(plant *model.Plant) error
}

func RegisterPublisher(name string, publisher publisher) error {
	if _, ok := registerdPublishers[name]; ok {
		return errAlreadyRegistered
	}
	registerdPublishers[name] = publisher
	return nil
}

func PublishData(ctx context.Context, metricsByPlant map[string]model.Metrics) error {
	count := 0
	data := make([]map[string]any, 0)
	for plantID, metrics := range metricsByPlant {
		for _, metric := range metrics {
			if metric.Value == "" || metric.Value == "--" {
				metric.Value = "0.00"
			}

			value := new(big.Rat)
			value, ok := value.SetString(metric.Value)
			if !ok {
				zap.L().Warn("skipping non-numeric metric", zap.String("plant", plantID), zap.String("sensor", metric.Slug), zap.String("value", metric.Value))
				continue
			}
			if metric.Unit == model.NumericUnitKiloWattPeak {
				metric.Unit = model.NumericUnitKiloWatt
			}
			val := value.FloatString(4)

			if !shouldUpdate(plantID, metric.Slug, val) {
				continue
			}
			count++
			payload := map[string]any{
				"value":               val,
				"slug":                metric.Slug,
				"timestamp":           time.Now(),
				"plant_id":            plantID,
				"unit_of_measurement": string(metric.Unit),
			}
			data = append(data, payload)
		}
	}
	for name, publisher := range registerdPublishers {
		if err := publisher.Write(ctx, data); err != nil {
			zap.L().Error("failed to publish data", zap.Error(err), zap.String("publisher", name))
			continue
		}
		zap.L().Debug("updated sensors", zap.Int("count", count), zap.String("publisher", name))
	}
	return nil
}

func RegisterPlant(plant *model.Plant) error {
	for name, publisher := range registerdPublishers {
		if err := publisher.RegisterPlant(plant); err != nil {
			zap.L().Error("failed to register plant", zap.Error(err), zap.String("publisher", name))
			continue
		}
		zap.L().Debug("registered plant", zap.String("plant", plant.ID), zap.String("publisher", name))
	}
	return nil
}

func shouldUpdate(plantID, slug, newValue string) bool {
	key := fmt.Sprintf("%s_%s", plantID, slug)
	oldValue, exists := sensors.Load(key)
	if exists && strings.EqualFold(newValue, oldValue.(string)) {
		return false
	}
	if !exists {
		zap.L().Info("configured sensor", zap.String("plant", plantID), zap.String("sensor", slug), zap.String("value", newValue))
	}
	sensors.Store(key, newValue)
	return true
}
