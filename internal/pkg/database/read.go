package database

import (
	"context"
	"time"

	"github.com/anicoll/growatt-integration/internal/pkg/model"
	"github.com/jackc/pgx/v5"
)

func (db *Database) GetPlants(ctx context.Context) ([]model.Plant, error) {
	const query = `
	SELECT id, name, address, watts
	FROM Plant
	ORDER BY name;
	`

	rows, err := db.conn.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plants []model.Plant
	for rows.Next() {
		var plant model.Plant
		if err := rows.Scan(&plant.ID, &plant.Name, &plant.Address, &plant.Watts); err != nil {
			return nil, err
		}
		plants = append(plants, plant)
	}

	if err := rows.Err(); err != nil {
		if err == pgx.ErrNoRows {
			return plants, nil
		}
		return nil, err
	}

	return plants, nil
}

func (db *Database) GetMetrics(ctx context.Context, plantID, slug string, from, to *time.Time) (model.Metrics, error) {
	if from == nil || to == nil {
		from = func() *time.Time {
			t := time.Now().AddDate(0, 0, -2)
			return &t
		}()
		to = func() *time.Time {
			t := time.Now()
			return &t
		}()
	}
	const query = `
	SELECT time_stamp, unit_of_measurement, value, plant_id, slug
	FROM PlantMetric
	WHERE plant_id = $1 AND slug = $2 AND time_stamp BETWEEN $3 AND $4
	ORDER BY time_stamp DESC;
	`

	rows, err := db.conn.Query(ctx, query, plantID, slug, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metrics, err := scanMetrics(rows)
	if err != nil {
		return nil, err
	}
	return metrics, nil
}

func scanMetrics(rows pgx.Rows) (model.Metrics, error) {
	var metrics model.Metrics
	for rows.Next() {
		var metric model.Metric
		if err := rows.Scan(&metric.TimeStamp, &metric.Unit, &metric.Value, &metric.PlantID, &metric.Slug); err != nil {
			return nil, err
		}
		metrics = append(metrics, metric)
	}

	if err := rows.Err(); err != nil {
		if err == pgx.ErrNoRows {
			return metrics, nil
		}
		return nil, err
	}

	return metrics, nil
}

func (db *Database) GetLatestMetrics(ctx context.Context, plantID string) (model.Metrics, error) {
	const query = `
	SELECT DISTINCT ON (slug) time_stamp, unit_of_measurement, value, plant_id, slug
	FROM PlantMetric
	WHERE plant_id = $1
	ORDER BY slug, time_stamp DESC;
	`

	rows, err := db.conn.Query(ctx, query, plantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metrics, err := scanMetrics(rows)
	if err != nil {
		return nil, err
	}
	return metrics, nil
}
