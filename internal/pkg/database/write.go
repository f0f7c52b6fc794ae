package database

import (
	"context"

	"github.com/anicoll/growatt-integration/internal/pkg/model"
)

func (d *Database) Write(ctx context.Context, data []map[string]any) error {
	tx, err := d.conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, record := range data {
		if _, err := tx.Exec(ctx, `
			INSERT INTO PlantMetric (time_stamp, unit_of_measurement, value, plant_id, slug)
			VALUES ($1, $2, $3, $4, $5)
		`, record["timestamp"], record["unit_of_measurement"], record["value"], record["plant_id"], record["slug"]); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (d *Database) RegisterPlant(plant *model.Plant) error {
	_, err := d.conn.Exec(context.Background(), `
		INSERT INTO Plant (id, name, address, watts)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, address = EXCLUDED.address, watts = EXCLUDED.watts;`,
		plant.ID, plant.Name, plant.Address, plant.Watts)
	if err != nil {
		return err
	}

	return nil
}
