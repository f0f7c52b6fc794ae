package model

import "time"

// Plant is the registration record for a monitored plant.
type Plant struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
	Watts   *float64 `json:"watts,omitempty"`
}

// Metric is one sampled value for a plant, in storage/publishing form.
type Metric struct {
	TimeStamp time.Time   `json:"timestamp"`
	PlantID   string      `json:"plant_id"`
	Slug      string      `json:"slug"`
	Value     string      `json:"value"`
	Unit      NumericUnit `json:"unit_of_measurement"`
}

type Metrics []Metric
