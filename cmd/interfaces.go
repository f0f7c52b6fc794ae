package cmd

import (
	"context"

	"github.com/anicoll/growatt-integration/internal/pkg/growatt"
)

// portalService is what run expects from the portal client.
type portalService interface {
	GetPlants(ctx context.Context) ([]growatt.Plant, error)
	GetPlant(ctx context.Context, plantID string) (growatt.PlantData, error)
}
