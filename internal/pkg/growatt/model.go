package growatt

import (
	"encoding/json"
	"errors"
)

// Plant is one entry of the plant list. The portal is loose about field
// names: the plant name arrives under either "name" or "plantName", and every
// field except the id and name may be absent.
type Plant struct {
	PlantID      string
	PlantName    string
	PlantAddress *string
	PlantWatts   *float64
	IsShare      *bool
}

func (p *Plant) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID           string   `json:"id"`
		Name         string   `json:"name"`
		PlantName    string   `json:"plantName"`
		PlantAddress *string  `json:"plantAddress"`
		PlantWatts   *float64 `json:"plantPower"`
		IsShare      *bool    `json:"isShare"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.ID == "" {
		return errors.New("plant record missing id field")
	}
	name := aux.Name
	if name == "" {
		name = aux.PlantName
	}
	if name == "" {
		return errors.New("plant record missing name field")
	}
	p.PlantID = aux.ID
	p.PlantName = name
	p.PlantAddress = aux.PlantAddress
	p.PlantWatts = aux.PlantWatts
	p.IsShare = aux.IsShare
	return nil
}

func (p Plant) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID           string   `json:"id"`
		Name         string   `json:"name"`
		PlantAddress *string  `json:"plantAddress,omitempty"`
		PlantWatts   *float64 `json:"plantPower,omitempty"`
		IsShare      *bool    `json:"isShare,omitempty"`
	}{
		ID:           p.PlantID,
		Name:         p.PlantName,
		PlantAddress: p.PlantAddress,
		PlantWatts:   p.PlantWatts,
		IsShare:      p.IsShare,
	})
}

// PlantData is the detail record for a single plant. The portal may omit any
// of these, so they are all optional.
type PlantData struct {
	PlantName    *string  `json:"plantName,omitempty"`
	PlantID      *string  `json:"plantId,omitempty"`
	Capacity     *float64 `json:"capacity,omitempty"`
	TodayEnergy  *float64 `json:"todayEnergy,omitempty"`
	TotalEnergy  *float64 `json:"totalEnergy,omitempty"`
	CurrentPower *float64 `json:"currentPower,omitempty"`
}
