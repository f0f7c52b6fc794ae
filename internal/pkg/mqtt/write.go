package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/anicoll/growatt-integration/internal/pkg/model"
	"github.com/gosimple/slug"
)

var configuredPlants = make(map[string]struct{})

func (s *service) Write(ctx context.Context, data []map[string]any) error {
	for _, d := range data {
		if err := s.PublishData(d); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) RegisterPlant(plant *model.Plant) error {
	if _, exists := configuredPlants[plant.ID]; exists {
		return nil
	}
	registerMessage := defaultRegisterMsg(plant)
	slugIdentifier := plantIdentifier(plant)

	topic := fmt.Sprintf("homeassistant/sensor/%s/config", slugIdentifier)

	payload, err := json.Marshal(registerMessage)
	if err != nil {
		return err
	}
	token := s.client.Publish(topic, 1, true, payload)
	if err := token.Error(); err != nil {
		return err
	}
	if res := token.WaitTimeout(time.Second * 5); res {
		configuredPlants[plant.ID] = struct{}{}
		return nil
	}
	return nil
}

func (s *service) PublishData(data map[string]any) error {
	topic := fmt.Sprintf("homeassistant/sensor/%s/%s/state", data["plant_id"], data["slug"].(string))

	payload := map[string]string{
		"value":               data["value"].(string),
		"unit_of_measurement": data["unit_of_measurement"].(string),
	}

	publishData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	token := s.client.Publish(topic, 0, false, publishData)
	res := token.WaitTimeout(time.Second * 10)
	if res {
		return nil
	}
	if err := token.Error(); err != nil {
		return err
	}
	return nil
}

func plantIdentifier(plant *model.Plant) string {
	return fmt.Sprintf("%s_%s", slug.Make(plant.Name), plant.ID)
}

func defaultRegisterMsg(plant *model.Plant) model.RegisterMessage {
	slugIdentifier := plantIdentifier(plant)

	return model.RegisterMessage{
		Tilda:      fmt.Sprintf("homeassistant/sensor/%s", slugIdentifier),
		Name:       plant.Name,
		ID:         slugIdentifier,
		StateTopic: "~/state",
		Device: model.RegisterDevice{
			Name:         plant.Name,
			Identifiers:  []string{slugIdentifier},
			Model:        "Plant",
			Manufacturer: "Growatt",
		},
	}
}
