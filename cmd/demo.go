package cmd

import (
	"fmt"

	"github.com/anicoll/growatt-integration/internal/pkg/growatt"
	"github.com/urfave/cli/v2"
)

// DemoCommand logs in, walks every visible plant printing its detail record,
// then logs out. Useful for checking credentials and connectivity without
// standing up the full service.
func DemoCommand(ctx *cli.Context) error {
	client := growatt.New(
		growatt.WithBaseURL(ctx.String("growatt-base-url")),
	)

	ok, err := client.Login(ctx.Context, ctx.String("growatt-username"), ctx.String("growatt-password"))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("login failed, check your credentials")
	}
	fmt.Println("Login successful!")

	plants, err := client.GetPlants(ctx.Context)
	if err != nil {
		return err
	}
	fmt.Printf("Found %d plants:\n", len(plants))

	for _, plant := range plants {
		fmt.Printf("Plant ID: %s\n", plant.PlantID)
		fmt.Printf("Plant Name: %s\n", plant.PlantName)
		if plant.PlantAddress != nil {
			fmt.Printf("Address: %s\n", *plant.PlantAddress)
		}
		if plant.PlantWatts != nil {
			fmt.Printf("Power (W): %v\n", *plant.PlantWatts)
		}
		fmt.Println("-------------------")

		data, err := client.GetPlant(ctx.Context, plant.PlantID)
		if err != nil {
			fmt.Printf("Error getting detailed plant data: %v\n", err)
			continue
		}
		fmt.Println("Additional plant data:")
		if data.Capacity != nil {
			fmt.Printf("Capacity: %v\n", *data.Capacity)
		}
		if data.TodayEnergy != nil {
			fmt.Printf("Today's Energy: %v\n", *data.TodayEnergy)
		}
		if data.TotalEnergy != nil {
			fmt.Printf("Total Energy: %v\n", *data.TotalEnergy)
		}
		fmt.Println("-------------------")
	}

	if _, err := client.Logout(ctx.Context); err != nil {
		fmt.Printf("Error during logout: %v\n", err)
		return nil
	}
	fmt.Println("Successfully logged out")
	return nil
}
