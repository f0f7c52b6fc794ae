package main

import (
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/anicoll/growatt-integration/cmd"
)

func main() {
	growattFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "growatt-username",
			EnvVars: []string{"GROWATT_USERNAME"},
			Value:   "",
		},
		&cli.StringFlag{
			Name:    "growatt-password",
			EnvVars: []string{"GROWATT_PASSWORD"},
			Value:   "",
		},
		&cli.StringFlag{
			Name:    "growatt-base-url",
			EnvVars: []string{"GROWATT_BASE_URL"},
			Value:   "https://server.growatt.com",
		},
		&cli.IntFlag{
			Name:    "growatt-session-duration",
			EnvVars: []string{"GROWATT_SESSION_DURATION"},
			Usage:   "portal session lifetime in minutes",
			Value:   30,
		},
	}

	app := &cli.App{
		Name:   "growatt-integration",
		Usage:  "collector for growatt solar plants",
		Action: cmd.GrowattCommand,
		Flags: append(growattFlags,
			&cli.StringFlag{
				Name:    "mqtt-host",
				EnvVars: []string{"MQTT_HOST"},
				Value:   "",
			},
			&cli.StringFlag{
				Name:    "mqtt-pass",
				EnvVars: []string{"MQTT_PASS"},
				Value:   "",
			},
			&cli.StringFlag{
				Name:    "mqtt-user",
				EnvVars: []string{"MQTT_USER"},
				Value:   "",
			},
			&cli.StringFlag{
				Name:     "database-url",
				EnvVars:  []string{"DATABASE_URL"},
				Value:    "",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "migrations-folder",
				EnvVars:  []string{"MIGRATIONS_FOLDER"},
				Value:    "",
				Required: true,
			},
			&cli.DurationFlag{
				Name:    "poll-interval",
				EnvVars: []string{"POLL_INTERVAL"},
				Value:   5 * time.Minute,
			},
			&cli.StringFlag{
				Name:    "server-addr",
				EnvVars: []string{"SERVER_ADDR"},
				Value:   "0.0.0.0:8000",
			},
			&cli.StringFlag{
				Name:    "api-password-hash",
				EnvVars: []string{"API_PASSWORD_HASH"},
				Usage:   "bcrypt hash guarding the read API, empty disables auth",
				Value:   "",
			},
			&cli.StringFlag{
				Name:    "log-level",
				EnvVars: []string{"LOG_LEVEL"},
				Value:   "INFO",
			},
		),
		Commands: []*cli.Command{
			{
				Name:   "demo",
				Usage:  "log in, print every plant and its data, log out",
				Action: cmd.DemoCommand,
				Flags:  growattFlags,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
