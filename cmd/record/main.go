// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"flag"
	"log"

	"github.com/relabs-tech/trip_kinematics/internal/app"
	"github.com/relabs-tech/trip_kinematics/internal/config"
)

func main() {
	configPath := flag.String("config", "trip_config.txt", "path to the configuration file")
	flag.Parse()

	log.Println("starting trip-kinematics recorder (MQTT subscriber)")

	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	log.Println("Note: recording requires the accelerometer producer to be running (sudo ./imu_producer)")

	if err := app.RunRecorder(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
