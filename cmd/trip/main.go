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

	log.Println("starting trip-kinematics analyzer")

	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunAnalyze(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
