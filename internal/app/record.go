package app

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/trip_kinematics/internal/config"
	"github.com/relabs-tech/trip_kinematics/internal/imu"
	"github.com/relabs-tech/trip_kinematics/internal/table"
)

// RunRecorder subscribes to the sample topic and writes every accelerometer
// sample into the trip CSV, in the exact format the analyzer loads back.
// Runs until interrupted; the CSV is flushed once a second and on shutdown.
func RunRecorder() error {
	cfg := config.Get()
	if cfg.TripCSV == "" {
		return fmt.Errorf("recorder: TRIP_CSV is required")
	}

	w, err := table.NewWriter(cfg.TripCSV)
	if err != nil {
		return fmt.Errorf("recorder: %w", err)
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDRecorder)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		w.Close()
		return token.Error()
	}
	log.Printf("recorder: connected to MQTT broker at %s", cfg.MQTTBroker)

	token := client.Subscribe(cfg.TopicSamples, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var s imu.Sample
		if err := json.Unmarshal(msg.Payload(), &s); err != nil {
			log.Printf("recorder: sample unmarshal error: %v", err)
			return
		}
		w.Append(s.T, s.X, s.Y, s.Z)
	})
	token.Wait()
	if token.Error() != nil {
		w.Close()
		return token.Error()
	}
	log.Printf("recorder: subscribed to %s, writing %s", cfg.TopicSamples, cfg.TripCSV)

	// Wait for Ctrl+C, flushing periodically so a crash loses at most a
	// second of trip data.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.Flush(); err != nil {
				log.Printf("recorder: flush error: %v", err)
			}
		case <-sigCh:
			log.Println("recorder: shutting down")
			client.Disconnect(250)
			rows := w.Rows()
			if err := w.Close(); err != nil {
				return fmt.Errorf("recorder: close trip csv: %w", err)
			}
			log.Printf("recorder: wrote %d samples to %s", rows, cfg.TripCSV)
			return nil
		}
	}
}
