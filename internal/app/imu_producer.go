package app

import (
	"encoding/json"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/trip_kinematics/internal/config"
	"github.com/relabs-tech/trip_kinematics/internal/sensors"
)

// RunAccelProducer samples the MPU-9250 accelerometer on a fixed interval
// and publishes native-unit samples as JSON to the sample topic, for the
// recorder to persist.
func RunAccelProducer() error {
	log.Println("starting trip-kinematics accelerometer producer")

	cfg := config.Get()

	src, err := sensors.NewAccelSource()
	if err != nil {
		return err
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDProducer)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	defer client.Disconnect(250)

	log.Printf("producer: connected to MQTT, publishing to %s every %dms",
		cfg.TopicSamples, cfg.IMUSampleInterval)

	ticker := time.NewTicker(time.Duration(cfg.IMUSampleInterval) * time.Millisecond)
	defer ticker.Stop()

	published := 0
	for range ticker.C {
		sample, err := src.Next()
		if err != nil {
			log.Printf("producer: accel read error: %v", err)
			continue
		}

		payload, err := json.Marshal(sample)
		if err != nil {
			log.Printf("producer: sample marshal error: %v", err)
			continue
		}
		if token := client.Publish(cfg.TopicSamples, 0, false, payload); token.Wait() && token.Error() != nil {
			log.Printf("producer: MQTT publish error: %v", token.Error())
			continue
		}

		published++
		if published%500 == 0 {
			log.Printf("producer: t=%.1fs x=%.4f y=%.4f z=%.4f g (%d samples published)",
				sample.T, sample.X, sample.Y, sample.Z, published)
		}
	}
	return nil
}
