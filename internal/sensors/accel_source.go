// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"fmt"
	"log"
	"time"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/devices/v3/mpu9250"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/trip_kinematics/internal/config"
	"github.com/relabs-tech/trip_kinematics/internal/imu"
)

// accelCountsPerG maps the MPU-9250 accelerometer range setting (0=±2g ..
// 3=±16g) to raw counts per g.
var accelCountsPerG = [4]float64{16384, 8192, 4096, 2048}

type accelSource struct {
	imu   *mpu9250.MPU9250
	scale float64 // counts per g
	start time.Time
}

// NewAccelSource initializes the MPU-9250 over SPI and returns a source of
// native accelerometer samples. Gyroscope and magnetometer stay untouched:
// trip recording only needs the accelerometer.
func NewAccelSource() (imu.SampleSource, error) {
	cfg := config.Get()

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("imu: periph host init: %w", err)
	}

	cs := gpioreg.ByName(cfg.IMUCSPin)
	if cs == nil {
		return nil, fmt.Errorf("imu: CS pin %q not found", cfg.IMUCSPin)
	}

	tr, err := mpu9250.NewSpiTransport(cfg.IMUSPIDevice, cs)
	if err != nil {
		return nil, fmt.Errorf("imu: SPI transport (%s): %w", cfg.IMUSPIDevice, err)
	}

	dev, err := mpu9250.New(tr)
	if err != nil {
		return nil, fmt.Errorf("imu: device creation: %w", err)
	}

	if err := dev.Init(); err != nil {
		return nil, fmt.Errorf("imu: initialization: %w", err)
	}

	if err := dev.SetAccelRange(cfg.IMUAccelRange); err != nil {
		return nil, fmt.Errorf("imu: set accel range: %w", err)
	}
	log.Printf("imu: accelerometer range set to %d (±%dg)", cfg.IMUAccelRange, []int{2, 4, 8, 16}[cfg.IMUAccelRange])

	return &accelSource{
		imu:   dev,
		scale: accelCountsPerG[cfg.IMUAccelRange],
		start: time.Now(),
	}, nil
}

// Next reads one accelerometer sample and stamps it with the recording
// clock (seconds since source creation, so trip time starts near zero).
func (s *accelSource) Next() (imu.Sample, error) {
	ax, err := s.imu.GetAccelerationX()
	if err != nil {
		return imu.Sample{}, fmt.Errorf("imu accel X: %w", err)
	}
	ay, err := s.imu.GetAccelerationY()
	if err != nil {
		return imu.Sample{}, fmt.Errorf("imu accel Y: %w", err)
	}
	az, err := s.imu.GetAccelerationZ()
	if err != nil {
		return imu.Sample{}, fmt.Errorf("imu accel Z: %w", err)
	}

	return imu.Sample{
		Source: "mpu9250",
		T:      time.Since(s.start).Seconds(),
		X:      float64(ax) / s.scale,
		Y:      float64(ay) / s.scale,
		Z:      float64(az) / s.scale,
	}, nil
}
