package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/relabs-tech/trip_kinematics/internal/kinematics"
)

// Bias removal strategies. Static-window calibration and fixed gravity
// cancellation are alternatives, never combined.
const (
	BiasModeStatic  = "static"
	BiasModeGravity = "gravity"
)

// Config holds all application configuration values.
type Config struct {
	// Analyzer I/O
	TripCSV   string
	OutputDir string
	DBPath    string // optional; empty disables the run store

	// Pipeline
	Gravity           float64
	BiasMode          string // "static" or "gravity"
	StaticWindows     []kinematics.Window
	CalibrateVelocity bool

	// MQTT
	MQTTBroker           string
	MQTTClientIDProducer string
	MQTTClientIDRecorder string
	MQTTClientIDGPS      string
	MQTTClientIDWeb      string

	// Topics
	TopicSamples string
	TopicGPS     string

	// IMU Hardware
	IMUSPIDevice string
	IMUCSPin     string
	// Accelerometer range: 0=±2g, 1=±4g, 2=±8g, 3=±16g
	IMUAccelRange     byte
	IMUSampleInterval int // milliseconds

	// GPS
	GPSSerialPort string
	GPSBaudRate   int

	// Web Server
	WebServerPort int
}

// Package-level unexported variables for the config singleton: InitGlobal()
// sets it exactly once, Get() reads it under an RLock so any goroutine may
// fetch the config without further coordination.
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Load reads the configuration file and returns a Config struct.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := &Config{
		OutputDir:         ".",
		Gravity:           kinematics.StandardGravity,
		BiasMode:          BiasModeStatic,
		CalibrateVelocity: true,
		TopicSamples:      "trip/samples",
		TopicGPS:          "trip/gps",
		IMUSampleInterval: 20,
		WebServerPort:     8080,
	}

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// Analyzer I/O
	case "TRIP_CSV":
		c.TripCSV = value
	case "OUTPUT_DIR":
		c.OutputDir = value
	case "DB_PATH":
		c.DBPath = value

	// Pipeline
	case "GRAVITY":
		g, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid GRAVITY %q: %w", value, err)
		}
		if g <= 0 {
			return fmt.Errorf("GRAVITY must be positive, got %v", g)
		}
		c.Gravity = g
	case "BIAS_MODE":
		if value != BiasModeStatic && value != BiasModeGravity {
			return fmt.Errorf("BIAS_MODE must be %q or %q, got %q", BiasModeStatic, BiasModeGravity, value)
		}
		c.BiasMode = value
	case "STATIC_WINDOWS":
		windows, err := parseWindows(value)
		if err != nil {
			return fmt.Errorf("invalid STATIC_WINDOWS %q: %w", value, err)
		}
		c.StaticWindows = windows
	case "CALIBRATE_VELOCITY":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid CALIBRATE_VELOCITY %q: %w", value, err)
		}
		c.CalibrateVelocity = b

	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_PRODUCER":
		c.MQTTClientIDProducer = value
	case "MQTT_CLIENT_ID_RECORDER":
		c.MQTTClientIDRecorder = value
	case "MQTT_CLIENT_ID_GPS":
		c.MQTTClientIDGPS = value
	case "MQTT_CLIENT_ID_WEB":
		c.MQTTClientIDWeb = value

	// Topics
	case "TOPIC_SAMPLES":
		c.TopicSamples = value
	case "TOPIC_GPS":
		c.TopicGPS = value

	// IMU Hardware
	case "IMU_SPI_DEVICE":
		c.IMUSPIDevice = value
	case "IMU_CS_PIN":
		c.IMUCSPin = value
	case "IMU_ACCEL_RANGE":
		rangeVal, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid IMU_ACCEL_RANGE %q: %w", value, err)
		}
		if rangeVal < 0 || rangeVal > 3 {
			return fmt.Errorf("IMU_ACCEL_RANGE must be 0-3 (0=±2g, 1=±4g, 2=±8g, 3=±16g), got %d", rangeVal)
		}
		c.IMUAccelRange = byte(rangeVal)
	case "IMU_SAMPLE_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid IMU_SAMPLE_INTERVAL %q: %w", value, err)
		}
		if interval <= 0 {
			return fmt.Errorf("IMU_SAMPLE_INTERVAL must be positive, got %d", interval)
		}
		c.IMUSampleInterval = interval

	// GPS
	case "GPS_SERIAL_PORT":
		c.GPSSerialPort = value
	case "GPS_BAUD_RATE":
		rate, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid GPS_BAUD_RATE %q: %w", value, err)
		}
		c.GPSBaudRate = rate

	// Web Server
	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		c.WebServerPort = port

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// parseWindows parses "start:end,start:end,..." (seconds) into static
// calibration windows.
func parseWindows(value string) ([]kinematics.Window, error) {
	if value == "" {
		return nil, nil
	}

	var windows []kinematics.Window
	for _, pair := range strings.Split(value, ",") {
		pair = strings.TrimSpace(pair)
		bounds := strings.Split(pair, ":")
		if len(bounds) != 2 {
			return nil, fmt.Errorf("window %q: want start:end", pair)
		}
		start, err := strconv.ParseFloat(strings.TrimSpace(bounds[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("window %q: bad start: %w", pair, err)
		}
		end, err := strconv.ParseFloat(strings.TrimSpace(bounds[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("window %q: bad end: %w", pair, err)
		}
		if start >= end {
			return nil, fmt.Errorf("window %q: start must be before end", pair)
		}
		windows = append(windows, kinematics.Window{Start: start, End: end})
	}
	return windows, nil
}

// validate checks field combinations the pipeline relies on. The two bias
// removal strategies are alternatives: configuring both is rejected here
// rather than silently stacking them.
func (c *Config) validate() error {
	if c.BiasMode == BiasModeGravity && len(c.StaticWindows) > 0 {
		return fmt.Errorf("BIAS_MODE=gravity and STATIC_WINDOWS are mutually exclusive")
	}
	return nil
}

// InitGlobal initializes the global configuration from file. Uses sync.Once
// so repeated calls are harmless.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance. InitGlobal must be called
// first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
