package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/relabs-tech/trip_kinematics/internal/kinematics"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trip_config.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFullConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
# trip analyzer configuration
TRIP_CSV = data/accel.csv
OUTPUT_DIR = out
DB_PATH = runs.db

GRAVITY = 9.81
BIAS_MODE = static
STATIC_WINDOWS = 0:47, 540:570, 775:830
CALIBRATE_VELOCITY = false

MQTT_BROKER = tcp://localhost:1883
TOPIC_SAMPLES = trip/samples

GPS_SERIAL_PORT = /dev/serial0
GPS_BAUD_RATE = 9600

WEB_SERVER_PORT = 9090
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.TripCSV != "data/accel.csv" || cfg.OutputDir != "out" || cfg.DBPath != "runs.db" {
		t.Errorf("I/O fields wrong: %+v", cfg)
	}
	if cfg.Gravity != 9.81 {
		t.Errorf("Gravity = %v, want 9.81", cfg.Gravity)
	}
	want := []kinematics.Window{{Start: 0, End: 47}, {Start: 540, End: 570}, {Start: 775, End: 830}}
	if len(cfg.StaticWindows) != len(want) {
		t.Fatalf("windows = %v, want %v", cfg.StaticWindows, want)
	}
	for i, w := range want {
		if cfg.StaticWindows[i] != w {
			t.Errorf("window %d = %v, want %v", i, cfg.StaticWindows[i], w)
		}
	}
	if cfg.CalibrateVelocity {
		t.Error("CALIBRATE_VELOCITY=false not honored")
	}
	if cfg.WebServerPort != 9090 {
		t.Errorf("WebServerPort = %d, want 9090", cfg.WebServerPort)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "TRIP_CSV = x.csv\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Gravity != kinematics.StandardGravity {
		t.Errorf("default Gravity = %v, want %v", cfg.Gravity, kinematics.StandardGravity)
	}
	if cfg.BiasMode != BiasModeStatic {
		t.Errorf("default BiasMode = %q, want static", cfg.BiasMode)
	}
	if !cfg.CalibrateVelocity {
		t.Error("CalibrateVelocity should default to true")
	}
	if cfg.TopicSamples != "trip/samples" {
		t.Errorf("default TopicSamples = %q", cfg.TopicSamples)
	}
	if cfg.WebServerPort != 8080 {
		t.Errorf("default WebServerPort = %d", cfg.WebServerPort)
	}
}

func TestLoadRejectsInvertedWindow(t *testing.T) {
	_, err := Load(writeConfig(t, "STATIC_WINDOWS = 47:0\n"))
	if err == nil || !strings.Contains(err.Error(), "start must be before end") {
		t.Fatalf("want inverted-window error, got %v", err)
	}
}

func TestLoadRejectsBadBiasMode(t *testing.T) {
	_, err := Load(writeConfig(t, "BIAS_MODE = both\n"))
	if err == nil {
		t.Fatal("want error for unknown BIAS_MODE")
	}
}

func TestLoadRejectsStackedBiasStrategies(t *testing.T) {
	_, err := Load(writeConfig(t, "BIAS_MODE = gravity\nSTATIC_WINDOWS = 0:10\n"))
	if err == nil || !strings.Contains(err.Error(), "mutually exclusive") {
		t.Fatalf("want mutual-exclusion error, got %v", err)
	}
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	_, err := Load(writeConfig(t, "NO_SUCH_KEY = 1\n"))
	if err == nil || !strings.Contains(err.Error(), "unknown config key") {
		t.Fatalf("want unknown-key error, got %v", err)
	}
}

func TestLoadRejectsMalformedLine(t *testing.T) {
	_, err := Load(writeConfig(t, "JUST_A_KEY\n"))
	if err == nil || !strings.Contains(err.Error(), "invalid config line 1") {
		t.Fatalf("want malformed-line error, got %v", err)
	}
}
