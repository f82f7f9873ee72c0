package kinesis

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iwtcode/tcubeAdapter/models"
)

const scenarioYAML = `
tick_interval: 5ms
counts_per_second: 400000
devices:
  - serial_no: "27000001"
    description: Brushless Motor 1
    position: 1000
  - serial_no: "27000002"
    type_id: 83
    fail_open: true
    velocity:
      acceleration: 100
      max_velocity: 2000
`

func TestParseScenario(t *testing.T) {
	s, err := ParseScenario([]byte(scenarioYAML))
	require.NoError(t, err)

	assert.Equal(t, 5*time.Millisecond, s.TickInterval)
	assert.Equal(t, 400000, s.CountsPerSecond)
	require.Len(t, s.Devices, 2)

	first := s.Devices[0]
	assert.Equal(t, TypeTBD001, first.TypeID)
	assert.Equal(t, 1000, first.Position)
	assert.Equal(t, models.MaxVelocity, first.Velocity.MaxVelocity)

	second := s.Devices[1]
	assert.Equal(t, 83, second.TypeID)
	assert.True(t, second.FailOpen)
	assert.Equal(t, models.VelocityParams{Acceleration: 100, MaxVelocity: 2000}, second.Velocity)
}

func TestParseScenarioDefaults(t *testing.T) {
	s, err := ParseScenario([]byte("devices: []"))
	require.NoError(t, err)
	assert.Equal(t, DefaultScenario().TickInterval, s.TickInterval)
	assert.Equal(t, DefaultScenario().CountsPerSecond, s.CountsPerSecond)
}

func TestParseScenarioRejectsDuplicates(t *testing.T) {
	_, err := ParseScenario([]byte("devices:\n  - serial_no: \"1\"\n  - serial_no: \"1\"\n"))
	assert.ErrorContains(t, err, "duplicate device 1")

	_, err = ParseScenario([]byte("devices:\n  - description: nameless\n"))
	assert.ErrorContains(t, err, "without serial_no")
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioYAML), 0o644))

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Len(t, s.Devices, 2)

	_, err = LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
