package kinesis

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iwtcode/tcubeAdapter/models"
)

// SimDevice описывает одно симулируемое устройство.
type SimDevice struct {
	SerialNo    string                `yaml:"serial_no"`
	TypeID      int                   `yaml:"type_id"`
	Description string                `yaml:"description"`
	Position    int                   `yaml:"position"`
	Velocity    models.VelocityParams `yaml:"velocity"`
	FailOpen    bool                  `yaml:"fail_open"`
	// Stuck - устройство никогда не сообщает о завершении движения.
	Stuck bool `yaml:"stuck"`
}

// Scenario задает поведение симулятора.
type Scenario struct {
	FailDeviceList bool          `yaml:"fail_device_list"`
	TickInterval   time.Duration `yaml:"tick_interval"`
	// CountsPerSecond - скорость перемещения при максимальной скорости устройства по умолчанию.
	CountsPerSecond int         `yaml:"counts_per_second"`
	Devices         []SimDevice `yaml:"devices"`
}

// DefaultScenario возвращает сценарий с одним TBD001, смещенным от нуля.
func DefaultScenario() *Scenario {
	return &Scenario{
		TickInterval:    10 * time.Millisecond,
		CountsPerSecond: 1000000,
		Devices: []SimDevice{
			{
				SerialNo:    models.DefaultSerialNo,
				TypeID:      TypeTBD001,
				Description: "T-Cube Brushless DC Motor Controller",
				Position:    250000,
				Velocity:    models.VelocityParams{Acceleration: 4506, MaxVelocity: models.MaxVelocity},
			},
		},
	}
}

// LoadScenario читает сценарий симулятора из YAML-файла.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	return ParseScenario(data)
}

// ParseScenario разбирает YAML-сценарий и подставляет значения по умолчанию.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	s.applyDefaults()

	seen := make(map[string]bool, len(s.Devices))
	for _, d := range s.Devices {
		if d.SerialNo == "" {
			return nil, fmt.Errorf("parse scenario: device without serial_no")
		}
		if seen[d.SerialNo] {
			return nil, fmt.Errorf("parse scenario: duplicate device %s", d.SerialNo)
		}
		seen[d.SerialNo] = true
	}
	return &s, nil
}

func (s *Scenario) applyDefaults() {
	def := DefaultScenario()
	if s.TickInterval <= 0 {
		s.TickInterval = def.TickInterval
	}
	if s.CountsPerSecond <= 0 {
		s.CountsPerSecond = def.CountsPerSecond
	}
	for i := range s.Devices {
		d := &s.Devices[i]
		if d.TypeID == 0 {
			d.TypeID = TypeTBD001
		}
		if d.Velocity.MaxVelocity == 0 {
			d.Velocity = def.Devices[0].Velocity
		}
	}
}
