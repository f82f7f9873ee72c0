package models

import (
	"fmt"
	"time"
)

// Допустимые диапазоны параметров движения TBD001 (в единицах устройства).
const (
	MaxPosition = 1715200
	MaxVelocity = 3838091
)

// DefaultSerialNo используется, когда серийный номер не передан.
const DefaultSerialNo = "67837825"

// DeviceInfo содержит сведения об устройстве, полученные при перечислении.
// Используется только для вывода и не сохраняется.
type DeviceInfo struct {
	SerialNo    string `json:"serial_no" yaml:"serial_no"`
	Description string `json:"description" yaml:"description"`
	TypeID      int    `json:"type_id" yaml:"type_id"`
}

// MotionParams содержит параметры движения, прочитанные из командной строки.
// Velocity == 0 означает "не менять скорость".
type MotionParams struct {
	SerialNo string `json:"serial_no"`
	Position int    `json:"position"`
	Velocity int    `json:"velocity"`
}

// Validate проверяет, что позиция и скорость лежат в допустимых диапазонах.
func (p MotionParams) Validate() error {
	if p.Position < 0 || p.Position > MaxPosition {
		return fmt.Errorf("position %d out of range 0-%d", p.Position, MaxPosition)
	}
	if p.Velocity < 0 || p.Velocity > MaxVelocity {
		return fmt.Errorf("velocity %d out of range 0-%d", p.Velocity, MaxVelocity)
	}
	return nil
}

// VelocityParams содержит параметры профиля скорости канала.
type VelocityParams struct {
	Acceleration int `json:"acceleration" yaml:"acceleration"`
	MaxVelocity  int `json:"max_velocity" yaml:"max_velocity"`
}

// MessageKey идентифицирует тип уведомления драйвера.
type MessageKey struct {
	Type uint16 `json:"type"`
	ID   uint16 `json:"id"`
}

func (k MessageKey) String() string {
	return fmt.Sprintf("{type=%d, id=%d}", k.Type, k.ID)
}

// Message - уведомление, прочитанное из очереди сообщений драйвера.
type Message struct {
	Type uint16 `json:"type"`
	ID   uint16 `json:"id"`
	Data uint32 `json:"data"`
}

// Key возвращает пару {type, id} сообщения.
func (m Message) Key() MessageKey {
	return MessageKey{Type: m.Type, ID: m.ID}
}

// SessionReport содержит итог одного запуска сессии.
type SessionReport struct {
	SessionID     string        `json:"session_id"`
	SerialNo      string        `json:"serial_no"`
	Devices       []DeviceInfo  `json:"devices"`
	Opened        bool          `json:"opened"`
	Completed     bool          `json:"completed"`
	FinalPosition int           `json:"final_position"`
	Velocity      int           `json:"velocity"`
	DriverErrors  []string      `json:"driver_errors,omitempty"`
	StartedAt     time.Time     `json:"started_at"`
	Duration      time.Duration `json:"duration"`
}
