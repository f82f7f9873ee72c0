package kinesis

import (
	"context"
	"time"

	"github.com/iwtcode/tcubeAdapter/models"
)

// TypeTBD001 - код типа устройства TCube Brushless Motor в списке Kinesis.
const TypeTBD001 = 67

// Типы и идентификаторы сообщений очереди драйвера.
const (
	MessageTypeGenericDevice uint16 = 0
	MessageTypeGenericMotor  uint16 = 2

	MessageIDHomed   uint16 = 0
	MessageIDMoved   uint16 = 1
	MessageIDStopped uint16 = 2
)

var (
	// HomedMessage приходит по завершении хоминга.
	HomedMessage = models.MessageKey{Type: MessageTypeGenericMotor, ID: MessageIDHomed}
	// MovedMessage приходит по завершении перемещения.
	MovedMessage = models.MessageKey{Type: MessageTypeGenericMotor, ID: MessageIDMoved}
)

// Driver описывает контракт библиотеки управления двигателем.
// Все устройства адресуются серийным номером.
type Driver interface {
	BuildDeviceList() error
	DeviceListSize() (int, error)
	// DeviceListByType возвращает серийные номера устройств заданного типа.
	DeviceListByType(typeCode int) ([]string, error)
	DeviceInfo(serial string) (models.DeviceInfo, error)

	Open(serial string) error
	Close(serial string) error

	StartPolling(serial string, interval time.Duration) error
	StopPolling(serial string) error
	EnableChannel(serial string) error

	ClearMessageQueue(serial string) error
	Home(serial string) error
	// WaitForMessage блокируется до появления следующего сообщения или отмены ctx.
	WaitForMessage(ctx context.Context, serial string) (models.Message, error)

	VelocityParams(serial string) (models.VelocityParams, error)
	SetVelocityParams(serial string, params models.VelocityParams) error
	MoveToPosition(serial string, position int) error
	Position(serial string) (int, error)
}
