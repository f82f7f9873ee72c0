//go:build !kinesis

package kinesis

import (
	"context"
	"time"

	"github.com/iwtcode/tcubeAdapter/models"
)

// BMC недоступен без тега сборки kinesis и библиотеки производителя.
// Все методы возвращают ErrVendorUnavailable.
type BMC struct{}

var _ Driver = (*BMC)(nil)

// NewBMC возвращает ErrVendorUnavailable: сборка выполнена без библиотеки Kinesis.
func NewBMC() (*BMC, error) {
	return nil, ErrVendorUnavailable
}

func (b *BMC) BuildDeviceList() error { return ErrVendorUnavailable }

func (b *BMC) DeviceListSize() (int, error) { return 0, ErrVendorUnavailable }

func (b *BMC) DeviceListByType(int) ([]string, error) { return nil, ErrVendorUnavailable }

func (b *BMC) DeviceInfo(string) (models.DeviceInfo, error) {
	return models.DeviceInfo{}, ErrVendorUnavailable
}

func (b *BMC) Open(string) error { return ErrVendorUnavailable }

func (b *BMC) Close(string) error { return ErrVendorUnavailable }

func (b *BMC) StartPolling(string, time.Duration) error { return ErrVendorUnavailable }

func (b *BMC) StopPolling(string) error { return ErrVendorUnavailable }

func (b *BMC) EnableChannel(string) error { return ErrVendorUnavailable }

func (b *BMC) ClearMessageQueue(string) error { return ErrVendorUnavailable }

func (b *BMC) Home(string) error { return ErrVendorUnavailable }

func (b *BMC) WaitForMessage(context.Context, string) (models.Message, error) {
	return models.Message{}, ErrVendorUnavailable
}

func (b *BMC) VelocityParams(string) (models.VelocityParams, error) {
	return models.VelocityParams{}, ErrVendorUnavailable
}

func (b *BMC) SetVelocityParams(string, models.VelocityParams) error { return ErrVendorUnavailable }

func (b *BMC) MoveToPosition(string, int) error { return ErrVendorUnavailable }

func (b *BMC) Position(string) (int, error) { return 0, ErrVendorUnavailable }
