package kinesis

import (
	"errors"
	"fmt"

	"github.com/iwtcode/tcubeAdapter/models"
)

var (
	ErrTimeout           = errors.New("timed out waiting for device message")
	ErrDeviceListFailed  = errors.New("failed to build device list")
	ErrOpenFailed        = errors.New("failed to open device")
	ErrVendorUnavailable = errors.New("kinesis vendor library not linked into this build")
	ErrUnknownDevice     = errors.New("unknown device")
	ErrNotOpen           = errors.New("device is not open")
)

// DriverError описывает неудачный вызов драйвера с кодом возврата библиотеки.
type DriverError struct {
	Op     string
	Serial string
	Code   int
	Err    error
}

func (e *DriverError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s(%s) rc=%d: %v", e.Op, e.Serial, e.Code, e.Err)
	}
	return fmt.Sprintf("%s(%s) rc=%d", e.Op, e.Serial, e.Code)
}

func (e *DriverError) Unwrap() error {
	return e.Err
}

func newDriverError(op, serial string, code int, err error) error {
	return &DriverError{Op: op, Serial: serial, Code: code, Err: err}
}

// WaitError возвращается, когда ожидаемое сообщение не было получено.
type WaitError struct {
	Serial string
	Want   models.MessageKey
	Err    error
}

func (e *WaitError) Error() string {
	return fmt.Sprintf("device %s waiting for %s: %v", e.Serial, e.Want, e.Err)
}

func (e *WaitError) Unwrap() error {
	return e.Err
}

// IsTimeout сообщает, вызвана ли ошибка истечением времени ожидания.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
