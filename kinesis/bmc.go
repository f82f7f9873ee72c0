//go:build kinesis

package kinesis

/*
#cgo CFLAGS: -I${SRCDIR}/../third_party/kinesis
#cgo LDFLAGS: -L${SRCDIR}/../third_party/kinesis -lThorlabs.MotionControl.TCube.BrushlessMotor

#include <stdlib.h>
#include <string.h>
#include "Thorlabs.MotionControl.TCube.BrushlessMotor.h"

static short go_tli_device_info(const char* serial, char* desc_out, int desc_cap, char* serial_out, int serial_cap, unsigned long* type_out) {
	TLI_DeviceInfo info;
	memset(&info, 0, sizeof(info));
	short ok = TLI_GetDeviceInfo(serial, &info);
	strncpy(desc_out, info.description, desc_cap - 1);
	desc_out[desc_cap - 1] = '\0';
	strncpy(serial_out, info.serialNo, serial_cap - 1);
	serial_out[serial_cap - 1] = '\0';
	*type_out = info.typeID;
	return ok;
}

static int go_bmc_next_message(const char* serial, unsigned short* type_out, unsigned short* id_out, unsigned long* data_out) {
	WORD t, i;
	DWORD d;
	if (!BMC_GetNextMessage(serial, &t, &i, &d)) {
		return 0;
	}
	*type_out = t;
	*id_out = i;
	*data_out = d;
	return 1;
}
*/
import "C"

import (
	"context"
	"time"
	"unsafe"

	"github.com/iwtcode/tcubeAdapter/models"
)

// Интервал опроса очереди сообщений в WaitForMessage.
const messagePollInterval = 10 * time.Millisecond

// BMC - привязка к библиотеке Thorlabs.MotionControl.TCube.BrushlessMotor.
type BMC struct{}

var _ Driver = (*BMC)(nil)

// NewBMC возвращает драйвер, работающий через библиотеку производителя.
func NewBMC() (*BMC, error) {
	return &BMC{}, nil
}

func cstr(s string) (*C.char, func()) {
	cs := C.CString(s)
	return cs, func() { C.free(unsafe.Pointer(cs)) }
}

func (b *BMC) BuildDeviceList() error {
	if rc := C.TLI_BuildDeviceList(); rc != 0 {
		return newDriverError("TLI_BuildDeviceList", "", int(rc), ErrDeviceListFailed)
	}
	return nil
}

func (b *BMC) DeviceListSize() (int, error) {
	return int(C.TLI_GetDeviceListSize()), nil
}

func (b *BMC) DeviceListByType(typeCode int) ([]string, error) {
	buf := make([]byte, DeviceListCapacity)
	rc := C.TLI_GetDeviceListByTypeExt((*C.char)(unsafe.Pointer(&buf[0])), C.DWORD(len(buf)), C.int(typeCode))
	if rc != 0 {
		return nil, newDriverError("TLI_GetDeviceListByTypeExt", "", int(rc), nil)
	}
	return ParseSerialList(string(buf)), nil
}

func (b *BMC) DeviceInfo(serial string) (models.DeviceInfo, error) {
	cs, free := cstr(serial)
	defer free()

	desc := make([]byte, DescriptionLen+1)
	sn := make([]byte, SerialNoLen+1)
	var typeID C.ulong
	ok := C.go_tli_device_info(cs,
		(*C.char)(unsafe.Pointer(&desc[0])), C.int(len(desc)),
		(*C.char)(unsafe.Pointer(&sn[0])), C.int(len(sn)),
		&typeID)

	info := models.DeviceInfo{
		SerialNo:    SerialNo(string(sn)),
		Description: Description(string(desc)),
		TypeID:      int(typeID),
	}
	if ok == 0 {
		return info, newDriverError("TLI_GetDeviceInfo", serial, int(ok), ErrUnknownDevice)
	}
	return info, nil
}

func (b *BMC) Open(serial string) error {
	cs, free := cstr(serial)
	defer free()
	if rc := C.BMC_Open(cs); rc != 0 {
		return newDriverError("BMC_Open", serial, int(rc), ErrOpenFailed)
	}
	return nil
}

func (b *BMC) Close(serial string) error {
	cs, free := cstr(serial)
	defer free()
	C.BMC_Close(cs)
	return nil
}

func (b *BMC) StartPolling(serial string, interval time.Duration) error {
	cs, free := cstr(serial)
	defer free()
	if !C.BMC_StartPolling(cs, C.int(interval.Milliseconds())) {
		return newDriverError("BMC_StartPolling", serial, 0, nil)
	}
	return nil
}

func (b *BMC) StopPolling(serial string) error {
	cs, free := cstr(serial)
	defer free()
	C.BMC_StopPolling(cs)
	return nil
}

func (b *BMC) EnableChannel(serial string) error {
	cs, free := cstr(serial)
	defer free()
	if rc := C.BMC_EnableChannel(cs); rc != 0 {
		return newDriverError("BMC_EnableChannel", serial, int(rc), nil)
	}
	return nil
}

func (b *BMC) ClearMessageQueue(serial string) error {
	cs, free := cstr(serial)
	defer free()
	C.BMC_ClearMessageQueue(cs)
	return nil
}

func (b *BMC) Home(serial string) error {
	cs, free := cstr(serial)
	defer free()
	if rc := C.BMC_Home(cs); rc != 0 {
		return newDriverError("BMC_Home", serial, int(rc), nil)
	}
	return nil
}

// WaitForMessage опрашивает очередь через BMC_GetNextMessage, чтобы ожидание
// можно было прервать через ctx. BMC_WaitForMessage блокируется без возможности отмены.
func (b *BMC) WaitForMessage(ctx context.Context, serial string) (models.Message, error) {
	cs, free := cstr(serial)
	defer free()

	ticker := time.NewTicker(messagePollInterval)
	defer ticker.Stop()

	for {
		var t, id C.ushort
		var data C.ulong
		if C.go_bmc_next_message(cs, &t, &id, &data) != 0 {
			return models.Message{Type: uint16(t), ID: uint16(id), Data: uint32(data)}, nil
		}
		select {
		case <-ctx.Done():
			return models.Message{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (b *BMC) VelocityParams(serial string) (models.VelocityParams, error) {
	cs, free := cstr(serial)
	defer free()
	var accel, vel C.int
	if rc := C.BMC_GetVelParams(cs, &accel, &vel); rc != 0 {
		return models.VelocityParams{}, newDriverError("BMC_GetVelParams", serial, int(rc), nil)
	}
	return models.VelocityParams{Acceleration: int(accel), MaxVelocity: int(vel)}, nil
}

func (b *BMC) SetVelocityParams(serial string, params models.VelocityParams) error {
	cs, free := cstr(serial)
	defer free()
	if rc := C.BMC_SetVelParams(cs, C.int(params.Acceleration), C.int(params.MaxVelocity)); rc != 0 {
		return newDriverError("BMC_SetVelParams", serial, int(rc), nil)
	}
	return nil
}

func (b *BMC) MoveToPosition(serial string, position int) error {
	cs, free := cstr(serial)
	defer free()
	if rc := C.BMC_MoveToPosition(cs, C.int(position)); rc != 0 {
		return newDriverError("BMC_MoveToPosition", serial, int(rc), nil)
	}
	return nil
}

func (b *BMC) Position(serial string) (int, error) {
	cs, free := cstr(serial)
	defer free()
	return int(C.BMC_GetPosition(cs)), nil
}
