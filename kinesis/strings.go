package kinesis

import "strings"

// Размеры буферов библиотеки Kinesis.
const (
	SerialNoLen        = 8
	DescriptionLen     = 64
	DeviceListCapacity = 100
)

func trimNull(s string) string {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return s[:i]
	}
	return s
}

func truncate(s string, n int) string {
	s = trimNull(s)
	if len(s) > n {
		return s[:n]
	}
	return s
}

// SerialNo приводит серийный номер к 8 символам, как поле TLI_DeviceInfo.serialNo.
func SerialNo(s string) string {
	return truncate(s, SerialNoLen)
}

// Description приводит описание устройства к 64 символам.
func Description(s string) string {
	return truncate(s, DescriptionLen)
}

// FormatSerialList собирает список серийных номеров так, как его возвращает
// TLI_GetDeviceListByTypeExt в буфер заданной емкости (с учетом завершающего нуля).
func FormatSerialList(serials []string, capacity int) string {
	list := strings.Join(serials, ",")
	if capacity <= 0 {
		return ""
	}
	if len(list) > capacity-1 {
		list = list[:capacity-1]
	}
	return list
}

// ParseSerialList разбирает список через запятую, пропуская пустые элементы.
func ParseSerialList(list string) []string {
	list = trimNull(list)
	var out []string
	for _, p := range strings.Split(list, ",") {
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
