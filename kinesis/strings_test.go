package kinesis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSerialNoTruncation(t *testing.T) {
	assert.Equal(t, "27000001", SerialNo("27000001"))
	assert.Equal(t, "12345678", SerialNo("123456789"))
	assert.Equal(t, "670", SerialNo("670\x00garbage"))
}

func TestDescriptionTruncation(t *testing.T) {
	long := strings.Repeat("d", 70)
	assert.Len(t, Description(long), DescriptionLen)
	assert.Equal(t, "Brushless Motor", Description("Brushless Motor\x00\x00"))
}

func TestParseSerialList(t *testing.T) {
	assert.Equal(t, []string{"27000001", "27000002"}, ParseSerialList("27000001,27000002"))
	assert.Equal(t, []string{"27000001", "27000002"}, ParseSerialList(",27000001,,27000002,\x00\x00"))
	assert.Nil(t, ParseSerialList(""))
}

func TestFormatSerialListCapacity(t *testing.T) {
	serials := make([]string, 20)
	for i := range serials {
		serials[i] = "67000000"
	}
	list := FormatSerialList(serials, DeviceListCapacity)
	assert.Len(t, list, DeviceListCapacity-1)

	assert.Len(t, ParseSerialList(list), 11)

	short := FormatSerialList([]string{"67000001", "67000002"}, 13)
	assert.Equal(t, "67000001,670", short)
	assert.Equal(t, []string{"67000001", "670"}, ParseSerialList(short))

	assert.Equal(t, "1,2", FormatSerialList([]string{"1", "2"}, DeviceListCapacity))
	assert.Empty(t, FormatSerialList([]string{"1"}, 0))
}
