package datetime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func packCalendar(weekday, second, minute, hour, day, month uint8, year uint16) uint64 {
	var v uint64
	v |= uint64(weekday) & 0x7
	v |= (uint64(second) & 0x3F) << 3
	v |= (uint64(minute) & 0x3F) << 9
	v |= (uint64(hour) & 0x1F) << 15
	v |= (uint64(day) & 0x1F) << 20
	v |= (uint64(month) & 0xF) << 25
	v |= (uint64(year-yearBase) & 0x7FF) << 29

	return v
}

func le40Bytes(v uint64) []byte {
	b := make([]byte, 5)
	for i := range 5 {
		b[i] = byte(v >> (8 * i))
	}

	return b
}

func TestUnpack_V1V2(t *testing.T) {
	payload := make([]byte, V1V2PayloadLen)
	payload[0] = byte(int8(-4)) // -1 hour TZ offset in 15-minute units
	unixVal := int32(1_700_000_000)
	payload[1] = byte(unixVal)
	payload[2] = byte(unixVal >> 8)
	payload[3] = byte(unixVal >> 16)
	payload[4] = byte(unixVal >> 24)
	copy(payload[5:10], le40Bytes(packCalendar(3, 15, 30, 12, 9, 11, 2023)))

	dt := Unpack(payload, false)
	require.Equal(t, int8(-4), dt.TZOffsetQuarterHours)
	require.Equal(t, int64(unixVal), dt.Unix)
	require.Equal(t, uint8(3), dt.WeekDay)
	require.Equal(t, uint8(15), dt.Second)
	require.Equal(t, uint8(30), dt.Minute)
	require.Equal(t, uint8(12), dt.Hour)
	require.Equal(t, uint8(9), dt.Day)
	require.Equal(t, uint8(11), dt.Month)
	require.Equal(t, uint16(2023), dt.Year)
}

func TestUnpack_V3WiderTimestamp(t *testing.T) {
	payload := make([]byte, V3PayloadLen)
	payload[0] = 0
	unixVal := int64(2_000_000_000_000)
	for i := range 8 {
		payload[1+i] = byte(unixVal >> (8 * i))
	}
	copy(payload[9:14], le40Bytes(packCalendar(0, 0, 0, 0, 1, 1, 1600)))

	dt := Unpack(payload, true)
	require.Equal(t, unixVal, dt.Unix)
	require.Equal(t, uint16(1600), dt.Year)
}
