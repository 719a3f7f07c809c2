package skywire

import (
	"encoding/binary"
	"math"
)

// TelemetryRecord is the fixed-layout value produced once per frame
// period by the sensor-collection collaborator and handed to
// TransmitFrame. Field order matches the packed little-endian wire
// layout in SPEC_FULL.md §3.2 exactly; reordering fields changes the
// wire format.
type TelemetryRecord struct {
	FrameCounter uint32
	TimestampUs  uint64

	AccelXG   float32
	AccelYG   float32
	AccelZG   float32
	GyroXDps  float32
	GyroYDps  float32
	GyroZDps  float32

	PressurePsi   [4]float32
	TemperatureC  [8]float32
	GuidanceCmd   [16]float32
	ActuatorPos   [16]float32

	FlightMode byte

	Latitude   float64
	Longitude  float64
	AltitudeM  float32

	BatteryVoltage float32
	SystemStatus   uint16

	// CRC16 is the trailer written by the CRC framer and checked by
	// the verifier. It is part of the wire record but callers
	// assembling a fresh record should leave it zero; WriteCRC fills
	// it in.
	CRC16 uint16
}

// RecordSize is the constant packed size of TelemetryRecord on the
// wire, computed once from the field layout rather than hand-counted.
var RecordSize = computeRecordSize()

func computeRecordSize() int {
	r := TelemetryRecord{}
	return 4 + 8 + // FrameCounter, TimestampUs
		4*3 + 4*3 + // accel, gyro
		4*len(r.PressurePsi) +
		4*len(r.TemperatureC) +
		4*len(r.GuidanceCmd) +
		4*len(r.ActuatorPos) +
		1 + // FlightMode
		8 + 8 + 4 + // lat, lon, altitude
		4 + // battery voltage
		2 + // system status
		2 // crc16
}

// MarshalBinary writes the packed little-endian wire form of r,
// including whatever value is currently in r.CRC16.
func (r *TelemetryRecord) MarshalBinary() []byte {
	buf := make([]byte, RecordSize)
	off := 0

	putU32 := func(v uint32) {
		binary.LittleEndian.PutUint32(buf[off:], v)
		off += 4
	}
	putU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[off:], v)
		off += 8
	}
	putF32 := func(v float32) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
		off += 4
	}
	putF64 := func(v float64) {
		binary.LittleEndian.PutUint64(buf[off:], math.Float64bits(v))
		off += 8
	}
	putU16 := func(v uint16) {
		binary.LittleEndian.PutUint16(buf[off:], v)
		off += 2
	}
	putU8 := func(v byte) {
		buf[off] = v
		off++
	}

	putU32(r.FrameCounter)
	putU64(r.TimestampUs)
	putF32(r.AccelXG)
	putF32(r.AccelYG)
	putF32(r.AccelZG)
	putF32(r.GyroXDps)
	putF32(r.GyroYDps)
	putF32(r.GyroZDps)
	for _, v := range r.PressurePsi {
		putF32(v)
	}
	for _, v := range r.TemperatureC {
		putF32(v)
	}
	for _, v := range r.GuidanceCmd {
		putF32(v)
	}
	for _, v := range r.ActuatorPos {
		putF32(v)
	}
	putU8(r.FlightMode)
	putF64(r.Latitude)
	putF64(r.Longitude)
	putF32(r.AltitudeM)
	putF32(r.BatteryVoltage)
	putU16(r.SystemStatus)
	putU16(r.CRC16)

	return buf
}

// UnmarshalBinary parses the packed little-endian wire form produced
// by MarshalBinary. buf must be at least RecordSize bytes.
func (r *TelemetryRecord) UnmarshalBinary(buf []byte) error {
	if len(buf) < RecordSize {
		return newErr(ErrTruncatedInput, "record needs %d bytes, got %d", RecordSize, len(buf))
	}
	off := 0

	getU32 := func() uint32 {
		v := binary.LittleEndian.Uint32(buf[off:])
		off += 4
		return v
	}
	getU64 := func() uint64 {
		v := binary.LittleEndian.Uint64(buf[off:])
		off += 8
		return v
	}
	getF32 := func() float32 {
		v := math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
		off += 4
		return v
	}
	getF64 := func() float64 {
		v := math.Float64frombits(binary.LittleEndian.Uint64(buf[off:]))
		off += 8
		return v
	}
	getU16 := func() uint16 {
		v := binary.LittleEndian.Uint16(buf[off:])
		off += 2
		return v
	}
	getU8 := func() byte {
		v := buf[off]
		off++
		return v
	}

	r.FrameCounter = getU32()
	r.TimestampUs = getU64()
	r.AccelXG = getF32()
	r.AccelYG = getF32()
	r.AccelZG = getF32()
	r.GyroXDps = getF32()
	r.GyroYDps = getF32()
	r.GyroZDps = getF32()
	for i := range r.PressurePsi {
		r.PressurePsi[i] = getF32()
	}
	for i := range r.TemperatureC {
		r.TemperatureC[i] = getF32()
	}
	for i := range r.GuidanceCmd {
		r.GuidanceCmd[i] = getF32()
	}
	for i := range r.ActuatorPos {
		r.ActuatorPos[i] = getF32()
	}
	r.FlightMode = getU8()
	r.Latitude = getF64()
	r.Longitude = getF64()
	r.AltitudeM = getF32()
	r.BatteryVoltage = getF32()
	r.SystemStatus = getU16()
	r.CRC16 = getU16()

	return nil
}
