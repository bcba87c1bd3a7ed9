package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Client interface for Hoymiles DTU communication
type Client interface {
	FetchRealData(ctx context.Context) (*RealData, error)
}

// SGSData contains one micro-inverter's grid-side readings in engineering units
type SGSData struct {
	SerialNumber string
	Voltage      float64 // V
	Frequency    float64 // Hz
	Current      float64 // A
	ActivePower  float64 // W
	PowerFactor  float64 // %
	Temperature  float64 // C
}

// PVData contains one panel port's DC-side readings in engineering units
type PVData struct {
	SerialNumber string
	PortNumber   int
	Voltage      float64 // V
	Current      float64 // A
	Power        float64 // W
	EnergyTotal  float64 // Wh
	EnergyDaily  float64 // Wh
}

// RealData is one complete telemetry snapshot fetched from the DTU
type RealData struct {
	DTUSerial string
	Timestamp time.Time
	SGS       []SGSData
	PV        []PVData
}

// rawInt decodes DTU integer fields that the library renders either as bare
// JSON numbers or, for 64-bit fields, as quoted strings.
type rawInt int64

func (r *rawInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = 0
		return nil
	}
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer field %q: %v", data, err)
	}
	*r = rawInt(v)
	return nil
}

// serialString decodes serial numbers, which arrive as quoted strings for
// int64 protobuf fields but as bare numbers from older library versions.
type serialString string

func (s *serialString) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	*s = serialString(data)
	return nil
}

// Wire representation of the library's get-real-data-new JSON document.
// Field names follow the hoymiles-wifi protobuf schema.
type realDataDocument struct {
	DeviceSerialNumber serialString `json:"device_serial_number"`
	Timestamp          rawInt       `json:"timestamp"`
	SGSData            []sgsEntry   `json:"sgs_data"`
	PVData             []pvEntry    `json:"pv_data"`
}

type sgsEntry struct {
	SerialNumber serialString `json:"serial_number"`
	Voltage      rawInt       `json:"voltage"`
	Frequency    rawInt       `json:"frequency"`
	Current      rawInt       `json:"current"`
	ActivePower  rawInt       `json:"active_power"`
	PowerFactor  rawInt       `json:"power_factor"`
	Temperature  rawInt       `json:"temperature"`
}

type pvEntry struct {
	SerialNumber serialString `json:"serial_number"`
	PortNumber   rawInt       `json:"port_number"`
	Voltage      rawInt       `json:"voltage"`
	Current      rawInt       `json:"current"`
	Power        rawInt       `json:"power"`
	EnergyTotal  rawInt       `json:"energy_total"`
	EnergyDaily  rawInt       `json:"energy_daily"`
}

// parseRealData decodes a get-real-data-new JSON document and converts the
// DTU's fixed-point integers into engineering units:
// voltage, power, power factor and temperature carry one decimal (x10),
// frequency and current carry two (x100), energy totals are plain Wh.
func parseRealData(data []byte) (*RealData, error) {
	var doc realDataDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse real data response: %v", err)
	}

	rd := &RealData{
		DTUSerial: string(doc.DeviceSerialNumber),
	}
	if doc.Timestamp > 0 {
		rd.Timestamp = time.Unix(int64(doc.Timestamp), 0)
	}

	for _, sgs := range doc.SGSData {
		if sgs.SerialNumber == "" {
			continue
		}
		rd.SGS = append(rd.SGS, SGSData{
			SerialNumber: string(sgs.SerialNumber),
			Voltage:      float64(sgs.Voltage) / 10,
			Frequency:    float64(sgs.Frequency) / 100,
			Current:      float64(sgs.Current) / 100,
			ActivePower:  float64(sgs.ActivePower) / 10,
			PowerFactor:  float64(sgs.PowerFactor) / 10,
			Temperature:  float64(sgs.Temperature) / 10,
		})
	}

	for _, pv := range doc.PVData {
		if pv.SerialNumber == "" {
			continue
		}
		rd.PV = append(rd.PV, PVData{
			SerialNumber: string(pv.SerialNumber),
			PortNumber:   int(pv.PortNumber),
			Voltage:      float64(pv.Voltage) / 10,
			Current:      float64(pv.Current) / 100,
			Power:        float64(pv.Power) / 10,
			EnergyTotal:  float64(pv.EnergyTotal),
			EnergyDaily:  float64(pv.EnergyDaily),
		})
	}

	return rd, nil
}
