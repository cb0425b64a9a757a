package types

import (
	"time"

	"github.com/google/uuid"
)

// RedispatchOrder is the full detail of one dispatch instruction issued to
// an entity. Orders are immutable once created.
type RedispatchOrder struct {
	RedispatchOrderID     string                `json:"redispatchOrderId"`
	EntityID              string                `json:"entityId"`
	IssueOrderTs          time.Time             `json:"issueOrderTs"`
	RedispatchOrderReason string                `json:"redispatchOrderReason"` // B or S
	RedispatchOrderPeriod RedispatchOrderPeriod `json:"redispatchOrderPeriod"`
	RedispatchOrders      []RedispatchOrderItem `json:"redispatchOrders"`
}

// RedispatchOrderPeriod is the validity period of the order
type RedispatchOrderPeriod struct {
	StartDt time.Time `json:"startDt"`
	EndDt   time.Time `json:"endDt"`
}

// RedispatchOrderItem is one technical item of an order: a physical object
// reference plus its measured time series
type RedispatchOrderItem struct {
	RedispatchingObjectMrid uuid.UUID      `json:"redispatchingObjectMrid"`
	MeasurementUnit         string         `json:"measurementUnit"` // MAW
	CurveType               string         `json:"curveType"`       // A01
	SeriesPeriods           []SeriesPeriod `json:"seriesPeriods"`
}

// SeriesPeriod carries direction, resolution, and the series data points
// for one interval of an order item
type SeriesPeriod struct {
	Direction               string        `json:"direction"`               // G or P
	AutogenerationRedispatch string       `json:"autogenerationRedispatch"` // "0" or "1"
	Resolution              string        `json:"resolution"`              // P1D, PT60M, PT15M
	TimeInterval            TimeInterval  `json:"timeInterval"`
	SeriesPoints            []SeriesPoint `json:"seriesPoints"`
}

// TimeInterval is a start/end pair
type TimeInterval struct {
	StartDt time.Time `json:"startDt"`
	EndDt   time.Time `json:"endDt"`
}

// SeriesPoint is one position-indexed data point with quantity bounds
type SeriesPoint struct {
	Position    int     `json:"position"`
	QuantityMax float64 `json:"quantityMax"`
	QuantityMin float64 `json:"quantityMin"`
}

// AckStatus is the decision carried by an acknowledgement
type AckStatus string

const (
	AckReceived AckStatus = "RECEIVED"
	AckAccepted AckStatus = "ACCEPTED"
	AckRejected AckStatus = "REJECTED"
)

// Acknowledgement is the record an entity submits to confirm receipt of
// (or a decision on) one order. RedispatchOrderID and EntityID must match
// the resource the acknowledgement is posted to.
type Acknowledgement struct {
	RedispatchOrderID string    `json:"redispatchOrderId"`
	EntityID          string    `json:"entityId"`
	Status            AckStatus `json:"status"`
	Reason            string    `json:"reason,omitempty"` // optional comment
}
