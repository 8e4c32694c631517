package store

import (
	"math"
	"strconv"
	"strings"
)

// Zoom bounds and step.
const (
	MinZoom     = 0.6
	MaxZoom     = 2.0
	DefaultZoom = 1.0
	ZoomStep    = 0.1
)

// ClampZoom limits z to [MinZoom, MaxZoom] and rounds it to one decimal so
// repeated steps never accumulate float error.
func ClampZoom(z float64) float64 {
	if math.IsNaN(z) || math.IsInf(z, 0) {
		return DefaultZoom
	}
	z = math.Round(z*10) / 10
	return math.Min(MaxZoom, math.Max(MinZoom, z))
}

// AdjustZoom returns z moved by delta and clamped.
func AdjustZoom(z, delta float64) float64 {
	return ClampZoom(z + delta)
}

// Zoom returns the stored zoom factor, DefaultZoom when unset or invalid.
func (s *Store) Zoom() float64 {
	raw, ok, err := s.kv.Get(ZoomKey)
	if err != nil || !ok {
		return DefaultZoom
	}
	z, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return DefaultZoom
	}
	return ClampZoom(z)
}

// SetZoom stores the zoom factor.
func (s *Store) SetZoom(z float64) error {
	return s.kv.Set(ZoomKey, strconv.FormatFloat(ClampZoom(z), 'f', -1, 64))
}

// AccessGranted reports whether the one-time access acknowledgement was
// given. Only "true" counts.
func (s *Store) AccessGranted() bool {
	raw, ok, err := s.kv.Get(AccessKey)
	return err == nil && ok && raw == "true"
}

// GrantAccess records the access acknowledgement.
func (s *Store) GrantAccess() error {
	return s.kv.Set(AccessKey, "true")
}
