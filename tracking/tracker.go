package tracking

import (
	"errors"
	"fmt"
	"strings"

	"gocv.io/x/gocv"
	"gocv.io/x/gocv/contrib"
)

// Type names one of OpenCV's single-object tracking algorithms.
type Type string

const (
	MIL        Type = "MIL"
	KCF        Type = "KCF"
	CSRT       Type = "CSRT"
	Boosting   Type = "BOOSTING"
	TLD        Type = "TLD"
	MedianFlow Type = "MEDIANFLOW"
	GOTURN     Type = "GOTURN"
	MOSSE      Type = "MOSSE"
)

// DefaultType is used when no tracker is configured.
const DefaultType = KCF

var (
	ErrUnknownTracker     = errors.New("unknown tracker type")
	ErrUnsupportedTracker = errors.New("tracker type not available in this OpenCV build")
)

// Available lists the tracker types New can construct.
var Available = []Type{MIL, KCF, CSRT}

// Legacy trackers were moved out of the main OpenCV tracking API and have no gocv binding.
var legacy = []Type{Boosting, TLD, MedianFlow, GOTURN, MOSSE}

func (t Type) String() string {
	return string(t)
}

// Supported reports whether New can construct t.
func (t Type) Supported() bool {
	for _, a := range Available {
		if a == t {
			return true
		}
	}
	return false
}

// ParseType maps a case-insensitive name to a Type.
func ParseType(name string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(name)))
	if t.Supported() {
		return t, nil
	}
	for _, l := range legacy {
		if l == t {
			return t, fmt.Errorf("%w: %s (available: %s)", ErrUnsupportedTracker, t, availableList())
		}
	}
	return "", fmt.Errorf("%w: %q (available: %s)", ErrUnknownTracker, name, availableList())
}

func availableList() string {
	names := make([]string, len(Available))
	for i, a := range Available {
		names[i] = a.String()
	}
	return strings.Join(names, ", ")
}

// New creates a tracker of the given type. The caller owns it and must Close it.
func New(t Type) (gocv.Tracker, error) {
	switch t {
	case MIL:
		return gocv.NewTrackerMIL(), nil
	case KCF:
		return contrib.NewTrackerKCF(), nil
	case CSRT:
		return contrib.NewTrackerCSRT(), nil
	}
	if _, err := ParseType(string(t)); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedTracker, t)
}
