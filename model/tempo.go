package model

import (
	"fmt"
	"strconv"
	"strings"
)

type TimeSignature struct {
	Numerator   int `yaml:"numerator" json:"numerator"`
	Denominator int `yaml:"denominator" json:"denominator"`
}

func (ts TimeSignature) Validate() error {
	if ts.Numerator <= 0 || ts.Denominator <= 0 {
		return InvalidParameter("time signature %d/%d must have positive terms", ts.Numerator, ts.Denominator)
	}
	return nil
}

func (ts TimeSignature) String() string {
	return fmt.Sprintf("%d/%d", ts.Numerator, ts.Denominator)
}

// ParseTimeSignature reads the "num/den" form used on the command line.
func ParseTimeSignature(s string) (TimeSignature, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return TimeSignature{}, InvalidParameter("time signature %q is not of the form num/den", s)
	}
	num, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return TimeSignature{}, InvalidParameter("time signature numerator %q", parts[0])
	}
	den, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return TimeSignature{}, InvalidParameter("time signature denominator %q", parts[1])
	}
	ts := TimeSignature{Numerator: num, Denominator: den}
	return ts, ts.Validate()
}

// TempoMeter is the tempo and meter snapshot an operation runs against. It is
// supplied by the caller and never owned by the core.
type TempoMeter struct {
	BPM           float64       `yaml:"bpm" json:"bpm"`
	TimeSignature TimeSignature `yaml:"time_signature" json:"time_signature"`
}

func (tm TempoMeter) Validate() error {
	if tm.BPM <= 0 {
		return InvalidParameter("bpm %v must be positive", tm.BPM)
	}
	return tm.TimeSignature.Validate()
}
