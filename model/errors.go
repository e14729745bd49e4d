package model

import (
	"errors"
	"fmt"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
)

const (
	KindInvalidParameter ftag.Kind = "INVALID_PARAMETER"
	KindStaleSession     ftag.Kind = "STALE_SESSION"
)

var (
	// ErrInvalidParameter is a caller bug: non-positive bpm, time signature
	// term or grid size.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrStaleSession means a drag or resize refers to an entity that is no
	// longer in the collection. Callers drop the pending update.
	ErrStaleSession = errors.New("stale session")
)

func InvalidParameter(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return fault.Wrap(ErrInvalidParameter,
		fmsg.WithDesc(msg, "The editor received an invalid grid parameter."),
		ftag.With(KindInvalidParameter),
	)
}

func StaleSession(id any) error {
	return fault.Wrap(ErrStaleSession,
		fmsg.With(fmt.Sprintf("target %v is gone", id)),
		ftag.With(KindStaleSession),
	)
}

func IsInvalidParameter(err error) bool { return errors.Is(err, ErrInvalidParameter) }
func IsStaleSession(err error) bool     { return errors.Is(err, ErrStaleSession) }
