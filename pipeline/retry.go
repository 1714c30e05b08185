package pipeline

import (
	"errors"
	"strings"

	"github.com/ham-zax/distill"
)

// transientMarkers identify faults worth retrying before the recovery
// registry is consulted. Matched case-insensitively against the error
// message.
var transientMarkers = []string{
	"connection reset",
	"network",
	"rate limit",
	"temporar",
	"timed out",
	"timeout",
	"too many requests",
	"unavailable",
}

// IsTransient classifies a fault as retryable. Coded timeout and
// unavailability errors qualify directly; everything else is matched
// against the transient message patterns.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var e *distill.Error
	if errors.As(err, &e) {
		switch e.Code {
		case distill.ETIMEOUT, distill.EUNAVAILABLE:
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
