package catalog

import (
	"errors"

	"github.com/baolongdinh/alpha-agent/internal/api"
)

// ErrSuperseded is returned by a fetch whose result was discarded because a
// newer fetch started while it was in flight.
var ErrSuperseded = errors.New("catalog: fetch superseded by a newer request")

// FailureKind classifies fetch errors.
type FailureKind string

const (
	// KindNetwork covers rejected requests, timeouts, transport and HTTP errors.
	KindNetwork FailureKind = "network"
	// KindBackendStatus covers responses whose status is not "success" or that
	// lack a required field.
	KindBackendStatus FailureKind = "backend_status"
)

// Classify maps a fetch error to its FailureKind.
func Classify(err error) FailureKind {
	if api.IsStatusError(err) {
		return KindBackendStatus
	}
	return KindNetwork
}

// describe renders err as the message stored in FetchStatus.
func describe(err error) string {
	switch Classify(err) {
	case KindBackendStatus:
		return "backend status failure: " + err.Error()
	default:
		return "network failure: " + err.Error()
	}
}
