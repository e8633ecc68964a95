package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/baolongdinh/alpha-agent/internal/filter"
	"github.com/baolongdinh/alpha-agent/internal/model"
)

// Mode selects where filtering and pagination happen.
type Mode int

const (
	// ModeServer forwards filters to the backend and shows the catalog as returned.
	ModeServer Mode = iota
	// ModeClient fetches unfiltered pages and filters the catalog locally.
	ModeClient
	// ModeClientPaged loads the whole list in one request, filters locally,
	// and LoadMore reveals the next page of the filtered view without a request.
	ModeClientPaged
)

func (m Mode) String() string {
	switch m {
	case ModeClient:
		return "client"
	case ModeClientPaged:
		return "client_paged"
	default:
		return "server"
	}
}

// ParseMode maps a config value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "server":
		return ModeServer, nil
	case "client":
		return ModeClient, nil
	case "client_paged":
		return ModeClientPaged, nil
	}
	return ModeServer, fmt.Errorf("unknown catalog mode %q", s)
}

// Config holds Store configuration.
type Config struct {
	Mode           Mode
	PageSize       int
	FullLoadLimit  int // Request limit for ModeClientPaged
	Missing        filter.MissingPolicy
	RefreshOnReset bool
	DetailTTL      time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Mode:          ModeServer,
		PageSize:      model.DefaultPageSize,
		FullLoadLimit: 1000,
		Missing:       filter.MissingInclude,
		DetailTTL:     30 * time.Second,
	}
}
