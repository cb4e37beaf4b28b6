package logger

import (
	"context"
	"os"
	"strings"

	"github.com/grindlemire/graft"

	"go.trai.ch/fab/internal/core/domain"
	"go.trai.ch/fab/internal/core/ports"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = "adapter.logger"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			return New(levelFromEnv()), nil
		},
	})
}

// levelFromEnv reads FAB_LOG_LEVEL. Unknown or empty values mean info.
func levelFromEnv() domain.LogLevel {
	switch strings.ToLower(os.Getenv("FAB_LOG_LEVEL")) {
	case "debug":
		return domain.LogLevelDebug
	case "warn":
		return domain.LogLevelWarn
	case "error":
		return domain.LogLevelError
	default:
		return domain.LogLevelInfo
	}
}
