package mcp

import (
	"context"
	"os"
	"time"

	"beacon/internal/logging"
)

// WatchParent monitors for parent process death in a background
// goroutine. When the parent PID changes (the editor or agent host that
// spawned us went away), it calls cancelFn to trigger graceful
// shutdown. This prevents zombie tool-server processes from
// accumulating.
//
// This must NOT read from stdin: the SDK's stdio transport owns stdin
// exclusively, and stealing bytes here would corrupt the JSON-RPC
// stream.
//
// The goroutine exits when ctx is canceled or parent death is detected.
func WatchParent(ctx context.Context, cancelFn context.CancelFunc) {
	log := logging.New("mcp")
	ppid := os.Getppid()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(2 * time.Second):
				if os.Getppid() != ppid {
					log.Warn("parent process died, initiating shutdown", "was_pid", ppid)
					cancelFn()
					return
				}
			}
		}
	}()
}
