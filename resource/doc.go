// Package resource governs the resources a neighbor-list build may consume.
//
// A Controller tracks three budgets:
//
//   - Memory: bytes reserved by index buffers while a build is in flight
//     (fail-fast, never blocks)
//   - Workers: concurrent frames inside BuildBatch
//   - IO: bytes per second moved by snapshot Save/Load
//
// # Memory
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 64 << 20,
//	})
//
//	if err := rc.AcquireMemory(4096); err != nil {
//	    // ErrMemoryLimitExceeded
//	}
//	defer rc.ReleaseMemory(4096)
//
// # Nil Safety
//
// All methods accept a nil *Controller and then behave as if no limit were
// configured.
package resource
