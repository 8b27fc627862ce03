// Package timeouts defines shared timeout constants used across the server.
// Centralizing these values prevents drift between callers and makes the
// durations discoverable.
package timeouts

import "time"

// StoreRequest caps the time allowed for a single statement against the
// durable store. A request that exceeds it is reported as unavailable,
// never as "probably succeeded".
const StoreRequest = 5 * time.Second

// PoolAcquire caps the wait for a free connection from the pool.
const PoolAcquire = 2 * time.Second

// StoreConnect caps the total bounded-backoff window when establishing the
// initial store connection at startup.
const StoreConnect = 30 * time.Second

// Shutdown limits how long the process waits for in-flight work during
// graceful shutdown.
const Shutdown = 5 * time.Second
