// Package model defines the record and tagged-variant types shared
// across the collector, store, and query layers.
package model

// RunOutcome classifies how a Command Runner invocation concluded.
// Collectors branch on this instead of sniffing error strings.
type RunOutcome int

const (
	// RunOK means the process exited zero within its deadline.
	RunOK RunOutcome = iota
	// RunMissing means the binary does not exist; no shell was invoked.
	RunMissing
	// RunTimeout means the deadline elapsed and the process tree was killed.
	RunTimeout
	// RunNonZero means the process exited with a non-zero status.
	RunNonZero
	// RunIOError means starting or communicating with the process failed
	// for a reason other than the binary being absent.
	RunIOError
)

func (o RunOutcome) String() string {
	switch o {
	case RunOK:
		return "ok"
	case RunMissing:
		return "missing"
	case RunTimeout:
		return "timeout"
	case RunNonZero:
		return "nonzero"
	case RunIOError:
		return "io_error"
	default:
		return "unknown"
	}
}

// CacheResult classifies a cache lookup outcome.
type CacheResult int

const (
	// CacheMiss means no row exists for the key.
	CacheMiss CacheResult = iota
	// CacheFresh means a row exists and is within its TTL.
	CacheFresh
	// CacheStale means a row exists but its TTL has expired.
	CacheStale
)

func (r CacheResult) String() string {
	switch r {
	case CacheFresh:
		return "fresh"
	case CacheStale:
		return "stale"
	case CacheMiss:
		return "miss"
	default:
		return "unknown"
	}
}

// CollectorState is the lifecycle state of one collector invocation.
type CollectorState int

const (
	StateIdle CollectorState = iota
	StateRunning
	StateOK
	StateDegraded
	StateFailed
)

func (s CollectorState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateOK:
		return "ok"
	case StateDegraded:
		return "degraded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// CronStatus is the normalized status of one cron job.
type CronStatus int

const (
	CronIdle CronStatus = iota
	CronOK
	CronError
	CronRunning
)

func (s CronStatus) String() string {
	switch s {
	case CronOK:
		return "ok"
	case CronError:
		return "error"
	case CronRunning:
		return "running"
	case CronIdle:
		return "idle"
	default:
		return "idle"
	}
}

// ParseCronStatus normalizes free-form status text to the four-value
// enum. Anything unrecognized becomes CronIdle, per spec.
func ParseCronStatus(s string) CronStatus {
	switch s {
	case "ok", "success", "succeeded":
		return CronOK
	case "error", "fail", "failed":
		return CronError
	case "running", "active":
		return CronRunning
	default:
		return CronIdle
	}
}
