package graph

import "github.com/charmbracelet/log"

// SpliceRule names the placement rule that positioned a segment.
type SpliceRule int

const (
	// SpliceNearDiscovery: a parent is placed, and the discovering commit sits above it.
	SpliceNearDiscovery SpliceRule = iota
	// SpliceBeforeParent: directly above the highest placed parent.
	SpliceBeforeParent
	// SpliceAtForkPoint: no parent placed, at the row of the fork point.
	SpliceAtForkPoint
	// SpliceAfterDiscovery: no parent placed, below the discovering commit.
	SpliceAfterDiscovery
	// SpliceAppend: nothing known, appended as a disconnected branch.
	SpliceAppend
)

// String returns a string representation of the splice rule.
func (r SpliceRule) String() string {
	switch r {
	case SpliceNearDiscovery:
		return "near-discovery"
	case SpliceBeforeParent:
		return "before-parent"
	case SpliceAtForkPoint:
		return "fork-point"
	case SpliceAfterDiscovery:
		return "after-discovery"
	case SpliceAppend:
		return "append"
	default:
		return "unknown"
	}
}

// Diagnostics receives trace events from the builder.
type Diagnostics interface {
	SegmentExtracted(head string, length, queued int)
	SegmentSpliced(head string, row, length int, rule SpliceRule)
	LanesUnterminated(open []Connection)
}

// NopDiagnostics discards every event.
type NopDiagnostics struct{}

func (NopDiagnostics) SegmentExtracted(string, int, int)           {}
func (NopDiagnostics) SegmentSpliced(string, int, int, SpliceRule) {}
func (NopDiagnostics) LanesUnterminated([]Connection)              {}

// LogDiagnostics writes events to a charmbracelet logger.
// Segment events are logged at debug level, unterminated lanes at warn level.
type LogDiagnostics struct {
	Logger *log.Logger
}

// NewLogDiagnostics creates a LogDiagnostics, falling back to log.Default().
func NewLogDiagnostics(l *log.Logger) *LogDiagnostics {
	if l == nil {
		l = log.Default()
	}
	return &LogDiagnostics{Logger: l}
}

func (d *LogDiagnostics) SegmentExtracted(head string, length, queued int) {
	d.Logger.Debug("segment extracted", "head", shortSHA(head), "length", length, "queued", queued)
}

func (d *LogDiagnostics) SegmentSpliced(head string, row, length int, rule SpliceRule) {
	d.Logger.Debug("segment spliced", "head", shortSHA(head), "row", row, "length", length, "rule", rule)
}

func (d *LogDiagnostics) LanesUnterminated(open []Connection) {
	for _, c := range open {
		d.Logger.Warn("lane leaves processed range", "parent", shortSHA(c.Parent), "child", shortSHA(c.Child), "lane", c.Lane)
	}
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}

// Compile-time interface conformance checks.
var (
	_ Diagnostics = NopDiagnostics{}
	_ Diagnostics = (*LogDiagnostics)(nil)
)
