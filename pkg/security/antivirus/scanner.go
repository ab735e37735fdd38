package antivirus

import (
	"context"
)

// ScanResult contains the result of a malware scan
type ScanResult struct {
	Infected    bool   // True if malware was detected
	ThreatName  string // Name of detected threat (empty if clean)
	ScannerName string // Name of scanner that produced this result
	Error       error  // Scanner failure; callers treat it as not clean
}

// Scanner is the interface for pluggable antivirus implementations.
// Reject-on-detect: there is no quarantine.
type Scanner interface {
	Scan(ctx context.Context, filename string, data []byte) ScanResult
	Name() string
	Available(ctx context.Context) bool
}

// NoOpScanner always reports clean. Used when no scanner is configured.
type NoOpScanner struct{}

var _ Scanner = (*NoOpScanner)(nil)

func NewNoOpScanner() *NoOpScanner { return &NoOpScanner{} }

func (n *NoOpScanner) Scan(context.Context, string, []byte) ScanResult {
	return ScanResult{ScannerName: n.Name()}
}

func (n *NoOpScanner) Name() string { return "noop" }

func (n *NoOpScanner) Available(context.Context) bool { return true }
