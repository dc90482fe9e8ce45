package application

import "github.com/drdrak3/silvershop-core/internal/domains/cart/ports"

// Result is the single (message, severity) pair a manager retains for its
// request lifetime. Each operation overwrites it; repeated failures do not
// accumulate.
type Result struct {
	Message  string
	Severity ports.Severity
}

func (m *Manager) good(message string) {
	m.result = &Result{Message: message, Severity: ports.SeverityGood}
}

func (m *Manager) bad(message string) {
	m.result = &Result{Message: message, Severity: ports.SeverityBad}
}

func (m *Manager) warn(message string) {
	m.result = &Result{Message: message, Severity: ports.SeverityWarning}
}

// Result returns the last operation result, nil when none was recorded or it
// was cleared.
func (m *Manager) Result() *Result {
	return m.result
}

// ClearResult drops the stored result.
func (m *Manager) ClearResult() {
	m.result = nil
}
