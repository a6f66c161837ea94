package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevWarning is for findings the user should see by default.
	SevWarning Severity = iota
	// SevChange is for line-rewrite traces.
	SevChange
	SevTrace
)

func (s Severity) String() string {
	switch s {
	case SevWarning:
		return "WARNING"
	case SevChange:
		return "CHANGE"
	case SevTrace:
		return "TRACE"
	}
	return "UNKNOWN"
}

// Verbosity возвращает минимальный уровень -v, при котором диагностика видна.
// Предупреждения печатаются всегда, замены строк — на -vv, разбор строк — на -vvv.
func (s Severity) Verbosity() int {
	switch s {
	case SevWarning:
		return 0
	case SevChange:
		return 3
	case SevTrace:
		return 4
	}
	return 0
}
