package diag

// Reporter — минимальный контракт получения диагностик от движка.
// Реализации: BagReporter (кладёт в Bag), NopReporter, MultiReporter (fan-out),
// report.Printer (печатает поток сразу).
type Reporter interface {
	Report(code Code, sev Severity, line uint32, blank bool, msg string)
}

// BagReporter — адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, line uint32, blank bool, msg string) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Code: code, Severity: sev,
		Line: line, Blank: blank, Message: msg,
	})
}

// NopReporter discards every diagnostic.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, uint32, bool, string) {}

// MultiReporter duplicates diagnostics to each receiver in order.
type MultiReporter []Reporter

func (m MultiReporter) Report(code Code, sev Severity, line uint32, blank bool, msg string) {
	for _, r := range m {
		if r != nil {
			r.Report(code, sev, line, blank, msg)
		}
	}
}
