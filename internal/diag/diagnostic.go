package diag

// Diagnostic is one finding of the processing engine, tied to an input line.
// Line is 1-based; Line 0 means the diagnostic is not tied to any line
// (configuration findings). Blank marks lines with an empty body.
type Diagnostic struct {
	Code     Code
	Severity Severity
	Line     uint32
	Blank    bool
	Message  string
}
