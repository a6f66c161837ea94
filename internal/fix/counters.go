package fix

// Tally counts one issue category over one file.
type Tally struct {
	Seen  int
	Fixed int
}

func (t *Tally) add(o Tally) {
	t.Seen += o.Seen
	t.Fixed += o.Fixed
}

// Counters is the per-category issue bookkeeping of one processing session.
// The category set is fixed, one field per category. For every category
// Fixed <= Seen; outside the width-conversion categories Fixed is either 0 or
// equal to Seen after a run.
type Counters struct {
	TrailSpace   Tally
	EOFBlanks    Tally
	EOFNewline   Tally
	EOL          Tally
	TabSpaceMix  Tally
	ChangeTabs   Tally
	ChangeSpaces Tally
}

// Add accumulates another file's counters.
func (c *Counters) Add(o Counters) {
	c.TrailSpace.add(o.TrailSpace)
	c.EOFBlanks.add(o.EOFBlanks)
	c.EOFNewline.add(o.EOFNewline)
	c.EOL.add(o.EOL)
	c.TabSpaceMix.add(o.TabSpaceMix)
	c.ChangeTabs.add(o.ChangeTabs)
	c.ChangeSpaces.add(o.ChangeSpaces)
}

func (c Counters) TotalSeen() int {
	return c.TrailSpace.Seen + c.EOFBlanks.Seen + c.EOFNewline.Seen +
		c.EOL.Seen + c.TabSpaceMix.Seen + c.ChangeTabs.Seen + c.ChangeSpaces.Seen
}

func (c Counters) TotalFixed() int {
	return c.TrailSpace.Fixed + c.EOFBlanks.Fixed + c.EOFNewline.Fixed +
		c.EOL.Fixed + c.TabSpaceMix.Fixed + c.ChangeTabs.Fixed + c.ChangeSpaces.Fixed
}

// Changed reports whether any rewrite happened.
func (c Counters) Changed() bool {
	return c.TotalFixed() > 0
}
