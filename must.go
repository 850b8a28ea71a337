package xbase

// MustCreate calls Create and panics if it fails.
func (t *Table) MustCreate(fields []Field) {
	if err := t.Create(fields); err != nil {
		panic(err)
	}
}

// MustAppendRecords calls AppendRecords and panics if it fails.
func (t *Table) MustAppendRecords(rows []Row) int {
	n, err := t.AppendRecords(rows)
	if err != nil {
		panic(err)
	}
	return n
}

// MustReadRecords calls ReadRecords and panics if it fails.
func (t *Table) MustReadRecords() []Row {
	rows, err := t.ReadRecords()
	if err != nil {
		panic(err)
	}
	return rows
}

// MustUpdateRecord calls UpdateRecord and panics if it fails.
func (t *Table) MustUpdateRecord(index int, partial Row) {
	if err := t.UpdateRecord(index, partial); err != nil {
		panic(err)
	}
}
