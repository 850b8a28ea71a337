// Package xbase provides a Go interface to dBase III/IV/FoxPro-compatible
// (.dbf) table files: create a typed schema, append records in bulk, read
// all records as structured values, and update individual records in
// place. It targets the classic xBase binary format — fixed-width rows,
// a 32-byte header, a field descriptor array — without indexing, memo
// fields, transactions, or concurrent multi-writer support.
//
// Basic usage:
//
//	t := xbase.New("people.dbf", xbase.WithEncoding("gbk"))
//	err := t.Create([]xbase.Field{
//		{Name: "NAME", Type: xbase.Character, Length: 50},
//		{Name: "AGE", Type: xbase.Numeric, Length: 3},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer t.Close()
//
//	n, err := t.AppendRecords([]xbase.Row{{"NAME": "John Doe", "AGE": 30}})
//	rows, err := t.ReadRecords()
package xbase
