// Command xbasecli is a thin terminal front end over the xbase package: it
// has no business logic of its own, only flag parsing and styled output
// over Table.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mkfoss/xbase"
	"github.com/mkfoss/xbase/internal/styles"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "inspect":
		err = runInspect(os.Args[2:])
	case "dump":
		err = runDump(os.Args[2:])
	case "create":
		err = runCreate(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Println(styles.Error(err.Error()))
		os.Exit(1)
	}
}

func usage() {
	fmt.Println(styles.Header("xbasecli"))
	fmt.Println(styles.Info("Usage:"))
	fmt.Println(styles.Example("inspect <file>", "print the record count"))
	fmt.Println(styles.Example("dump <file>", "print all records as a table"))
	fmt.Println(styles.Example("create <file> --schema <name:type:len:dec,...>", "build a new empty file"))
}

func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: xbasecli inspect <file>")
	}
	path := fs.Arg(0)

	t := xbase.New(path)
	defer t.Close()
	rows, err := t.ReadRecords()
	if err != nil {
		return err
	}

	fmt.Println(styles.Header("inspect: " + path))
	fmt.Println(styles.RecordCount(len(rows)))
	return nil
}

func runDump(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: xbasecli dump <file>")
	}
	path := fs.Arg(0)

	t := xbase.New(path)
	defer t.Close()
	rows, err := t.ReadRecords()
	if err != nil {
		return err
	}

	fmt.Println(styles.Header("dump: " + path))
	for i, row := range rows {
		fmt.Printf("%s %v\n", styles.Dim(fmt.Sprintf("[%d]", i)), row)
	}
	fmt.Println(styles.RecordCount(len(rows)))
	return nil
}

func runCreate(args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	schemaFlag := fs.String("schema", "", "comma-separated name:type:len:dec field list")
	fs.Parse(args)
	path := ""
	if fs.NArg() > 0 {
		path = fs.Arg(0)
		// flag stops at the first positional argument; parse what follows
		// the file name so --schema may come after it.
		fs.Parse(fs.Args()[1:])
	}
	if path == "" || fs.NArg() != 0 || *schemaFlag == "" {
		return fmt.Errorf("usage: xbasecli create <file> --schema <name:type:len:dec,...>")
	}

	fields, err := parseSchema(*schemaFlag)
	if err != nil {
		return err
	}

	t := xbase.New(path)
	if err := t.Create(fields); err != nil {
		return err
	}
	defer t.Close()

	fmt.Println(styles.Success("created " + path))
	for _, f := range fields {
		fmt.Println(styles.SchemaRow(f.Name, f.Type, f.Length, f.Decimals))
	}
	return nil
}

func parseSchema(spec string) ([]xbase.Field, error) {
	parts := strings.Split(spec, ",")
	fields := make([]xbase.Field, 0, len(parts))
	for _, part := range parts {
		tokens := strings.Split(part, ":")
		if len(tokens) < 3 || len(tokens) > 4 {
			return nil, fmt.Errorf("invalid field spec %q: want name:type:len[:dec]", part)
		}
		length, err := strconv.Atoi(tokens[2])
		if err != nil {
			return nil, fmt.Errorf("invalid length in %q: %v", part, err)
		}
		decimals := 0
		if len(tokens) == 4 {
			decimals, err = strconv.Atoi(tokens[3])
			if err != nil {
				return nil, fmt.Errorf("invalid decimals in %q: %v", part, err)
			}
		}
		if len(tokens[1]) != 1 {
			return nil, fmt.Errorf("invalid type code in %q: must be one ASCII letter", part)
		}
		fields = append(fields, xbase.Field{
			Name:     tokens[0],
			Type:     tokens[1][0],
			Length:   length,
			Decimals: decimals,
		})
	}
	return fields, nil
}
