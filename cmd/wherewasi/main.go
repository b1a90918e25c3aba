// Command wherewasi inspects and edits the save files written by the
// wherewasi plugin.
//
//	wherewasi [-dir DIR] [-format text|yaml] list
//	wherewasi [-dir DIR] [-format text|yaml] show NAME
//	wherewasi [-dir DIR] [-format text|yaml] set NAME X Y Z
//	wherewasi [-dir DIR] [-format text|yaml] rm NAME
//	wherewasi [-dir DIR] [-format text|yaml] convert -to yaml|text
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("wherewasi: ")

	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("wherewasi", flag.ContinueOnError)
	dir := fs.String("dir", "", "Save directory (default $WHEREWASI_DIR or ./assets/saves).")
	format := fs.String("format", "", "Save format: text or yaml (default $WHEREWASI_FORMAT or text).")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: wherewasi [flags] list|show|set|rm|convert [args]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := openStore(*dir, *format)
	if err != nil {
		return err
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return flag.ErrHelp
	}

	cmd := &command{store: store, out: out}
	rest := fs.Args()[1:]
	switch fs.Arg(0) {
	case "list", "ls":
		return cmd.list()
	case "show":
		return cmd.show(rest)
	case "set":
		return cmd.set(rest)
	case "rm":
		return cmd.remove(rest)
	case "convert":
		return cmd.convert(rest)
	}
	return fmt.Errorf("unknown command %q", fs.Arg(0))
}
