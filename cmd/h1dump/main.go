// Command h1dump parses a raw HTTP/1 byte stream and prints every message as a line of JSON.
//
// Usage:
//
//	h1dump [flags] [file]
//
// The stream is read from stdin when no file is given or the file is "-".
package main

import (
	"errors"
	"flag"
	"io"
	"log"
	"os"

	"github.com/indigo-web/httparse/config"
)

func main() {
	logger := log.New(os.Stderr, "h1dump: ", 0)
	cfg := config.Default()

	opts, err := parseFlags(os.Args[1:], cfg)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}

		logger.Printf("%s", err)
		os.Exit(2)
	}

	var in io.Reader = os.Stdin
	if opts.file != "" && opts.file != "-" {
		file, err := os.Open(opts.file)
		if err != nil {
			logger.Fatal(err)
		}

		defer file.Close()
		in = file
	}

	if err = dump(in, os.Stdout, cfg, opts, logger); err != nil {
		logger.Printf("%s", err)
		os.Exit(1)
	}
}
