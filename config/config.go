package config

type (
	CollectorFieldSize struct {
		Default, Maximal int
	}

	CollectorBodySize struct {
		Default, Maximal int
	}
)

type (
	Parser struct {
		// MaxHeaderSize limits the number of bytes consumed by a start line, headers, chunk size
		// lines and trailers. Exceeding it results in httpparser.ErrHeaderOverflow. It protects
		// against an endless stream of header bytes, as the parser itself doesn't buffer anything.
		MaxHeaderSize uint32
		// Strict enables the strict mode: CR must always be followed by LF, header names and
		// request targets may not contain any lenient characters, and the connection is considered
		// dead after a message that doesn't allow it to be reused.
		Strict bool `test:"nullable"`
	}

	Collector struct {
		// FieldSize limits the memory taken by all the assembled fields of a message, i.e. URL,
		// status text, header names and values, trailers included. Default value is the initial
		// capacity of the buffer.
		FieldSize CollectorFieldSize
		// BodySize limits the amount of body bytes stored per message.
		BodySize CollectorBodySize
		// HeadersPrealloc is the number of preallocated header pairs per message.
		HeadersPrealloc int
	}

	Dump struct {
		// ReadBufferSize is the size of chunks the input stream is fed to the parser with.
		ReadBufferSize int
	}
)

// Config holds settings used across the parser, the collector and the dump tool, mainly
// restrictions, limitations and pre-allocations.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	Parser    Parser
	Collector Collector
	Dump      Dump
}

// Default returns default config.
func Default() *Config {
	return &Config{
		Parser: Parser{
			MaxHeaderSize: 80 * 1024,
			Strict:        false,
		},
		Collector: Collector{
			FieldSize: CollectorFieldSize{
				Default: 1024,
				Maximal: 80 * 1024, // there's no point in more than the parser lets through
			},
			BodySize: CollectorBodySize{
				Default: 4 * 1024,
				Maximal: 16 * 1024 * 1024,
			},
			HeadersPrealloc: 10,
		},
		Dump: Dump{
			ReadBufferSize: 4 * 1024,
		},
	}
}
