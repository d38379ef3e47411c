package main

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/indigo-web/httparse/config"
	"github.com/indigo-web/httparse/http/status"
	"github.com/indigo-web/httparse/httpparser"
	json "github.com/json-iterator/go"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

type logger struct {
	lines []string
}

func (l *logger) Printf(format string, v ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func run(t *testing.T, input string, args ...string) ([]record, *logger, error) {
	cfg := config.Default()
	opts, err := parseFlags(args, cfg)
	require.NoError(t, err)

	var (
		out bytes.Buffer
		log logger
	)

	err = dump(strings.NewReader(input), &out, cfg, opts, &log)

	var records []record
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var rec record
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		records = append(records, rec)
	}

	return records, &log, err
}

func gzipped(t *testing.T, text string) string {
	var buff bytes.Buffer
	w := gzip.NewWriter(&buff)
	_, err := w.Write([]byte(text))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buff.String()
}

func TestDump(t *testing.T) {
	t.Run("requests", func(t *testing.T) {
		input := "GET /index.html HTTP/1.1\r\nHost: example.com\r\n\r\n" +
			"POST /upload HTTP/1.1\r\nTransfer-Encoding: chunked\r\n\r\n" +
			"5\r\nHello\r\n0\r\nChecksum: 1\r\n\r\n"

		records, log, err := run(t, input, "-kind", "request", "-read-size", "3")
		require.NoError(t, err)
		require.Len(t, records, 2)

		require.Equal(t, "request", records[0].Kind)
		require.Equal(t, "GET", records[0].Method)
		require.Equal(t, "/index.html", records[0].URL)
		require.Equal(t, "HTTP/1.1", records[0].Version)
		require.Equal(t, [][2]string{{"Host", "example.com"}}, records[0].Headers)
		require.True(t, records[0].KeepAlive)

		require.Equal(t, "POST", records[1].Method)
		require.Equal(t, "Hello", records[1].Body)
		require.Equal(t, []uint64{5, 0}, records[1].Chunks)
		require.Equal(t, [][2]string{{"Checksum", "1"}}, records[1].Trailers)

		require.Equal(t, []string{"2 messages, " + strconv.Itoa(len(input)) + " bytes"}, log.lines)
	})

	t.Run("target", func(t *testing.T) {
		input := "GET http://user@example.com:8080/p?a=1&b=2#frag HTTP/1.1\r\n\r\n" +
			"GET /bad?query HTTP/1.1\r\n\r\n"

		records, log, err := run(t, input, "-kind", "request")
		require.NoError(t, err)
		require.Len(t, records, 2)
		require.Equal(t, map[string]string{
			"schema":   "http",
			"userinfo": "user",
			"host":     "example.com",
			"port":     "8080",
			"path":     "/p",
			"query":    "a=1&b=2",
			"fragment": "frag",
		}, records[0].Target)
		require.Equal(t, [][2]string{{"a", "1"}, {"b", "2"}}, records[0].Query)

		require.Equal(t, map[string]string{"path": "/bad", "query": "query"}, records[1].Target)
		require.Empty(t, records[1].Query)
		require.Contains(t, log.lines[0], "bad query")
	})

	t.Run("response detected", func(t *testing.T) {
		records, _, err := run(t, "HTTP/1.0 404 Not Found\r\n\r\nno such page")
		require.NoError(t, err)
		require.Len(t, records, 1)
		require.Equal(t, "response", records[0].Kind)
		require.Equal(t, status.NotFound, records[0].Status)
		require.Equal(t, "Not Found", records[0].Reason)
		require.Empty(t, records[0].Method)
		require.Equal(t, "no such page", records[0].Body)
	})

	t.Run("decode", func(t *testing.T) {
		body := gzipped(t, "Hello, world!")
		input := "HTTP/1.1 200 OK\r\nContent-Encoding: gzip\r\n" +
			"Content-Length: " + strconv.Itoa(len(body)) + "\r\n\r\n" + body

		records, _, err := run(t, input, "-decode")
		require.NoError(t, err)
		require.Len(t, records, 1)
		require.Equal(t, "Hello, world!", records[0].Body)
	})

	t.Run("undecodable body", func(t *testing.T) {
		input := "HTTP/1.1 200 OK\r\nContent-Encoding: br\r\nContent-Length: 5\r\n\r\nhello"
		records, log, err := run(t, input, "-decode")
		require.NoError(t, err)
		require.Len(t, records, 1)
		require.Equal(t, "hello", records[0].Body)
		require.Contains(t, log.lines[0], "body left as is")
	})

	t.Run("upgrade", func(t *testing.T) {
		head := "GET /chat HTTP/1.1\r\nConnection: Upgrade\r\nUpgrade: websocket\r\n\r\n"
		records, log, err := run(t, head+"\x81\x05hello", "-read-size", "16")
		require.NoError(t, err)
		require.Len(t, records, 1)
		require.True(t, records[0].Upgrade)
		require.Equal(t, []string{
			fmt.Sprintf("1 messages, the protocol switched at byte %d, 7 bytes skipped", len(head)),
		}, log.lines)
	})

	t.Run("malformed", func(t *testing.T) {
		records, _, err := run(t, "GET / HTTP/1.1\r\nHost: a\r\n\r\nGET / HTTQ/1.1\r\n\r\n", "-kind", "request")
		require.Len(t, records, 1)
		require.ErrorIs(t, err, httpparser.ErrInvalidConstant)
		require.Contains(t, err.Error(), "byte 36")
	})

	t.Run("truncated", func(t *testing.T) {
		_, _, err := run(t, "POST / HTTP/1.1\r\nContent-Length: 10\r\n\r\nhalf", "-kind", "request")
		require.ErrorIs(t, err, httpparser.ErrInvalidEndOfStream)
	})

	t.Run("strict", func(t *testing.T) {
		records, _, err := run(t, "GET / HTTP/1.1\r\nConnection: close\r\n\r\nGET / HTTP/1.1\r\n\r\n", "-strict")
		require.Len(t, records, 1)
		require.ErrorIs(t, err, httpparser.ErrClosedConnection)
	})
}

func TestFlags(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := config.Default()
		opts, err := parseFlags(nil, cfg)
		require.NoError(t, err)
		require.Equal(t, httpparser.Both, opts.kind)
		require.False(t, opts.decode)
		require.Empty(t, opts.file)
		require.Equal(t, config.Default(), cfg)
	})

	t.Run("applied", func(t *testing.T) {
		cfg := config.Default()
		opts, err := parseFlags([]string{
			"-kind", "response", "-strict", "-max-header-size", "512", "-max-body-size", "1024", "dump.bin",
		}, cfg)
		require.NoError(t, err)
		require.Equal(t, httpparser.Response, opts.kind)
		require.Equal(t, "dump.bin", opts.file)
		require.True(t, cfg.Parser.Strict)
		require.Equal(t, uint32(512), cfg.Parser.MaxHeaderSize)
		require.Equal(t, 1024, cfg.Collector.BodySize.Maximal)
		require.Equal(t, 1024, cfg.Collector.BodySize.Default)
	})

	t.Run("bad kind", func(t *testing.T) {
		_, err := parseFlags([]string{"-kind", "nope"}, config.Default())
		require.ErrorIs(t, err, errUnknownKind)
	})

	t.Run("bad read size", func(t *testing.T) {
		_, err := parseFlags([]string{"-read-size", "0"}, config.Default())
		require.ErrorIs(t, err, errBadReadSize)
	})

	t.Run("too many files", func(t *testing.T) {
		_, err := parseFlags([]string{"a", "b"}, config.Default())
		require.ErrorIs(t, err, errTooManyFiles)
	})
}
