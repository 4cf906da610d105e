package gelf

import (
	"encoding/json"
	"net"
	"os"
	"strings"
	"time"
)

// Writer ships log lines to Graylog as GELF UDP messages. It implements
// io.Writer so it can sit behind log.SetOutput via io.MultiWriter.
type Writer struct {
	conn     net.Conn
	hostname string
	service  string
}

// New creates a GELF UDP writer connected to addr (e.g. "172.17.0.1:12201").
func New(addr, service string) (*Writer, error) {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return nil, err
	}
	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = service
	}
	return &Writer{conn: conn, hostname: hostname, service: service}, nil
}

// Write sends one GELF message per call. The stdlib log package writes lines
// like "2006/01/02 15:04:05 message\n"; the fixed 20-character date prefix
// and trailing newline are stripped for a clean short_message.
func (w *Writer) Write(p []byte) (int, error) {
	msg := strings.TrimRight(string(p), "\n")

	short := msg
	if len(msg) > 20 && msg[4] == '/' && msg[7] == '/' && msg[10] == ' ' && msg[13] == ':' {
		short = msg[20:]
	}

	level := 6 // informational
	switch {
	case strings.Contains(short, "PANIC:") || strings.Contains(short, "Fatal"):
		level = 3 // error
	case strings.HasPrefix(short, "Warning:"):
		level = 4 // warning
	}

	payload, err := json.Marshal(map[string]interface{}{
		"version":       "1.1",
		"host":          w.hostname,
		"short_message": short,
		"timestamp":     float64(time.Now().UnixNano()) / 1e9,
		"level":         level,
		"_service":      w.service,
	})
	if err != nil {
		return len(p), nil // never fail the log call
	}

	// Fire-and-forget.
	w.conn.Write(payload)
	return len(p), nil
}

func (w *Writer) Close() error {
	return w.conn.Close()
}
