package logbridge

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

// Bridge re-emits log lines produced by the project's other language
// stacks through the shared logrus pipeline, so output from every
// component lands in one stream with one format.
type Bridge struct {
	logger *logrus.Logger
	source string
}

// NewBridge creates a bridge. The source tag is attached to every
// forwarded entry, naming the component the lines came from.
func NewBridge(logger *logrus.Logger, source string) *Bridge {
	return &Bridge{logger: logger, source: source}
}

// Entry is one parsed foreign log line.
type Entry struct {
	Timestamp string
	Level     logrus.Level
	Component string
	Message   string
	Fields    logrus.Fields
}

// lineRe matches the shared cross-language line format:
// optional timestamp, [LEVEL], optional [component], message.
var lineRe = regexp.MustCompile(`^(?:(\S*\d\S*)\s+)?\[(\w+)\]\s*(?:\[([^\]]+)\]\s*)?(.*)$`)

var levelNames = map[string]logrus.Level{
	"TRACE":    logrus.TraceLevel,
	"DEBUG":    logrus.DebugLevel,
	"INFO":     logrus.InfoLevel,
	"WARN":     logrus.WarnLevel,
	"WARNING":  logrus.WarnLevel,
	"ERROR":    logrus.ErrorLevel,
	"FATAL":    logrus.FatalLevel,
	"CRITICAL": logrus.FatalLevel,
}

// ParseLine splits a foreign log line into level, component, message
// and trailing key=value fields. Lines that do not carry a level are
// forwarded verbatim at info.
func ParseLine(line string) Entry {
	entry := Entry{Level: logrus.InfoLevel, Fields: logrus.Fields{}, Message: line}

	m := lineRe.FindStringSubmatch(line)
	if m == nil {
		return entry
	}

	level, ok := levelNames[strings.ToUpper(m[2])]
	if !ok {
		return entry
	}

	entry.Timestamp = m[1]
	entry.Level = level
	entry.Component = m[3]
	entry.Message, entry.Fields = splitFields(m[4])
	return entry
}

// splitFields strips trailing key=value tokens from a message.
// The first non key=value token, scanning right to left, ends the
// field region; everything before it stays part of the message.
func splitFields(message string) (string, logrus.Fields) {
	fields := logrus.Fields{}
	tokens := strings.Fields(message)

	cut := len(tokens)
	for i := len(tokens) - 1; i >= 0; i-- {
		key, value, ok := strings.Cut(tokens[i], "=")
		if !ok || key == "" {
			break
		}
		fields[key] = value
		cut = i
	}

	return strings.Join(tokens[:cut], " "), fields
}

// Forward reads lines from r and re-emits each through the bridge
// logger until EOF or context cancellation.
func (b *Bridge) Forward(ctx context.Context, r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	count := 0
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return count, ctx.Err()
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		b.emit(ParseLine(line))
		count++
	}

	if err := scanner.Err(); err != nil {
		return count, fmt.Errorf("failed to read log stream: %w", err)
	}
	return count, nil
}

// ForwardFile forwards one log file; "-" means stdin.
func (b *Bridge) ForwardFile(ctx context.Context, path string) (int, error) {
	if path == "-" {
		return b.Forward(ctx, os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	return b.Forward(ctx, f)
}

func (b *Bridge) emit(entry Entry) {
	fields := logrus.Fields{"source": b.source}
	if entry.Component != "" {
		fields["component"] = entry.Component
	}
	for k, v := range entry.Fields {
		fields[k] = v
	}

	b.logger.WithFields(fields).Log(entry.Level, entry.Message)
}
