/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: formatter.go
Description: Console formatters for the condprob logger. CustomFormatter renders a
compact colored line; InferenceFormatter adds a domain prefix for inference, analysis
and table events.
*/

package logging

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// CustomFormatter renders one colored line per entry with sorted fields
type CustomFormatter struct {
	Timestamp bool
	Caller    bool
	Colors    bool
}

// Format formats a log entry
func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return f.render(entry, ""), nil
}

func (f *CustomFormatter) render(entry *logrus.Entry, prefix string) []byte {
	var output strings.Builder

	if f.Timestamp {
		f.paint(&output, 36, entry.Time.Format("2006-01-02 15:04:05.000"))
		output.WriteString(" ")
	}

	f.paint(&output, levelColor(entry.Level), strings.ToUpper(entry.Level.String()))
	output.WriteString(" ")

	if prefix != "" {
		f.paint(&output, 35, "["+prefix+"]")
		output.WriteString(" ")
	}

	if f.Caller && entry.HasCaller() {
		f.paint(&output, 33, fmt.Sprintf("[%s:%d]", entry.Caller.File, entry.Caller.Line))
		output.WriteString(" ")
	}

	output.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		output.WriteString(" ")
		output.WriteString(f.formatFields(entry.Data))
	}

	output.WriteString("\n")
	return []byte(output.String())
}

func (f *CustomFormatter) paint(b *strings.Builder, color int, s string) {
	if f.Colors {
		fmt.Fprintf(b, "\033[%dm%s\033[0m", color, s)
		return
	}
	b.WriteString(s)
}

func levelColor(level logrus.Level) int {
	switch level {
	case logrus.DebugLevel, logrus.TraceLevel:
		return 37
	case logrus.InfoLevel:
		return 32
	case logrus.WarnLevel:
		return 33
	case logrus.ErrorLevel:
		return 31
	default:
		return 35
	}
}

func (f *CustomFormatter) formatFields(fields logrus.Fields) string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		value := formatValue(fields[key])
		if f.Colors {
			parts = append(parts, fmt.Sprintf("\033[34m%s\033[0m=\033[32m%s\033[0m", key, value))
		} else {
			parts = append(parts, fmt.Sprintf("%s=%s", key, value))
		}
	}
	return strings.Join(parts, " ")
}

func formatValue(value interface{}) string {
	switch v := value.(type) {
	case time.Duration:
		return v.String()
	case time.Time:
		return v.Format("15:04:05.000")
	case float64:
		return fmt.Sprintf("%.6g", v)
	case string:
		if len(v) > 50 {
			return v[:50] + "..."
		}
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// InferenceFormatter tags inference, analysis and table events with a prefix
type InferenceFormatter struct {
	CustomFormatter
}

// Format formats a log entry with its domain prefix
func (f *InferenceFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return f.render(entry, eventPrefix(entry)), nil
}

// EventField is the field Logger's domain methods set to select a prefix
const EventField = "event"

func eventPrefix(entry *logrus.Entry) string {
	if event, ok := entry.Data[EventField].(string); ok {
		switch event {
		case eventInference:
			return "INFER"
		case eventAnalysis:
			return "ANALYZE"
		case eventTable:
			return "TABLE"
		}
	}
	switch {
	case strings.Contains(entry.Message, "Inference"):
		return "INFER"
	case strings.Contains(entry.Message, "analysis"), strings.Contains(entry.Message, "Configuration measured"):
		return "ANALYZE"
	case strings.Contains(entry.Message, "Conditioning event"):
		return "INFER"
	default:
		return ""
	}
}
