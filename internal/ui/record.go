package ui

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"

	"kandivoc/internal/lexicon"
)

// RecordingLog prints messages immediately and keeps a record of everything
// logged, so that a whole selection session can be appended to the selection
// log file afterwards.
type RecordingLog struct {
	messages []string
}

// NewRecordingLog creates an empty RecordingLog.
func NewRecordingLog() *RecordingLog {
	return &RecordingLog{}
}

// Infof prints an info message and records it for later.
func (l *RecordingLog) Infof(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	pterm.DefaultBasicText.Println(msg)
	l.messages = append(l.messages, msg)
}

// Warnf prints a warning message and records it, prefixed by "WARNING: ".
func (l *RecordingLog) Warnf(format string, args ...any) {
	msg := "WARNING: " + fmt.Sprintf(format, args...)
	pterm.DefaultBasicText.Println(pterm.FgYellow.Sprint(msg))
	l.messages = append(l.messages, msg)
}

// Messages returns the messages recorded so far.
func (l *RecordingLog) Messages() []string {
	return l.messages
}

// Clear discards all recorded messages.
func (l *RecordingLog) Clear() {
	l.messages = nil
}

// AppendAllMessages appends all recorded messages to filename, creating it
// if needed. An existing file is backed up first and the new messages are
// separated from its content by two empty lines. Does nothing when no
// messages were recorded; otherwise the record is cleared afterwards.
func (l *RecordingLog) AppendAllMessages(filename string) error {
	if len(l.messages) == 0 {
		return nil
	}
	_, statErr := os.Stat(filename)
	fileExists := statErr == nil

	if err := lexicon.CopyToBackup(filename); err != nil {
		return err
	}

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if fileExists {
		if _, err := f.WriteString("\n\n"); err != nil {
			return err
		}
	}
	for _, msg := range l.messages {
		if _, err := f.WriteString(msg + "\n"); err != nil {
			return err
		}
	}

	l.messages = nil
	return nil
}
