// SPDX-FileCopyrightText: Copyright (c) 2024-2026, Inkdash Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package logging configures the process-wide logrus logger used by the
// diagnostic engine and CLI.
package logging

import (
	"io"
	"os"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// OpField names the component emitting a log line.
	OpField = "op"
	// LogSequence numbers emitted lines so interleaved output from the
	// staged sequence can be ordered after the fact.
	LogSequence = "seq"

	LogFormatText = "text"
	LogFormatJSON = "json"
)

var hookOnce sync.Once

type sequenceHook struct {
	n atomic.Uint64
}

func (h *sequenceHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *sequenceHook) Fire(entry *logrus.Entry) error {
	entry.Data[LogSequence] = strconv.FormatUint(h.n.Add(1), 10)
	return nil
}

// SetUpLogging configures level, format and the sequence hook on the
// standard logger. Unknown levels fall back to info.
func SetUpLogging(level, format string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)

	if format == LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	hookOnce.Do(func() {
		logrus.AddHook(&sequenceHook{})
	})
}

// LogToFile mirrors log output to the given location in addition to stderr.
func LogToFile(location string) error {
	f, err := os.OpenFile(location, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return errors.Wrapf(err, "open log file %s", location)
	}
	logrus.SetOutput(io.MultiWriter(os.Stderr, f))
	return nil
}

// NewLogger returns the entry diagnostic providers hang their op field on.
func NewLogger() *logrus.Entry {
	return logrus.WithField("app", "inkdash")
}
