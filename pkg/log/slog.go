// Copyright The NRI Plugins Authors. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"log/slog"
)

type slogHandler struct {
	l Logger
}

var _ slog.Handler = &slogHandler{}

// SetSlogLogger installs the logger for the given source (or the default
// logger, if source is empty) as the process-wide slog default.
func SetSlogLogger(source string) {
	var l Logger
	if source == "" {
		l = Default()
	} else {
		l = Get(source)
	}
	slog.SetDefault(slog.New(&slogHandler{l: l}))
}

func (h *slogHandler) Enabled(_ context.Context, level slog.Level) bool {
	if level < slog.LevelInfo {
		return h.l.DebugEnabled()
	}
	return true
}

func (h *slogHandler) Handle(_ context.Context, r slog.Record) error {
	switch {
	case r.Level < slog.LevelInfo:
		h.l.Debug("%s", r.Message)
	case r.Level < slog.LevelWarn:
		h.l.Info("%s", r.Message)
	case r.Level < slog.LevelError:
		h.l.Warn("%s", r.Message)
	default:
		h.l.Error("%s", r.Message)
	}
	return nil
}

func (h *slogHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *slogHandler) WithGroup(_ string) slog.Handler {
	return h
}
