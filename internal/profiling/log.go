package profiling

import "github.com/sirupsen/logrus"

// LogTool logs every event through logrus. Begin is logged at debug
// level, End at info level, or at warn level when the event failed.
type LogTool struct {
	logger logrus.FieldLogger
}

// NewLogTool creates a tool that writes to logger.
func NewLogTool(logger logrus.FieldLogger) *LogTool {
	return &LogTool{logger: logger}
}

func (t *LogTool) fields(ev *Event) logrus.Fields {
	return logrus.Fields{
		"kernel_id": ev.ID.String(),
		"kind":      ev.Kind.String(),
		"label":     ev.Label,
		"device":    ev.Device,
		"size":      ev.Size,
	}
}

// Begin implements Tool.
func (t *LogTool) Begin(ev *Event) {
	t.logger.WithFields(t.fields(ev)).Debug("profiling: begin")
}

// End implements Tool.
func (t *LogTool) End(ev *Event) {
	entry := t.logger.WithFields(t.fields(ev)).WithField("duration", ev.Duration)
	if ev.Err != nil {
		entry.WithError(ev.Err).Warn("profiling: end")
		return
	}
	entry.Info("profiling: end")
}
