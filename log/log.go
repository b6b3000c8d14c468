package log

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/Aswin-programmer/Flecs-TRY2/types"
)

// Loggable is anything that can report the component names attached to an
// entity.
type Loggable interface {
	ComponentNames(id types.EntityID) []string
}

type Logger struct {
	*zerolog.Logger
}

// New builds a Logger writing structured events to w at the given level.
func New(w io.Writer, level zerolog.Level) Logger {
	zeroLogger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return Logger{&zeroLogger}
}

// NewNop returns a Logger that discards everything.
func NewNop() Logger {
	zeroLogger := zerolog.Nop()
	return Logger{&zeroLogger}
}

func (l *Logger) loadComponentsToEvent(zeroLoggerEvent *zerolog.Event, names []string) *zerolog.Event {
	zeroLoggerEvent.Int("total_components", len(names))
	arrayLogger := zerolog.Arr()
	for _, name := range names {
		arrayLogger = arrayLogger.Str(name)
	}
	return zeroLoggerEvent.Array("components", arrayLogger)
}

// LogEntity logs an entity id along with every component currently attached to
// it.
func (l *Logger) LogEntity(level zerolog.Level, target Loggable, id types.EntityID) {
	zeroLoggerEvent := l.WithLevel(level)
	zeroLoggerEvent = l.loadComponentsToEvent(zeroLoggerEvent, target.ComponentNames(id))
	zeroLoggerEvent.Uint64("entity_id", uint64(id)).Send()
}

// CreateScriptLogger creates a sub logger with the entry {"script": scriptName}
func (l *Logger) CreateScriptLogger(scriptName string) Logger {
	zeroLogger := l.Logger.With().
		Str("script", scriptName).Logger()
	return Logger{
		&zeroLogger,
	}
}
