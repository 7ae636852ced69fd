package log

type Logger interface {
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
	Fatal(args ...any)
}

func init() {
	SetLogger(NewConsoleLogger())
}

var (
	Info  func(args ...any)
	Warn  func(args ...any)
	Error func(args ...any)
	Fatal func(args ...any)
)

// SetLogger rewrites the default logger
func SetLogger(logger Logger) {
	if logger == nil {
		return
	}
	Info = logger.Info
	Warn = logger.Warn
	Error = logger.Error
	Fatal = logger.Fatal
}
