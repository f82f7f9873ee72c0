package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Config содержит настройки логгера.
type Config struct {
	Level      string // trace, debug, info, warn, error или off
	LogsDir    string // Директория для логов; пусто - только stdout
	SavingDays uint   // Сколько дней хранить логи
}

// Logger - logrus-логгер с необязательным файлом дневного журнала.
type Logger struct {
	*logrus.Logger
	file *os.File
}

// New создает логгер. Вывод идет в stdout и, если задан LogsDir, в файл за текущий день.
func New(cfg Config) *Logger {
	logger := logrus.New()
	l := &Logger{Logger: logger}

	if isOff(cfg.Level) {
		logger.SetOutput(io.Discard)
		return l
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	// Настраиваем форматтер с понятным форматом времени
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	var output io.Writer = os.Stdout
	if cfg.LogsDir != "" {
		if err := os.MkdirAll(cfg.LogsDir, 0o755); err == nil {
			logFile := filepath.Join(cfg.LogsDir, time.Now().Format("2006-01-02")+".log")
			if file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err == nil {
				l.file = file
				output = io.MultiWriter(os.Stdout, file)
			}
		}
	}
	logger.SetOutput(output)

	if cfg.LogsDir != "" && cfg.SavingDays > 0 {
		l.cleanOldLogs(cfg.LogsDir, cfg.SavingDays)
	}

	return l
}

func isOff(level string) bool {
	switch strings.ToLower(level) {
	case "off", "none":
		return true
	}
	return false
}

// cleanOldLogs удаляет файлы журналов старше savingDays.
func (l *Logger) cleanOldLogs(dir string, savingDays uint) {
	files, err := os.ReadDir(dir)
	if err != nil {
		l.WithError(err).Warn("failed to read logs directory")
		return
	}

	cutoff := time.Now().AddDate(0, 0, -int(savingDays))
	for _, file := range files {
		if file.IsDir() || !isDailyLog(file.Name()) {
			continue
		}
		if info, err := file.Info(); err == nil && info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(dir, file.Name())); err != nil {
				l.WithError(err).WithField("file", file.Name()).Warn("failed to delete old log file")
			}
		}
	}
}

// isDailyLog проверяет, что имя файла имеет вид 2006-01-02.log.
func isDailyLog(name string) bool {
	day, ok := strings.CutSuffix(name, ".log")
	if !ok {
		return false
	}
	_, err := time.Parse("2006-01-02", day)
	return err == nil
}

// Close закрывает файл журнала, если он был открыт.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
