package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
var Log *logrus.Logger

// Init инициализирует глобальный логгер.
// Вызывается один раз при старте (main.go) и в TestMain каждого пакета.
func Init() {
	Log = logrus.New()

	// 1. Уровень из LOG_LEVEL. По умолчанию "info".
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// 2. Форматтер: "json" для продакшена, текст для разработки.
	logFormat := strings.ToLower(os.Getenv("LOG_FORMAT"))
	if logFormat == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(os.Stdout)
}

// Component возвращает запись с заполненным полем "component".
// Если логгер еще не инициализирован (например, в бенчмарке), пишет в никуда.
func Component(name string) *logrus.Entry {
	if Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l.WithField("component", name)
	}
	return Log.WithField("component", name)
}
