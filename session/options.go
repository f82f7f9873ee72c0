package session

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// Значения по умолчанию соответствуют примеру Thorlabs для TBD001.
const (
	DefaultPollInterval = 200 * time.Millisecond
	DefaultSettleDelay  = 3000 * time.Millisecond

	// NoSettleDelay отключает паузу после включения канала.
	NoSettleDelay time.Duration = -1
)

// Options задает параметры последовательности.
type Options struct {
	TypeCode     int
	PollInterval time.Duration
	SettleDelay  time.Duration
	// HomeTimeout и MoveTimeout ограничивают ожидание сообщений; 0 - без ограничения.
	HomeTimeout time.Duration
	MoveTimeout time.Duration
	// StopOnError прерывает сессию при первой ошибке драйвера после открытия.
	StopOnError bool
}

// Sleeper выполняет паузу SETTLING.
type Sleeper func(ctx context.Context, d time.Duration) error

// Observer получает каждый переход состояния.
type Observer func(State)

// Option - функциональная опция Orchestrator.
type Option func(*Orchestrator)

// WithOutput задает поток для сообщений о ходе работы.
func WithOutput(w io.Writer) Option {
	return func(o *Orchestrator) {
		o.out = w
	}
}

// WithLogger задает логгер.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithSleeper подменяет паузу, например в тестах.
func WithSleeper(s Sleeper) Option {
	return func(o *Orchestrator) {
		o.sleep = s
	}
}

// WithObserver подписывает наблюдателя на переходы состояний.
func WithObserver(obs Observer) Option {
	return func(o *Orchestrator) {
		o.observer = obs
	}
}

// WithSessionID задает идентификатор сессии вместо сгенерированного.
func WithSessionID(id string) Option {
	return func(o *Orchestrator) {
		o.sessionID = id
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
