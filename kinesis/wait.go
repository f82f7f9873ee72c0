package kinesis

import (
	"context"
	"errors"
	"time"

	"github.com/iwtcode/tcubeAdapter/models"
)

// WaitFor читает сообщения устройства, отбрасывая все, кроме want.
// timeout == 0 означает ожидание без ограничения по времени (только отмена ctx).
func WaitFor(ctx context.Context, drv Driver, serial string, want models.MessageKey, timeout time.Duration) (models.Message, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	for {
		msg, err := drv.WaitForMessage(ctx, serial)
		if err != nil {
			switch {
			case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
				err = ErrTimeout
			case ctx.Err() != nil:
				err = ctx.Err()
			}
			return models.Message{}, &WaitError{Serial: serial, Want: want, Err: err}
		}
		if msg.Key() == want {
			return msg, nil
		}
	}
}
