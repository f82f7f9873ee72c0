package tcube

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/iwtcode/tcubeAdapter/internal/logging"
	"github.com/iwtcode/tcubeAdapter/kinesis"
	"github.com/iwtcode/tcubeAdapter/models"
	"github.com/iwtcode/tcubeAdapter/session"
)

// Client является основной точкой входа для работы с контроллером TCube.
type Client struct {
	driver kinesis.Driver
	config *Config
	logger *logging.Logger
}

// New создает клиент с драйвером, выбранным в конфигурации.
func New(cfg *Config) (*Client, error) {
	logger := logging.New(logging.Config{
		Level:      cfg.LogLevel,
		LogsDir:    cfg.LogsDir,
		SavingDays: cfg.LogSavingDays,
	})

	driver, err := newDriver(cfg)
	if err != nil {
		logger.Close()
		return nil, err
	}
	logger.WithField("driver", cfg.Driver).Debug("driver initialized")

	return &Client{
		driver: driver,
		config: cfg,
		logger: logger,
	}, nil
}

// NewWithDriver создает клиент поверх готового драйвера.
func NewWithDriver(cfg *Config, driver kinesis.Driver) *Client {
	return &Client{
		driver: driver,
		config: cfg,
		logger: logging.New(logging.Config{Level: cfg.LogLevel}),
	}
}

func newDriver(cfg *Config) (kinesis.Driver, error) {
	switch cfg.Driver {
	case DriverKinesis:
		bmc, err := kinesis.NewBMC()
		if err != nil {
			return nil, fmt.Errorf("failed to create kinesis driver: %w", err)
		}
		return bmc, nil
	case DriverSimulator:
		var scenario *kinesis.Scenario
		if cfg.SimScenario != "" {
			s, err := kinesis.LoadScenario(cfg.SimScenario)
			if err != nil {
				return nil, fmt.Errorf("failed to create simulator: %w", err)
			}
			scenario = s
		}
		return kinesis.NewSimulator(scenario), nil
	default:
		return nil, fmt.Errorf("unknown driver %q", cfg.Driver)
	}
}

// Close освобождает ресурсы клиента.
func (c *Client) Close() error {
	return c.logger.Close()
}

// GetLogger возвращает используемый логгер.
func (c *Client) GetLogger() *logrus.Logger {
	return c.logger.Logger
}

// Driver возвращает используемый драйвер.
func (c *Client) Driver() kinesis.Driver {
	return c.driver
}

// RunSession выполняет одну сессию с устройством, печатая ход работы в out.
func (c *Client) RunSession(ctx context.Context, params models.MotionParams, out io.Writer, options ...session.Option) (*models.SessionReport, error) {
	// TCUBE_SETTLE_MS=0 означает "без паузы", а не значение по умолчанию
	settle := c.config.SettleDelay
	if settle == 0 {
		settle = session.NoSettleDelay
	}
	opts := session.Options{
		TypeCode:     c.config.TypeCode,
		PollInterval: c.config.PollInterval,
		SettleDelay:  settle,
		HomeTimeout:  c.config.HomeTimeout,
		MoveTimeout:  c.config.MoveTimeout,
		StopOnError:  c.config.StopOnError,
	}
	base := []session.Option{
		session.WithOutput(out),
		session.WithLogger(c.logger.Logger),
	}
	o := session.New(c.driver, opts, append(base, options...)...)
	return o.Run(ctx, params)
}
