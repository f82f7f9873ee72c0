package session

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iwtcode/tcubeAdapter/kinesis"
	"github.com/iwtcode/tcubeAdapter/models"
)

// Orchestrator выполняет одну линейную сессию с устройством:
// перечисление, открытие, хоминг, настройку скорости, перемещение и закрытие.
type Orchestrator struct {
	driver    kinesis.Driver
	opts      Options
	out       io.Writer
	logger    logrus.FieldLogger
	sleep     Sleeper
	observer  Observer
	sessionID string
}

// New создает оркестратор для драйвера. Нулевые поля opts заменяются значениями по умолчанию;
// отрицательный SettleDelay (NoSettleDelay) отключает паузу.
func New(driver kinesis.Driver, opts Options, options ...Option) *Orchestrator {
	if opts.TypeCode == 0 {
		opts.TypeCode = kinesis.TypeTBD001
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	switch {
	case opts.SettleDelay == 0:
		opts.SettleDelay = DefaultSettleDelay
	case opts.SettleDelay < 0:
		opts.SettleDelay = 0
	}

	o := &Orchestrator{
		driver: driver,
		opts:   opts,
		out:    os.Stdout,
		sleep:  sleepContext,
	}
	for _, opt := range options {
		opt(o)
	}
	if o.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.logger = l
	}
	if o.sessionID == "" {
		o.sessionID = uuid.NewString()
	}
	return o
}

// SessionID возвращает идентификатор сессии, используемый в логах и отчете.
func (o *Orchestrator) SessionID() string {
	return o.sessionID
}

// run хранит состояние одного запуска.
type run struct {
	*Orchestrator
	serial string
	report *models.SessionReport
	log    logrus.FieldLogger
}

// Run выполняет сессию. Неудача построения списка устройств или открытия устройства
// не считается ошибкой: сессия завершается, Completed остается false.
// Ошибка возвращается при истечении ожидания, отмене ctx или, в режиме StopOnError,
// при ошибке драйвера; открытое устройство в этом случае все равно закрывается.
func (o *Orchestrator) Run(ctx context.Context, p models.MotionParams) (*models.SessionReport, error) {
	if p.SerialNo == "" {
		p.SerialNo = models.DefaultSerialNo
	}

	r := &run{
		Orchestrator: o,
		serial:       p.SerialNo,
		report: &models.SessionReport{
			SessionID: o.sessionID,
			SerialNo:  p.SerialNo,
			Velocity:  p.Velocity,
			StartedAt: time.Now(),
		},
		log: o.logger.WithFields(logrus.Fields{"session": o.sessionID, "serial": p.SerialNo}),
	}
	defer func() {
		r.report.Duration = time.Since(r.report.StartedAt)
	}()

	r.enter(StateInit)
	if err := p.Validate(); err != nil {
		if o.opts.StopOnError {
			r.enter(StateDone)
			return r.report, fmt.Errorf("invalid motion parameters: %w", err)
		}
		r.log.WithError(err).Warn("motion parameters out of range, passing to device unchanged")
	}

	// 1. Перечисление устройств
	r.enter(StateEnumerating)
	if err := o.driver.BuildDeviceList(); err != nil {
		r.log.WithError(err).Debug("device list not built, skipping session")
		r.enter(StateDone)
		return r.report, nil
	}
	if err := r.enumerate(); err != nil {
		r.enter(StateDone)
		return r.report, err
	}

	// 2. Открытие устройства по серийному номеру из аргументов, даже если его нет в списке
	r.enter(StateOpening)
	if err := o.driver.Open(r.serial); err != nil {
		r.log.WithError(err).Debug("device not opened, skipping session")
		r.enter(StateDone)
		return r.report, nil
	}
	r.report.Opened = true

	err := r.drive(ctx, p)

	// 3. Закрытие выполняется и после прерванной последовательности
	r.enter(StateTeardown)
	if stopErr := r.check("StopPolling", o.driver.StopPolling(r.serial)); err == nil {
		err = stopErr
	}
	if closeErr := r.check("Close", o.driver.Close(r.serial)); err == nil {
		err = closeErr
	}
	r.enter(StateDone)

	if err == nil {
		r.report.Completed = true
	}
	return r.report, err
}

func (r *run) enumerate() error {
	n, err := r.driver.DeviceListSize()
	if err := r.check("DeviceListSize", err); err != nil {
		return err
	}
	r.log.WithField("devices", n).Debug("device list built")

	serials, err := r.driver.DeviceListByType(r.opts.TypeCode)
	if err := r.check("DeviceListByType", err); err != nil {
		return err
	}

	for _, sn := range serials {
		r.enter(StateDisplayInfo)
		info, err := r.driver.DeviceInfo(sn)
		if err := r.check("DeviceInfo", err); err != nil {
			return err
		}
		info.SerialNo = kinesis.SerialNo(info.SerialNo)
		info.Description = kinesis.Description(info.Description)
		fmt.Fprintf(r.out, "Found Device %s=%s : %s\n", sn, info.SerialNo, info.Description)
		r.report.Devices = append(r.report.Devices, info)
	}
	return nil
}

// drive выполняет шаги от запуска опроса до чтения итоговой позиции.
func (r *run) drive(ctx context.Context, p models.MotionParams) error {
	d := r.driver

	r.enter(StatePollingStarted)
	if err := r.check("StartPolling", d.StartPolling(r.serial, r.opts.PollInterval)); err != nil {
		return err
	}

	r.enter(StateEnabled)
	if err := r.check("EnableChannel", d.EnableChannel(r.serial)); err != nil {
		return err
	}

	r.enter(StateSettling)
	if err := r.sleep(ctx, r.opts.SettleDelay); err != nil {
		return err
	}

	// Хоминг
	r.enter(StateHoming)
	if err := r.check("ClearMessageQueue", d.ClearMessageQueue(r.serial)); err != nil {
		return err
	}
	if err := r.check("Home", d.Home(r.serial)); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Device %s homing\n", r.serial)

	r.enter(StateAwaitHomeComplete)
	if _, err := kinesis.WaitFor(ctx, d, r.serial, kinesis.HomedMessage, r.opts.HomeTimeout); err != nil {
		return err
	}

	// Скорость меняется только по явному запросу, ускорение сохраняется
	if p.Velocity > 0 {
		r.enter(StateVelocityConfig)
		vp, err := d.VelocityParams(r.serial)
		if err := r.check("VelocityParams", err); err != nil {
			return err
		}
		vp.MaxVelocity = p.Velocity
		if err := r.check("SetVelocityParams", d.SetVelocityParams(r.serial, vp)); err != nil {
			return err
		}
	}

	// Перемещение
	r.enter(StateMoving)
	if err := r.check("ClearMessageQueue", d.ClearMessageQueue(r.serial)); err != nil {
		return err
	}
	if err := r.check("MoveToPosition", d.MoveToPosition(r.serial, p.Position)); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Device %s moving\n", r.serial)

	r.enter(StateAwaitMoveComplete)
	if _, err := kinesis.WaitFor(ctx, d, r.serial, kinesis.MovedMessage, r.opts.MoveTimeout); err != nil {
		return err
	}

	r.enter(StateReportPosition)
	pos, err := d.Position(r.serial)
	if err := r.check("Position", err); err != nil {
		return err
	}
	r.report.FinalPosition = pos
	fmt.Fprintf(r.out, "Device %s moved to %d\n", r.serial, pos)
	return nil
}

// check фиксирует ошибку драйвера. Без StopOnError ошибка только логируется,
// и последовательность продолжается.
func (r *run) check(op string, err error) error {
	if err == nil {
		return nil
	}
	r.report.DriverErrors = append(r.report.DriverErrors, err.Error())
	if r.opts.StopOnError {
		return fmt.Errorf("%s failed: %w", op, err)
	}
	r.log.WithError(err).WithField("op", op).Warn("driver call failed, continuing")
	return nil
}

func (r *run) enter(s State) {
	r.log.WithField("state", s.String()).Debug("session state")
	if r.observer != nil {
		r.observer(s)
	}
}
