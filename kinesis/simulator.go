package kinesis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/iwtcode/tcubeAdapter/models"
)

const simQueueSize = 32

// ErrChannelDisabled возвращается симулятором при попытке движения без EnableChannel.
var ErrChannelDisabled = errors.New("channel is not enabled")

// Simulator - программная модель TCube для запуска без оборудования.
// Движение рассчитывается собственным тикером устройства, а Position
// возвращает значение, обновленное последним опросом, как и библиотека Kinesis.
type Simulator struct {
	scenario *Scenario

	mu      sync.Mutex
	listed  bool
	devices map[string]*simDevice
	order   []string
}

var _ Driver = (*Simulator)(nil)

type simDevice struct {
	cfg SimDevice

	mu       sync.Mutex
	open     bool
	enabled  bool
	position int
	reported int
	velocity models.VelocityParams
	target   int
	moving   bool
	homing   bool

	queue       chan models.Message
	closed      chan struct{}
	stopMotion  context.CancelFunc
	stopPolling context.CancelFunc
}

// NewSimulator создает симулятор по сценарию; nil означает DefaultScenario.
func NewSimulator(s *Scenario) *Simulator {
	if s == nil {
		s = DefaultScenario()
	}
	sim := &Simulator{
		scenario: s,
		devices:  make(map[string]*simDevice, len(s.Devices)),
	}
	for _, d := range s.Devices {
		sim.devices[d.SerialNo] = &simDevice{
			cfg:      d,
			position: d.Position,
			reported: d.Position,
			velocity: d.Velocity,
		}
		sim.order = append(sim.order, d.SerialNo)
	}
	return sim
}

func (s *Simulator) BuildDeviceList() error {
	if s.scenario.FailDeviceList {
		return newDriverError("BuildDeviceList", "", 1, ErrDeviceListFailed)
	}
	s.mu.Lock()
	s.listed = true
	s.mu.Unlock()
	return nil
}

func (s *Simulator) DeviceListSize() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.listed {
		return 0, nil
	}
	return len(s.order), nil
}

func (s *Simulator) DeviceListByType(typeCode int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.listed {
		return nil, nil
	}
	var serials []string
	for _, sn := range s.order {
		if s.devices[sn].cfg.TypeID == typeCode {
			serials = append(serials, sn)
		}
	}
	return ParseSerialList(FormatSerialList(serials, DeviceListCapacity)), nil
}

func (s *Simulator) DeviceInfo(serial string) (models.DeviceInfo, error) {
	d, ok := s.device(serial)
	if !ok {
		return models.DeviceInfo{}, newDriverError("GetDeviceInfo", serial, 0, ErrUnknownDevice)
	}
	return models.DeviceInfo{
		SerialNo:    SerialNo(d.cfg.SerialNo),
		Description: Description(d.cfg.Description),
		TypeID:      d.cfg.TypeID,
	}, nil
}

func (s *Simulator) device(serial string) (*simDevice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.devices[serial]
	return d, ok
}

// opened возвращает открытое устройство или ошибку операции op.
func (s *Simulator) opened(op, serial string) (*simDevice, error) {
	d, ok := s.device(serial)
	if !ok {
		return nil, newDriverError(op, serial, 0, ErrUnknownDevice)
	}
	d.mu.Lock()
	open := d.open
	d.mu.Unlock()
	if !open {
		return nil, newDriverError(op, serial, 0, ErrNotOpen)
	}
	return d, nil
}

func (s *Simulator) Open(serial string) error {
	d, ok := s.device(serial)
	if !ok {
		return newDriverError("Open", serial, 0, fmt.Errorf("%w: %w", ErrOpenFailed, ErrUnknownDevice))
	}
	if d.cfg.FailOpen {
		return newDriverError("Open", serial, 0, ErrOpenFailed)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.open {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	d.open = true
	d.queue = make(chan models.Message, simQueueSize)
	d.closed = make(chan struct{})
	d.stopMotion = cancel
	go d.runMotion(ctx, s.scenario.TickInterval, s.scenario.CountsPerSecond)
	return nil
}

func (s *Simulator) Close(serial string) error {
	d, err := s.opened("Close", serial)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopPolling != nil {
		d.stopPolling()
		d.stopPolling = nil
	}
	d.stopMotion()
	d.open = false
	d.enabled = false
	d.moving = false
	close(d.closed)
	return nil
}

func (s *Simulator) StartPolling(serial string, interval time.Duration) error {
	d, err := s.opened("StartPolling", serial)
	if err != nil {
		return err
	}
	if interval <= 0 {
		return newDriverError("StartPolling", serial, 0, fmt.Errorf("invalid polling interval %s", interval))
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopPolling != nil {
		d.stopPolling()
	}
	ctx, cancel := context.WithCancel(context.Background())
	d.stopPolling = cancel
	go d.runPolling(ctx, interval)
	return nil
}

func (s *Simulator) StopPolling(serial string) error {
	d, err := s.opened("StopPolling", serial)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopPolling != nil {
		d.stopPolling()
		d.stopPolling = nil
	}
	return nil
}

func (s *Simulator) EnableChannel(serial string) error {
	d, err := s.opened("EnableChannel", serial)
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.enabled = true
	d.mu.Unlock()
	d.push(models.Message{Type: MessageTypeGenericDevice, ID: 0})
	return nil
}

func (s *Simulator) ClearMessageQueue(serial string) error {
	d, err := s.opened("ClearMessageQueue", serial)
	if err != nil {
		return err
	}
	d.mu.Lock()
	queue := d.queue
	d.mu.Unlock()
	for {
		select {
		case <-queue:
		default:
			return nil
		}
	}
}

func (s *Simulator) Home(serial string) error {
	return s.startMove("Home", serial, 0, true)
}

func (s *Simulator) MoveToPosition(serial string, position int) error {
	return s.startMove("MoveToPosition", serial, position, false)
}

func (s *Simulator) startMove(op, serial string, target int, homing bool) error {
	d, err := s.opened(op, serial)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.enabled {
		return newDriverError(op, serial, 0, ErrChannelDisabled)
	}
	d.target = target
	d.homing = homing
	d.moving = true
	return nil
}

func (s *Simulator) WaitForMessage(ctx context.Context, serial string) (models.Message, error) {
	d, err := s.opened("WaitForMessage", serial)
	if err != nil {
		return models.Message{}, err
	}
	d.mu.Lock()
	queue, closed := d.queue, d.closed
	d.mu.Unlock()

	select {
	case msg := <-queue:
		return msg, nil
	case <-closed:
		return models.Message{}, newDriverError("WaitForMessage", serial, 0, ErrNotOpen)
	case <-ctx.Done():
		return models.Message{}, ctx.Err()
	}
}

func (s *Simulator) VelocityParams(serial string) (models.VelocityParams, error) {
	d, err := s.opened("GetVelParams", serial)
	if err != nil {
		return models.VelocityParams{}, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.velocity, nil
}

func (s *Simulator) SetVelocityParams(serial string, params models.VelocityParams) error {
	d, err := s.opened("SetVelParams", serial)
	if err != nil {
		return err
	}
	if params.MaxVelocity <= 0 || params.MaxVelocity > models.MaxVelocity {
		return newDriverError("SetVelParams", serial, 0, fmt.Errorf("velocity %d out of range", params.MaxVelocity))
	}
	d.mu.Lock()
	d.velocity = params
	d.mu.Unlock()
	return nil
}

func (s *Simulator) Position(serial string) (int, error) {
	d, err := s.opened("GetPosition", serial)
	if err != nil {
		return 0, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reported, nil
}

func (d *simDevice) push(msg models.Message) {
	d.mu.Lock()
	queue := d.queue
	d.mu.Unlock()
	select {
	case queue <- msg:
	default:
	}
}

// runMotion продвигает ось к цели на каждом тике и публикует сообщение о завершении.
func (d *simDevice) runMotion(ctx context.Context, tick time.Duration, countsPerSecond int) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if msg, done := d.step(tick, countsPerSecond); done && !d.cfg.Stuck {
				d.push(msg)
			}
		}
	}
}

func (d *simDevice) step(tick time.Duration, countsPerSecond int) (models.Message, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.moving {
		return models.Message{}, false
	}

	delta := int(float64(countsPerSecond) * tick.Seconds() * float64(d.velocity.MaxVelocity) / float64(models.MaxVelocity))
	if delta < 1 {
		delta = 1
	}
	switch {
	case d.target > d.position:
		d.position = min(d.position+delta, d.target)
	case d.target < d.position:
		d.position = max(d.position-delta, d.target)
	}
	if d.position != d.target {
		return models.Message{}, false
	}

	d.moving = false
	if d.stopPolling != nil {
		d.reported = d.position
	}
	id := MessageIDMoved
	if d.homing {
		id = MessageIDHomed
		d.homing = false
	}
	return models.Message{Type: MessageTypeGenericMotor, ID: id}, true
}
