package kinesis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iwtcode/tcubeAdapter/models"
)

func fastScenario() *Scenario {
	return &Scenario{
		TickInterval:    time.Millisecond,
		CountsPerSecond: 10000000,
		Devices: []SimDevice{
			{SerialNo: "67000001", TypeID: TypeTBD001, Description: "TBD001 A", Position: 5000,
				Velocity: models.VelocityParams{Acceleration: 4506, MaxVelocity: models.MaxVelocity}},
			{SerialNo: "83000001", TypeID: 83, Description: "Other cube"},
			{SerialNo: "67000002", TypeID: TypeTBD001, Description: "TBD001 B", FailOpen: true},
		},
	}
}

func TestSimulatorEnumeration(t *testing.T) {
	sim := NewSimulator(fastScenario())

	serials, err := sim.DeviceListByType(TypeTBD001)
	require.NoError(t, err)
	assert.Empty(t, serials, "list is empty before BuildDeviceList")

	require.NoError(t, sim.BuildDeviceList())
	n, err := sim.DeviceListSize()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	serials, err = sim.DeviceListByType(TypeTBD001)
	require.NoError(t, err)
	assert.Equal(t, []string{"67000001", "67000002"}, serials)

	info, err := sim.DeviceInfo("67000001")
	require.NoError(t, err)
	assert.Equal(t, "TBD001 A", info.Description)

	_, err = sim.DeviceInfo("1")
	assert.ErrorIs(t, err, ErrUnknownDevice)
}

func TestSimulatorBuildListFailure(t *testing.T) {
	s := fastScenario()
	s.FailDeviceList = true
	err := NewSimulator(s).BuildDeviceList()
	assert.ErrorIs(t, err, ErrDeviceListFailed)
}

func TestSimulatorOpenFailures(t *testing.T) {
	sim := NewSimulator(fastScenario())

	err := sim.Open("99999999")
	assert.ErrorIs(t, err, ErrOpenFailed)
	assert.ErrorIs(t, err, ErrUnknownDevice)

	assert.ErrorIs(t, sim.Open("67000002"), ErrOpenFailed)
	assert.ErrorIs(t, sim.Home("67000001"), ErrNotOpen)
}

func TestSimulatorRequiresEnabledChannel(t *testing.T) {
	sim := NewSimulator(fastScenario())
	require.NoError(t, sim.Open("67000001"))
	defer sim.Close("67000001")

	var derr *DriverError
	err := sim.MoveToPosition("67000001", 10)
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "MoveToPosition", derr.Op)
	assert.ErrorIs(t, err, ErrChannelDisabled)
}

func TestSimulatorHomeAndMove(t *testing.T) {
	const sn = "67000001"
	sim := NewSimulator(fastScenario())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, sim.Open(sn))
	require.NoError(t, sim.StartPolling(sn, time.Millisecond))
	require.NoError(t, sim.EnableChannel(sn))

	require.NoError(t, sim.ClearMessageQueue(sn))
	require.NoError(t, sim.Home(sn))
	_, err := WaitFor(ctx, sim, sn, HomedMessage, 0)
	require.NoError(t, err)

	vp, err := sim.VelocityParams(sn)
	require.NoError(t, err)
	vp.MaxVelocity = models.MaxVelocity / 2
	require.NoError(t, sim.SetVelocityParams(sn, vp))

	require.NoError(t, sim.ClearMessageQueue(sn))
	require.NoError(t, sim.MoveToPosition(sn, 20000))
	_, err = WaitFor(ctx, sim, sn, MovedMessage, 0)
	require.NoError(t, err)

	pos, err := sim.Position(sn)
	require.NoError(t, err)
	assert.Equal(t, 20000, pos)

	got, err := sim.VelocityParams(sn)
	require.NoError(t, err)
	assert.Equal(t, 4506, got.Acceleration)

	require.NoError(t, sim.StopPolling(sn))
	require.NoError(t, sim.Close(sn))
	assert.ErrorIs(t, sim.Close(sn), ErrNotOpen)
}

func TestSimulatorClearMessageQueue(t *testing.T) {
	const sn = "67000001"
	sim := NewSimulator(fastScenario())
	require.NoError(t, sim.Open(sn))
	defer sim.Close(sn)

	require.NoError(t, sim.EnableChannel(sn))
	require.NoError(t, sim.ClearMessageQueue(sn))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := sim.WaitForMessage(ctx, sn)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSimulatorStuckDeviceTimesOut(t *testing.T) {
	const sn = "67000001"
	s := fastScenario()
	s.Devices[0].Stuck = true
	sim := NewSimulator(s)

	require.NoError(t, sim.Open(sn))
	defer sim.Close(sn)
	require.NoError(t, sim.EnableChannel(sn))
	require.NoError(t, sim.ClearMessageQueue(sn))
	require.NoError(t, sim.Home(sn))

	_, err := WaitFor(context.Background(), sim, sn, HomedMessage, 30*time.Millisecond)
	assert.True(t, IsTimeout(err))
}

func TestSimulatorCloseReleasesWaiters(t *testing.T) {
	const sn = "67000001"
	sim := NewSimulator(fastScenario())
	require.NoError(t, sim.Open(sn))

	errCh := make(chan error, 1)
	go func() {
		_, err := sim.WaitForMessage(context.Background(), sn)
		errCh <- err
	}()

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, sim.Close(sn))

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrNotOpen)
	case <-time.After(time.Second):
		t.Fatal("waiter was not released by Close")
	}
}

func TestSimulatorRejectsBadVelocity(t *testing.T) {
	const sn = "67000001"
	sim := NewSimulator(fastScenario())
	require.NoError(t, sim.Open(sn))
	defer sim.Close(sn)

	err := sim.SetVelocityParams(sn, models.VelocityParams{Acceleration: 1, MaxVelocity: models.MaxVelocity + 1})
	assert.Error(t, err)
}
