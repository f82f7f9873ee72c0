package session

// State - этап сессии работы с устройством.
type State int

const (
	StateInit State = iota
	StateEnumerating
	StateDisplayInfo
	StateOpening
	StatePollingStarted
	StateEnabled
	StateSettling
	StateHoming
	StateAwaitHomeComplete
	StateVelocityConfig
	StateMoving
	StateAwaitMoveComplete
	StateReportPosition
	StateTeardown
	StateDone
)

var stateNames = [...]string{
	StateInit:              "INIT",
	StateEnumerating:       "ENUMERATING",
	StateDisplayInfo:       "DISPLAY_INFO",
	StateOpening:           "OPENING",
	StatePollingStarted:    "POLLING_STARTED",
	StateEnabled:           "ENABLED",
	StateSettling:          "SETTLING",
	StateHoming:            "HOMING",
	StateAwaitHomeComplete: "AWAIT_HOME_COMPLETE",
	StateVelocityConfig:    "VELOCITY_CONFIG",
	StateMoving:            "MOVING",
	StateAwaitMoveComplete: "AWAIT_MOVE_COMPLETE",
	StateReportPosition:    "REPORT_POSITION",
	StateTeardown:          "TEARDOWN",
	StateDone:              "DONE",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "UNKNOWN"
	}
	return stateNames[s]
}
