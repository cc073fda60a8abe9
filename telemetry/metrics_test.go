package telemetry

import "testing"

func TestHelpersBeforeAndAfterInit(t *testing.T) {
	// Before Init the helpers must be safe no-ops.
	CountSessionStart()
	CountSessionStop()
	CountReportCycle()
	CountChatMessage()
	CountRaid()
	CountSendFailure()
	CountBotlistReload(5)
	SetActiveSessions(1)

	Init()
	Init() // idempotent

	if SessionsStarted == nil || ActiveSessionsGauge == nil {
		t.Fatal("metrics not registered after Init")
	}
	CountSessionStart()
	SetActiveSessions(2)
	CountBotlistReload(7)
}
