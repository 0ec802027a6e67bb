package log

import (
	"bytes"
	"strings"
	"testing"
)

func capture(t *testing.T, name string) (*Logger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	SetOutput(buf)
	return ForService(name), buf
}

func TestLevelTagsAndPrefix(t *testing.T) {
	SetGlobalDebug(false)
	logger, buf := capture(t, "engine")

	logger.Infof("catalog ready: %d comms", 12)
	logger.Warnf("items document is stale")
	logger.Errorf("reload failed")

	out := buf.String()
	for _, want := range []string{
		LevelInfo + " [engine>] catalog ready: 12 comms",
		LevelWarn + " [engine>] items document is stale",
		LevelError + " [engine>] reload failed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestForServiceMemoizes(t *testing.T) {
	if ForService("source") != ForService("source") {
		t.Error("expected the same logger for the same service name")
	}
	if ForService("") != ForService("unknown") {
		t.Error("expected empty name to map to the unknown logger")
	}
}

func TestDebugPerService(t *testing.T) {
	SetGlobalDebug(false)
	DisableDebugFor("web")
	logger, buf := capture(t, "web")

	logger.Debugf("hidden detail")
	if strings.Contains(buf.String(), "hidden detail") {
		t.Fatal("debug line emitted while debug disabled")
	}
	if DebugEnabledFor("web") {
		t.Fatal("DebugEnabledFor(web) = true while disabled")
	}

	EnableDebugFor("web")
	defer DisableDebugFor("web")
	if !DebugEnabledFor("web") {
		t.Fatal("DebugEnabledFor(web) = false after enabling")
	}

	logger.Debugf("visible detail")
	if !strings.Contains(buf.String(), LevelDebug+" [web>] visible detail") {
		t.Errorf("debug line missing after per-service enable:\n%s", buf.String())
	}

	// Other services stay quiet.
	other, otherBuf := capture(t, "api")
	other.Debugf("still hidden")
	if strings.Contains(otherBuf.String(), "still hidden") {
		t.Error("per-service debug leaked to another service")
	}
}

func TestDebugGlobal(t *testing.T) {
	SetGlobalDebug(false)
	DisableDebugFor("cli")
	logger, buf := capture(t, "cli")

	logger.Debugf("off")
	if strings.Contains(buf.String(), "off") {
		t.Fatal("debug line emitted while global debug disabled")
	}

	SetGlobalDebug(true)
	defer SetGlobalDebug(false)

	logger.Debugf("on")
	if !strings.Contains(buf.String(), LevelDebug+" [cli>] on") {
		t.Errorf("debug line missing with global debug on:\n%s", buf.String())
	}
}

func TestSetOutputReachesExistingLoggers(t *testing.T) {
	SetGlobalDebug(false)
	logger, first := capture(t, "swap")

	logger.Infof("before swap")
	if !strings.Contains(first.String(), "before swap") {
		t.Fatalf("first buffer missing message: %q", first.String())
	}

	second := &bytes.Buffer{}
	SetOutput(second)
	logger.Infof("after swap")

	if strings.Contains(first.String(), "after swap") {
		t.Error("old writer still receiving output")
	}
	if !strings.Contains(second.String(), "after swap") {
		t.Errorf("new writer missing message: %q", second.String())
	}

	// A nil writer is ignored rather than breaking logging.
	SetOutput(nil)
	logger.Infof("still routed")
	if !strings.Contains(second.String(), "still routed") {
		t.Error("SetOutput(nil) broke the output routing")
	}
}
