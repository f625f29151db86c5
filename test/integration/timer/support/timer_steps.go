package support

import (
	"errors"
	"fmt"
	"time"

	"github.com/MeKo-Tech/tally/internal/template"
	"github.com/MeKo-Tech/tally/internal/timer"
	"github.com/cucumber/godog"
)

var errorKinds = map[string]error{
	"already running":  timer.ErrAlreadyRunning,
	"not running":      timer.ErrNotRunning,
	"unknown timer":    timer.ErrUnknownTimer,
	"invalid template": template.ErrInvalidTemplate,
}

// RegisterTimerSteps registers lifecycle step definitions.
func (testCtx *TestContext) RegisterTimerSteps(sc *godog.ScenarioContext) {
	sc.Step(`^a timer "([^"]*)" named "([^"]*)"$`, testCtx.aTimerNamed)
	sc.Step(`^a timer "([^"]*)" named "([^"]*)" with template "([^"]*)"$`, testCtx.aTimerNamedWithTemplate)
	sc.Step(`^an unnamed timer "([^"]*)"$`, testCtx.anUnnamedTimer)
	sc.Step(`^an unnamed timer "([^"]*)" with template "([^"]*)"$`, testCtx.anUnnamedTimerWithTemplate)
	sc.Step(`^I start "([^"]*)"$`, testCtx.iStart)
	sc.Step(`^I stop "([^"]*)"$`, testCtx.iStop)
	sc.Step(`^(\d+) ms pass$`, testCtx.msPass)
	sc.Step(`^"([^"]*)" runs for (\d+) ms$`, testCtx.runsFor)
	sc.Step(`^"([^"]*)" times a block that fails after (\d+) ms$`, testCtx.timesFailingBlock)
	sc.Step(`^"([^"]*)" should be idle$`, testCtx.shouldBeIdle)
	sc.Step(`^"([^"]*)" should be running$`, testCtx.shouldBeRunning)
	sc.Step(`^the elapsed time should be (\d+) ms$`, testCtx.theElapsedTimeShouldBe)
	sc.Step(`^the last error should be "([^"]*)"$`, testCtx.theLastErrorShouldBe)
	sc.Step(`^there should be no error$`, testCtx.thereShouldBeNoError)
	sc.Step(`^the logger should have received "([^"]*)"$`, testCtx.theLoggerShouldHaveReceived)
}

func (testCtx *TestContext) aTimerNamed(label, name string) error {
	return testCtx.newTimer(label, name)
}

func (testCtx *TestContext) aTimerNamedWithTemplate(label, name, text string) error {
	return testCtx.newTimer(label, name, timer.WithTemplate(text))
}

func (testCtx *TestContext) anUnnamedTimer(label string) error {
	return testCtx.newTimer(label, "")
}

func (testCtx *TestContext) anUnnamedTimerWithTemplate(label, text string) error {
	return testCtx.newTimer(label, "", timer.WithTemplate(text))
}

func (testCtx *TestContext) iStart(label string) error {
	tm, err := testCtx.timer(label)
	if err != nil {
		return err
	}
	testCtx.LastError = tm.Start()
	return nil
}

func (testCtx *TestContext) iStop(label string) error {
	tm, err := testCtx.timer(label)
	if err != nil {
		return err
	}
	testCtx.LastElapsed, testCtx.LastError = tm.Stop()
	return nil
}

func (testCtx *TestContext) msPass(ms int) error {
	testCtx.Clock.Advance(time.Duration(ms) * time.Millisecond)
	return nil
}

func (testCtx *TestContext) runsFor(label string, ms int) error {
	if err := testCtx.iStart(label); err != nil {
		return err
	}
	if testCtx.LastError != nil {
		return testCtx.LastError
	}
	_ = testCtx.msPass(ms)
	return testCtx.iStop(label)
}

func (testCtx *TestContext) timesFailingBlock(label string, ms int) error {
	tm, err := testCtx.timer(label)
	if err != nil {
		return err
	}
	testCtx.LastError = tm.Time(func() error {
		testCtx.Clock.Advance(time.Duration(ms) * time.Millisecond)
		return errors.New("block failed")
	})
	return nil
}

func (testCtx *TestContext) shouldBeIdle(label string) error {
	tm, err := testCtx.timer(label)
	if err != nil {
		return err
	}
	if tm.Running() {
		return fmt.Errorf("expected %q to be idle", label)
	}
	return nil
}

func (testCtx *TestContext) shouldBeRunning(label string) error {
	tm, err := testCtx.timer(label)
	if err != nil {
		return err
	}
	if !tm.Running() {
		return fmt.Errorf("expected %q to be running", label)
	}
	return nil
}

func (testCtx *TestContext) theElapsedTimeShouldBe(ms int) error {
	want := time.Duration(ms) * time.Millisecond
	if testCtx.LastElapsed != want {
		return fmt.Errorf("expected elapsed %v, got %v", want, testCtx.LastElapsed)
	}
	return nil
}

func (testCtx *TestContext) theLastErrorShouldBe(kind string) error {
	if kind == "block failed" {
		if testCtx.LastError == nil || testCtx.LastError.Error() != kind {
			return fmt.Errorf("expected error %q, got %v", kind, testCtx.LastError)
		}
		return nil
	}

	want, ok := errorKinds[kind]
	if !ok {
		return fmt.Errorf("unknown error kind %q", kind)
	}
	if !errors.Is(testCtx.LastError, want) {
		return fmt.Errorf("expected %q error, got %v", kind, testCtx.LastError)
	}
	return nil
}

func (testCtx *TestContext) thereShouldBeNoError() error {
	if testCtx.LastError != nil {
		return fmt.Errorf("unexpected error: %w", testCtx.LastError)
	}
	return nil
}

func (testCtx *TestContext) theLoggerShouldHaveReceived(msg string) error {
	for _, got := range testCtx.Logged {
		if got == msg {
			return nil
		}
	}
	return fmt.Errorf("logger never received %q, got %q", msg, testCtx.Logged)
}
