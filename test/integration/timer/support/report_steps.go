package support

import (
	"errors"
	"fmt"
	"time"

	"github.com/cucumber/godog"
)

// RegisterReportSteps registers registry and report step definitions.
func (testCtx *TestContext) RegisterReportSteps(sc *godog.ScenarioContext) {
	sc.Step(`^the registry total for "([^"]*)" should be (\d+) ms$`, testCtx.theRegistryTotalShouldBe)
	sc.Step(`^the registry should not contain "([^"]*)"$`, testCtx.theRegistryShouldNotContain)
	sc.Step(`^"([^"]*)" reports "([^"]*)"$`, testCtx.reportsNamed)
	sc.Step(`^"([^"]*)" reports all timers$`, testCtx.reportsAll)
	sc.Step(`^the report should be "([^"]*)"$`, testCtx.theReportShouldBe)
	sc.Step(`^the report should be:$`, testCtx.theReportShouldBeDoc)
}

func (testCtx *TestContext) theRegistryTotalShouldBe(name string, ms int) error {
	total, ok := testCtx.Registry.Get(name)
	if !ok {
		return fmt.Errorf("registry has no entry %q", name)
	}
	if want := time.Duration(ms) * time.Millisecond; total != want {
		return fmt.Errorf("expected %q total %v, got %v", name, want, total)
	}
	return nil
}

func (testCtx *TestContext) theRegistryShouldNotContain(name string) error {
	if _, ok := testCtx.Registry.Get(name); ok {
		return fmt.Errorf("registry unexpectedly contains %q", name)
	}
	return nil
}

func (testCtx *TestContext) reportsNamed(label, name string) error {
	tm, err := testCtx.timer(label)
	if err != nil {
		return err
	}
	testCtx.LastReport, testCtx.LastError = tm.Report(name)
	return nil
}

func (testCtx *TestContext) reportsAll(label string) error {
	return testCtx.reportsNamed(label, "")
}

func (testCtx *TestContext) theReportShouldBe(want string) error {
	if testCtx.LastError != nil {
		return fmt.Errorf("report failed: %w", testCtx.LastError)
	}
	if testCtx.LastReport != want {
		return fmt.Errorf("expected report %q, got %q", want, testCtx.LastReport)
	}
	return nil
}

func (testCtx *TestContext) theReportShouldBeDoc(doc *godog.DocString) error {
	if doc == nil {
		return errors.New("missing doc string")
	}
	return testCtx.theReportShouldBe(doc.Content + "\n")
}
