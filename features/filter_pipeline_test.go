package features

import (
	"fmt"
	"math"
	"strings"

	"github.com/cucumber/godog"

	"github.com/drew/empdash/internal/dataset"
	"github.com/drew/empdash/internal/export"
	"github.com/drew/empdash/internal/model"
	"github.com/drew/empdash/internal/pipeline"
)

type filterPipelineContext struct {
	*sharedContext
}

func (c *filterPipelineContext) theBuiltInEmployeeTable() error {
	c.employees = dataset.Sample()
	return nil
}

func (c *filterPipelineContext) iFilterWith(minSalary float64, departments string) error {
	depts, err := pipeline.ResolveDepartments(splitList(departments), dataset.Departments(c.employees))
	if err != nil {
		return err
	}
	c.result = pipeline.Run(c.employees, model.Params{MinSalary: minSalary, Departments: depts}, pipeline.DefaultBonusRate)
	return nil
}

func (c *filterPipelineContext) iFilterWithNoDepartments(minSalary float64) error {
	c.result = pipeline.Run(c.employees, model.Params{MinSalary: minSalary, Departments: []string{}}, pipeline.DefaultBonusRate)
	return nil
}

func (c *filterPipelineContext) theViewShouldList(list string) error {
	return expectList("view", names(c.result.Rows), splitList(list))
}

func (c *filterPipelineContext) theViewShouldBeEmpty() error {
	if !c.result.Empty() {
		return fmt.Errorf("expected empty view, got %v", names(c.result.Rows))
	}
	return nil
}

func (c *filterPipelineContext) theBonusesShouldBe(list string) error {
	got := make([]string, len(c.result.Rows))
	for i, r := range c.result.Rows {
		got[i] = export.FormatNumber(r.Bonus)
	}
	return expectList("bonuses", got, splitList(list))
}

func (c *filterPipelineContext) everyBonusShouldBeTenPercent() error {
	for _, r := range c.result.Rows {
		if math.Abs(r.Bonus-r.Salary*0.10) > 1e-9 {
			return fmt.Errorf("%s: bonus %v is not 10%% of %v", r.Name, r.Bonus, r.Salary)
		}
	}
	return nil
}

func (c *filterPipelineContext) meanSalaryOf(dept string) (float64, error) {
	for _, m := range c.result.Departments {
		if m.Department == dept {
			return m.MeanSalary, nil
		}
	}
	return 0, fmt.Errorf("no mean salary for %q", dept)
}

func (c *filterPipelineContext) theMeanSalaryOfShouldBe(dept string, want float64) error {
	got, err := c.meanSalaryOf(dept)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("expected %s mean salary %v, got %v", dept, want, got)
	}
	return nil
}

func (c *filterPipelineContext) thereShouldBeNoDepartmentMeans() error {
	if len(c.result.Departments) != 0 {
		return fmt.Errorf("expected no department means, got %+v", c.result.Departments)
	}
	return nil
}

func (c *filterPipelineContext) theDepartmentMeansShouldBeFor(list string) error {
	got := make([]string, len(c.result.Departments))
	for i, m := range c.result.Departments {
		got[i] = m.Department
	}
	return expectList("departments", got, splitList(list))
}

func (c *filterPipelineContext) columnMean(column string) (float64, error) {
	for _, s := range c.result.Stats {
		if s.Column == column {
			return s.Mean, nil
		}
	}
	return 0, fmt.Errorf("no statistics for column %q", column)
}

func (c *filterPipelineContext) theColumnMeanShouldBe(column, want string) error {
	got, err := c.columnMean(column)
	if err != nil {
		return err
	}
	if strings.EqualFold(want, "NaN") {
		if !math.IsNaN(got) {
			return fmt.Errorf("expected %s mean NaN, got %v", column, got)
		}
		return nil
	}
	if export.FormatNumber(got) != want {
		return fmt.Errorf("expected %s mean %s, got %v", column, want, got)
	}
	return nil
}

func InitializeFilterPipelineScenario(sc *godog.ScenarioContext, shared *sharedContext) {
	c := &filterPipelineContext{sharedContext: shared}

	sc.Step(`^the built-in employee table$`, c.theBuiltInEmployeeTable)
	sc.Step(`^I filter with minimum salary (-?\d+(?:\.\d+)?) and departments "([^"]*)"$`, c.iFilterWith)
	sc.Step(`^I filter with minimum salary (-?\d+(?:\.\d+)?) and no departments$`, c.iFilterWithNoDepartments)
	sc.Step(`^the view should list "([^"]*)"$`, c.theViewShouldList)
	sc.Step(`^the view should be empty$`, c.theViewShouldBeEmpty)
	sc.Step(`^the bonuses should be "([^"]*)"$`, c.theBonusesShouldBe)
	sc.Step(`^every bonus should be 10% of salary$`, c.everyBonusShouldBeTenPercent)
	sc.Step(`^the mean salary of "([^"]*)" should be (\d+(?:\.\d+)?)$`, c.theMeanSalaryOfShouldBe)
	sc.Step(`^there should be no department means$`, c.thereShouldBeNoDepartmentMeans)
	sc.Step(`^the department means should be for "([^"]*)"$`, c.theDepartmentMeansShouldBeFor)
	sc.Step(`^the "([^"]*)" mean should be (NaN|\d+(?:\.\d+)?)$`, c.theColumnMeanShouldBe)
}
