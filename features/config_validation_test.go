package features

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cucumber/godog"

	"github.com/drew/empdash/internal/config"
)

type configValidationContext struct {
	*sharedContext
}

func (c *configValidationContext) aGeneratedConfigFile() error {
	if err := c.ensureTempDir(); err != nil {
		return err
	}
	c.configPath = filepath.Join(c.tempDir, config.DefaultPath)
	return config.GenerateDefaultConfig(c.configPath)
}

func (c *configValidationContext) aConfigFileContaining(doc *godog.DocString) error {
	if err := c.ensureTempDir(); err != nil {
		return err
	}
	c.configPath = filepath.Join(c.tempDir, config.DefaultPath)
	return os.WriteFile(c.configPath, []byte(doc.Content), 0644)
}

func (c *configValidationContext) iValidateIt() error {
	result, err := config.ValidateConfigFile(c.configPath)
	if err != nil {
		return err
	}
	c.validation = result
	return nil
}

func (c *configValidationContext) theValidationShouldSucceed() error {
	if !c.validation.Valid {
		return fmt.Errorf("expected validation to succeed, got errors: %v", c.validation.Errors)
	}
	return nil
}

func (c *configValidationContext) theValidationShouldFailWithAnErrorOn(field string) error {
	if c.validation.Valid {
		return fmt.Errorf("expected validation to fail")
	}
	for _, e := range c.validation.Errors {
		if e.Field == field {
			return nil
		}
	}
	return fmt.Errorf("expected an error on %s, got %v", field, c.validation.Errors)
}

func (c *configValidationContext) thereShouldBeAWarningOn(field string) error {
	for _, w := range c.validation.Warnings {
		if w.Field == field {
			return nil
		}
	}
	return fmt.Errorf("expected a warning on %s, got %v", field, c.validation.Warnings)
}

func InitializeConfigValidationScenario(sc *godog.ScenarioContext, shared *sharedContext) {
	c := &configValidationContext{sharedContext: shared}

	sc.Step(`^a generated config file$`, c.aGeneratedConfigFile)
	sc.Step(`^a config file containing:$`, c.aConfigFileContaining)
	sc.Step(`^I validate it$`, c.iValidateIt)
	sc.Step(`^the validation should succeed$`, c.theValidationShouldSucceed)
	sc.Step(`^the validation should fail with an error on "([^"]*)"$`, c.theValidationShouldFailWithAnErrorOn)
	sc.Step(`^there should be a warning on "([^"]*)"$`, c.thereShouldBeAWarningOn)
}
