package features

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"reflect"
	"strings"

	"github.com/cucumber/godog"
	"github.com/xuri/excelize/v2"

	"github.com/drew/empdash/internal/export"
)

type exportContext struct {
	*sharedContext
}

func (c *exportContext) iDownloadTheViewAs(format string) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := export.Write(&buf, f, c.result.Rows); err != nil {
		return err
	}
	c.format = f
	c.fileName = f.FileName(export.DefaultFileName)
	c.download = buf.Bytes()
	return nil
}

func (c *exportContext) theDownloadShouldBeNamed(name, contentType string) error {
	if c.fileName != name {
		return fmt.Errorf("expected file name %q, got %q", name, c.fileName)
	}
	if got := c.format.ContentType(); got != contentType {
		return fmt.Errorf("expected content type %q, got %q", contentType, got)
	}
	return nil
}

func (c *exportContext) records() ([][]string, error) {
	return csv.NewReader(bytes.NewReader(c.download)).ReadAll()
}

func (c *exportContext) theCSVShouldHaveHeader(header string) error {
	recs, err := c.records()
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return fmt.Errorf("CSV is empty")
	}
	if got := strings.Join(recs[0], ","); got != header {
		return fmt.Errorf("expected header %q, got %q", header, got)
	}
	return nil
}

func (c *exportContext) theCSVShouldHaveDataRows(n int) error {
	recs, err := c.records()
	if err != nil {
		return err
	}
	if len(recs)-1 != n {
		return fmt.Errorf("expected %d data rows, got %d", n, len(recs)-1)
	}
	return nil
}

func (c *exportContext) readingTheCSVBackShouldReproduceTheView() error {
	rows, err := export.ReadCSV(bytes.NewReader(c.download))
	if err != nil {
		return err
	}
	if !reflect.DeepEqual(rows, c.result.Rows) {
		return fmt.Errorf("round trip mismatch:\n got %+v\nwant %+v", rows, c.result.Rows)
	}
	return nil
}

func (c *exportContext) theSpreadsheetShouldHaveDataRows(n int) error {
	f, err := excelize.OpenReader(bytes.NewReader(c.download))
	if err != nil {
		return err
	}
	defer f.Close()
	rows, err := f.GetRows(export.SheetName)
	if err != nil {
		return err
	}
	if len(rows)-1 != n {
		return fmt.Errorf("expected %d data rows, got %d", n, len(rows)-1)
	}
	return nil
}

func InitializeExportScenario(sc *godog.ScenarioContext, shared *sharedContext) {
	c := &exportContext{sharedContext: shared}

	sc.Step(`^I download the view as "([^"]*)"$`, c.iDownloadTheViewAs)
	sc.Step(`^the download should be named "([^"]*)" with type "([^"]*)"$`, c.theDownloadShouldBeNamed)
	sc.Step(`^the CSV should have header "([^"]*)"$`, c.theCSVShouldHaveHeader)
	sc.Step(`^the CSV should have (\d+) data rows$`, c.theCSVShouldHaveDataRows)
	sc.Step(`^reading the CSV back should reproduce the view$`, c.readingTheCSVBackShouldReproduceTheView)
	sc.Step(`^the spreadsheet should have (\d+) data rows$`, c.theSpreadsheetShouldHaveDataRows)
}
