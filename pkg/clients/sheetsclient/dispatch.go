package sheetsclient

import (
	"fmt"
	"strings"
)

// PublishedArea is one row of a published dispatch
type PublishedArea struct {
	Name        string
	Supervisors []string
	Workers     []string // every worker in the area, in placement order
}

// PublishedDispatch is a dispatch as laid out in the publish spreadsheet
type PublishedDispatch struct {
	TabTitle string
	RunID    string
	Areas    []PublishedArea
}

// PublishDispatch writes a dispatch to its own tab, creating the tab if needed.
// An existing tab with the same title is cleared and overwritten.
func (c *Client) PublishDispatch(spreadsheetID string, dispatch *PublishedDispatch) error {
	existing, err := c.findSheet(spreadsheetID, dispatch.TabTitle)
	if err != nil {
		return err
	}

	if existing == nil {
		if _, err := c.CreateSheet(spreadsheetID, dispatch.TabTitle); err != nil {
			return fmt.Errorf("failed to create tab: %w", err)
		}
	} else if err := c.ClearSheet(spreadsheetID, dispatch.TabTitle); err != nil {
		return fmt.Errorf("failed to clear existing tab: %w", err)
	}

	if err := c.WriteValues(spreadsheetID, fmt.Sprintf("'%s'!A1", dispatch.TabTitle), DispatchRows(dispatch)); err != nil {
		return fmt.Errorf("failed to write dispatch: %w", err)
	}

	return nil
}

// DispatchRows lays a dispatch out as sheet rows: a run line, a blank row, then a header
// "Area | Headcount | Supervisor(s) | Worker 1..k" and one row per area
func DispatchRows(dispatch *PublishedDispatch) [][]interface{} {
	maxWorkers := 0
	for _, area := range dispatch.Areas {
		maxWorkers = max(maxWorkers, len(area.Workers))
	}

	header := []interface{}{"Area", "Headcount", "Supervisor(s)"}
	for i := 0; i < maxWorkers; i++ {
		header = append(header, fmt.Sprintf("Worker %d", i+1))
	}

	rows := [][]interface{}{
		{"Run", dispatch.RunID},
		{},
		header,
	}

	for _, area := range dispatch.Areas {
		row := []interface{}{area.Name, len(area.Workers), strings.Join(area.Supervisors, ", ")}
		for i := 0; i < maxWorkers; i++ {
			if i < len(area.Workers) {
				row = append(row, area.Workers[i])
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}

	return rows
}
