package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"meeting-dashboard/internal/model"
)

const Sheet = "Meetings"

var Header = []any{
	"ID", "Company Name", "Contact Person", "Contact Number", "Meeting Date",
	"Meeting Time", "Client Emails", "Team Emails", "Status", "Date Submitted",
}

// MeetingsXLSX writes the ledger as a one-sheet workbook.
func MeetingsXLSX(w io.Writer, meetings []model.MeetingRequest) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", Sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(Sheet, "A1", &Header); err != nil {
		return err
	}
	for i, m := range meetings {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			fmt.Sprint(m.ID), m.CompanyName, m.ContactPerson, m.ContactNumber, m.MeetingDate,
			m.MeetingTime, m.ClientEmails, m.TeamEmails, m.Status, m.DateSubmitted,
		}
		if err := f.SetSheetRow(Sheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetPanes(Sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}
	_, err := f.WriteTo(w)
	return err
}
