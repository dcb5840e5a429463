package reports

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the full export.
const SheetName = "Audit_Results"

var fullColumns = []struct {
	header string
	width  float64
	wrap   bool
}{
	{"Audit Question", 80, true},
	{"Weightage", 12, false},
	{"Answer", 15, false},
	{"Achieved Score", 18, false},
	{"Explanation/Comments", 80, true},
	{"Timestamp (UTC)", 20, false},
}

// WriteFullExport renders rows as an xlsx workbook. No rows yields an empty
// artifact and no error.
func WriteFullExport(rows []Row) ([]byte, error) {
	if len(rows) == 0 {
		return []byte{}, nil
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, err
	}

	wrap, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return nil, err
	}

	for i, c := range fullColumns {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, col, col, c.width); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(SheetName, col+"1", c.header); err != nil {
			return nil, err
		}
	}

	for i, r := range rows {
		line := i + 2
		values := []any{r.Question, r.Weight, string(r.Answer), r.Score, r.Explanation, r.Timestamp.UTC().Format("2006-01-02 15:04:05")}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, line)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return nil, err
			}
			if fullColumns[j].wrap {
				if err := f.SetCellStyle(SheetName, cell, cell, wrap); err != nil {
					return nil, err
				}
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
