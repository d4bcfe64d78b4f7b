// internal/output/excel.go

package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/replyforge/postline/internal/extract"
)

const excelSheet = "Posts"

// ExcelSink collects posts into an XLSX workbook saved on Close.
type ExcelSink struct {
	filename string
	book     *excelize.File
	nextRow  int
}

// NewExcelSink prepares a workbook with a styled header row.
func NewExcelSink(filename string) (*ExcelSink, error) {
	book := excelize.NewFile()
	index, err := book.NewSheet(excelSheet)
	if err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}
	book.SetActiveSheet(index)
	book.DeleteSheet("Sheet1")

	headerStyle, err := book.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}
	for i, column := range postColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := book.SetCellValue(excelSheet, cell, column); err != nil {
			return nil, err
		}
		if err := book.SetCellStyle(excelSheet, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	return &ExcelSink{filename: filename, book: book, nextRow: 2}, nil
}

// Write appends one worksheet row per post.
func (s *ExcelSink) Write(posts []extract.Post) error {
	for _, p := range posts {
		for i, v := range postRow(p) {
			cell, err := excelize.CoordinatesToCellName(i+1, s.nextRow)
			if err != nil {
				return err
			}
			if err := s.book.SetCellValue(excelSheet, cell, v); err != nil {
				return fmt.Errorf("writing cell for post %s: %w", p.ID, err)
			}
		}
		s.nextRow++
	}
	return nil
}

// Close saves the workbook to disk.
func (s *ExcelSink) Close() error {
	if s.book == nil {
		return nil
	}
	saveErr := s.book.SaveAs(s.filename)
	closeErr := s.book.Close()
	s.book = nil
	if saveErr != nil {
		return fmt.Errorf("saving workbook: %w", saveErr)
	}
	return closeErr
}
