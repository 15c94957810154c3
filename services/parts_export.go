package services

import (
	"io"
	"strings"

	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/tealeg/xlsx"
)

var partExportHeaders = []string{
	"ID", "Name", "Slug", "Category", "Subcategory", "Brand", "Part Number",
	"Price", "Stock", "Availability", "Fits", "Images", "Created At", "Updated At",
}

// WritePartsWorkbook writes parts as a single-sheet xlsx workbook. Vehicles
// should be preloaded for the Fits column.
func WritePartsWorkbook(w io.Writer, parts []models.Part) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Parts")
	if err != nil {
		return err
	}

	headerRow := sheet.AddRow()
	for _, h := range partExportHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, p := range parts {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID.String())
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Slug)
		row.AddCell().SetValue(p.Category)
		row.AddCell().SetValue(deref(p.Subcategory))
		row.AddCell().SetValue(p.Brand)
		row.AddCell().SetValue(deref(p.PartNumber))
		price, _ := p.Price.Float64()
		row.AddCell().SetFloatWithFormat(price, "0.00")
		row.AddCell().SetInt(p.StockQuantity)
		row.AddCell().SetValue(p.Availability)

		fits := make([]string, 0, len(p.Vehicles))
		for _, v := range p.Vehicles {
			fits = append(fits, v.Label())
		}
		row.AddCell().SetValue(strings.Join(fits, "; "))
		row.AddCell().SetValue(strings.Join(p.Images, " "))
		row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	return file.Write(w)
}
