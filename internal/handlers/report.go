package handlers

import (
	"fmt"
	"mime"

	"aerocode/internal/apierr"
	"aerocode/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// AircraftReport GET /aeronaves/:id/relatorio
//
// Production report of one aircraft: a summary sheet followed by its parts,
// stages and tests.
func AircraftReport(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var aircraft models.Aircraft
	if err := preloadAircraft().First(&aircraft, id).Error; err != nil {
		if isNotFound(err) {
			fail(c, apierr.NotFound("Aeronave não encontrada"))
			return
		}
		fail(c, err)
		return
	}

	f, err := buildAircraftReport(&aircraft)
	if err != nil {
		fail(c, err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("relatorio_%s.xlsx", aircraft.Code)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": filename})
	if disposition == "" {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", disposition)
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		// headers are already out, nothing else can be sent
		_ = c.Error(err)
	}
}

func buildAircraftReport(a *models.Aircraft) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	const summary = "Aeronave"
	f.SetSheetName("Sheet1", summary)
	rows := [][2]interface{}{
		{"Código", a.Code},
		{"Modelo", a.Model},
		{"Tipo", string(a.Type)},
		{"Capacidade", a.Capacity},
		{"Alcance (km)", a.Range},
	}
	for i, r := range rows {
		row := i + 1
		f.SetCellValue(summary, fmt.Sprintf("A%d", row), r[0])
		f.SetCellValue(summary, fmt.Sprintf("B%d", row), r[1])
		f.SetCellStyle(summary, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), headerStyle)
	}

	parts := make([][]interface{}, 0, len(a.Parts))
	for _, p := range a.Parts {
		parts = append(parts, []interface{}{p.ID, p.Name, string(p.Type), p.Supplier})
	}
	if err := writeTable(f, "Peças", headerStyle, []string{"ID", "Nome", "Tipo", "Fornecedor"}, parts); err != nil {
		f.Close()
		return nil, err
	}

	stages := make([][]interface{}, 0, len(a.Stages))
	for _, s := range a.Stages {
		stages = append(stages, []interface{}{s.ID, s.Name, s.Date, s.Status.Label()})
	}
	if err := writeTable(f, "Etapas", headerStyle, []string{"ID", "Nome", "Data", "Status"}, stages); err != nil {
		f.Close()
		return nil, err
	}

	tests := make([][]interface{}, 0, len(a.Tests))
	for _, t := range a.Tests {
		tests = append(tests, []interface{}{t.ID, t.Type.Label(), string(t.Result)})
	}
	if err := writeTable(f, "Testes", headerStyle, []string{"ID", "Tipo", "Resultado"}, tests); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

func writeTable(f *excelize.File, sheet string, headerStyle int, headers []string, rows [][]interface{}) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	for r, values := range rows {
		for i, v := range values {
			col, _ := excelize.ColumnNumberToName(i + 1)
			f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, r+2), v)
		}
	}
	return nil
}
