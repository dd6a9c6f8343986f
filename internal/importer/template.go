package importer

import (
	"github.com/xuri/excelize/v2"
)

const templateSheet = "Empresas"

// TemplateFilename is the suggested download name for the import model.
const TemplateFilename = "modelo_empresas.xlsx"

var templateHeaders = []string{
	"CNPJ",
	"CATEGORIA (RAMO ATIVIDADE)",
	"NOME",
	"BAIRRO",
	"ENDEREÇO COMPLETO",
	"TELEFONE",
	"CONTATO DIRETO",
	"DIGITAL (site/redes)",
	"CADASTUR",
	"MAPS (link)",
	"APP",
	"DESCRIÇÃO",
	"NÚMERO",
	"CEP",
	"CIDADE",
}

var templateExample = []string{
	"12.345.678/0001-99",
	"Pousada",
	"Pousada Azul",
	"Centro",
	"Av. Central, 123",
	"(48) 99999-9999",
	"Maria (WhatsApp)",
	"site: https://exemplo.com / insta: @pousada",
	"123456789/0123-4",
	"https://maps.google.com/?q=-28.93,-49.48",
	"",
	"Hotel aconchegante com café da manhã.",
	"123",
	"88900-000",
	"Araranguá",
}

// BuildTemplate produces the XLSX model with the canonical headers plus one
// example row, for users preparing data for import.
func BuildTemplate() (*excelize.File, error) {
	f := excelize.NewFile()

	idx, err := f.NewSheet(templateSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(templateSheet, "A1", &templateHeaders); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(templateSheet, "A2", &templateExample); err != nil {
		return nil, err
	}

	endCol, err := excelize.ColumnNumberToName(len(templateHeaders))
	if err != nil {
		return nil, err
	}
	if err := f.SetColWidth(templateSheet, "A", endCol, 28); err != nil {
		return nil, err
	}

	return f, nil
}
