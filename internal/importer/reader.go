package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var (
	ErrEmptyFile         = errors.New("arquivo vazio")
	ErrUnsupportedFormat = errors.New("formato de arquivo não suportado; envie .csv ou .xlsx")
	ErrNoHeaders         = errors.New("nenhum cabeçalho reconhecido")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadRows reads the upload into a header row plus body rows. CSV payloads
// that are not valid UTF-8 are retried as Latin-1, the encoding Excel
// produces for pt-BR spreadsheets saved as "CSV".
func ReadRows(r io.Reader, filename string) (headers []string, body [][]string, err error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return readCSV(r)
	case ".xlsx":
		return readXLSX(r)
	default:
		return nil, nil, ErrUnsupportedFormat
	}
}

func readCSV(r io.Reader) ([]string, [][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("falha ao ler arquivo: %w", err)
	}

	data = bytes.TrimPrefix(data, utf8BOM)

	if !utf8.Valid(data) {
		decoded, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), data)
		if err == nil {
			data = decoded
		}
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("falha ao ler arquivo: %w", err)
	}

	return splitHeaderBody(rows)
}

func readXLSX(r io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("falha ao ler arquivo: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, ErrEmptyFile
	}

	// first sheet only
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("falha ao ler arquivo: %w", err)
	}

	return splitHeaderBody(rows)
}

func splitHeaderBody(rows [][]string) ([]string, [][]string, error) {
	if len(rows) == 0 {
		return nil, nil, ErrEmptyFile
	}

	headers := make([]string, len(rows[0]))
	for i, c := range rows[0] {
		headers[i] = strings.TrimSpace(c)
	}

	body := make([][]string, 0, len(rows)-1)
	for _, r := range rows[1:] {
		row := make([]string, len(r))
		for i, c := range r {
			row[i] = strings.TrimSpace(c)
		}
		body = append(body, row)
	}

	return headers, body, nil
}
