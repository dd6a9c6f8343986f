package importer

import (
	"fmt"
	"strings"

	"github.com/arutourism/arutourism-backend/pkg/util"
)

// googleWideThreshold: a Google Contacts export carries dozens of columns,
// the standard template fifteen. Sheets at or above this many headers are
// treated as Google exports unless the caller forces a format.
const googleWideThreshold = 20

// Headers that only appear in Google Contacts exports.
var googleMarkers = map[string]bool{
	"file as":             true,
	"organization 1 name": true,
	"organization name":   true,
	"given name":          true,
}

// IsGoogleFormat applies the wide-sheet heuristic plus marker headers.
// An explicit format override on the endpoint always wins over this.
func IsGoogleFormat(headers []string) bool {
	if len(headers) >= googleWideThreshold {
		return true
	}
	for _, h := range headers {
		if googleMarkers[util.NormalizeKey(h)] {
			return true
		}
	}
	return false
}

type googleColumns struct {
	byNorm map[string]int
	raw    []string
}

func indexGoogleColumns(headers []string) *googleColumns {
	cols := &googleColumns{
		byNorm: make(map[string]int, len(headers)),
		raw:    headers,
	}
	for idx, h := range headers {
		cols.byNorm[util.NormalizeKey(h)] = idx
	}
	return cols
}

func (c *googleColumns) value(row []string, names ...string) (string, int) {
	for _, name := range names {
		if idx, ok := c.byNorm[name]; ok && idx < len(row) {
			if v := strings.TrimSpace(row[idx]); v != "" {
				return v, idx
			}
			return "", idx
		}
	}
	return "", -1
}

// ParseGoogleRow turns one row of a Google Contacts export into a Record.
//
// Name resolution falls back organization -> file-as -> contact name. The
// first phone that is a valid BR number becomes canonical (else the first
// non-empty one); remaining phones are kept as text in the description.
// Columns not otherwise consumed are appended to the description as
// "Label: value" lines so no data is dropped silently.
func ParseGoogleRow(cols *googleColumns, row []string) (*Record, error) {
	consumed := make(map[int]bool)

	take := func(names ...string) string {
		v, idx := cols.value(row, names...)
		if idx >= 0 {
			consumed[idx] = true
		}
		return v
	}

	org := take("organization 1 name", "organization name")
	fileAs := take("file as")
	contactName := take("name")

	nome := util.Squeeze(firstNonEmpty(org, fileAs, contactName))
	if nome == "" {
		return nil, ErrMissingNome
	}

	rec := &Record{Nome: nome}

	// phones: up to three value columns
	var phones []string
	for i := 1; i <= 3; i++ {
		take(fmt.Sprintf("phone %d type", i))
		if v := take(fmt.Sprintf("phone %d value", i)); v != "" {
			phones = append(phones, v)
		}
	}
	canonical, extras := pickCanonicalPhone(phones)
	rec.Telefone = canonical

	if site := take("website 1 value", "website 1", "website"); site != "" {
		classifyDigital(rec, site)
	}

	rec.Email = take("e mail 1 value", "email 1 value")

	// labeled custom fields: recognize tax-id / registration labels
	for i := 1; i <= 3; i++ {
		label := take(fmt.Sprintf("custom field %d label", i))
		value := take(fmt.Sprintf("custom field %d value", i))
		if value == "" {
			continue
		}
		switch util.NormalizeKey(label) {
		case "cnpj":
			rec.Cnpj = util.OnlyDigits(value)
		case "cadastur", "cadas tur", "cadastro tur":
			rec.Cadastur = util.Squeeze(value)
		default:
			if label != "" {
				rec.appendDescricao(fmt.Sprintf("%s: %s", util.Squeeze(label), value))
			}
		}
	}

	notes := take("notes")
	address := take("address 1 formatted", "address 1 street")
	rec.Endereco = util.Squeeze(address)

	if labels := take("labels"); labels != "" {
		rec.Categorias = splitGoogleLabels(labels)
	}

	// description: notes, then address, then leftover phones
	if notes != "" {
		rec.appendDescricao(notes)
	}
	if address != "" {
		rec.appendDescricao("Endereço: " + util.Squeeze(address))
	}
	for _, p := range extras {
		rec.appendDescricao("Telefone adicional: " + p)
	}

	// every unconsumed non-empty column survives as a "Label: value" line
	for idx, header := range cols.raw {
		if consumed[idx] || idx >= len(row) {
			continue
		}
		value := strings.TrimSpace(row[idx])
		if value == "" || header == "" {
			continue
		}
		rec.appendDescricao(fmt.Sprintf("%s: %s", header, value))
	}

	return rec, nil
}

func (r *Record) appendDescricao(line string) {
	if r.Descricao == "" {
		r.Descricao = line
		return
	}
	r.Descricao += "\n" + line
}

// pickCanonicalPhone prefers the first phone that validates as a BR number;
// when none validates, the first non-empty wins. The rest become extras.
func pickCanonicalPhone(phones []string) (string, []string) {
	if len(phones) == 0 {
		return "", nil
	}

	canonicalIdx := 0
	for i, p := range phones {
		if util.IsValidPhone(p) {
			canonicalIdx = i
			break
		}
	}

	extras := make([]string, 0, len(phones)-1)
	for i, p := range phones {
		if i != canonicalIdx {
			extras = append(extras, util.Squeeze(p))
		}
	}
	return normalizePhone(phones[canonicalIdx]), extras
}

// splitGoogleLabels splits the Labels column, which joins group names with
// " ::: ", while also accepting plain comma-separated lists.
func splitGoogleLabels(raw string) []string {
	raw = strings.ReplaceAll(raw, ":::", ",")
	var out []string
	for _, part := range strings.Split(raw, ",") {
		name := util.Squeeze(part)
		if name == "" || strings.EqualFold(name, "* myContacts") {
			continue
		}
		out = append(out, name)
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
