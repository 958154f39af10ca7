package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/compcheck/internal/compat"
)

func encodeJSON(r compat.Report) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func encodeYAML(r compat.Report) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodeCSV writes one row per criterion in evaluation order.
func encodeCSV(r compat.Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{{"criterion", "title", "essential", "status", "result"}}
	for _, c := range compat.AllCriteria {
		res := r.Result(c)
		rows = append(rows, []string{
			string(c),
			c.Title(),
			boolString(compat.IsEssential(c)),
			passFail(res.Status),
			compat.Describe(c, res),
		})
	}
	rows = append(rows, []string{"compatible", "Verdict", "", passFail(r.Compatible), r.Verdict()})

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func passFail(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}

func boolString(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
