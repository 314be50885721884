package services

import (
	"testing"

	"github.com/oguzk/acadrecord/internal/pkg/csvparse"
)

func rowOf(pairs map[string]string) csvparse.Row {
	row := make(csvparse.Row, len(pairs))
	for k, v := range pairs {
		value := v
		row[k] = &value
	}
	return row
}

func TestParseBatchCode(t *testing.T) {
	tests := []struct {
		code    string
		dept    string
		year    int
		section string
		ok      bool
	}{
		{"CSE2024B", "CSE", 2024, "B", true},
		{"ece2023a", "ece", 2023, "a", true},
		{"ME2025Z", "ME", 2025, "Z", true},
		{"CSE24B", "", 0, "", false},
		{"2024B", "", 0, "", false},
		{"CSE2024", "", 0, "", false},
		{"CSE2024BB", "", 0, "", false},
		{"", "", 0, "", false},
	}

	for _, tt := range tests {
		dept, year, section, ok := parseBatchCode(tt.code)
		if ok != tt.ok {
			t.Errorf("%q: ok = %v, want %v", tt.code, ok, tt.ok)
			continue
		}
		if dept != tt.dept || year != tt.year || section != tt.section {
			t.Errorf("%q: got (%q, %d, %q), want (%q, %d, %q)",
				tt.code, dept, year, section, tt.dept, tt.year, tt.section)
		}
	}
}

func TestFirstMissingField(t *testing.T) {
	row := rowOf(map[string]string{"a": "1", "c": "3"})
	row["b"] = nil

	if got := firstMissingField(row, []string{"a", "c"}); got != "" {
		t.Errorf("all present: got %q", got)
	}
	if got := firstMissingField(row, []string{"a", "b", "d"}); got != "b" {
		t.Errorf("first missing = %q, want b", got)
	}
	if got := firstMissingField(row, []string{"d", "b"}); got != "d" {
		t.Errorf("absent key = %q, want d", got)
	}
}

func TestParseDateFieldFormats(t *testing.T) {
	for _, raw := range []string{"2004-05-12", "12/05/2004", "2004-05-12T00:00:00Z"} {
		row := rowOf(map[string]string{"dob": raw})
		d, err := parseDateField(row, "dob")
		if err != nil {
			t.Errorf("%q: unexpected error %v", raw, err)
			continue
		}
		if d.Year() != 2004 || int(d.Month()) != 5 || d.Day() != 12 {
			t.Errorf("%q: parsed to %v", raw, d)
		}
	}

	row := rowOf(map[string]string{"dob": "May 12th"})
	_, err := parseDateField(row, "dob")
	if err == nil {
		t.Fatal("expected error for unparseable date")
	}
	if err.Error() != "Invalid date: May 12th" {
		t.Errorf("error = %q", err.Error())
	}
}

func TestParseNumericFieldsUseLabel(t *testing.T) {
	row := rowOf(map[string]string{"attempts": "two", "score": "high"})

	if _, err := parseIntField(row, "attempts", "attempts"); err == nil || err.Error() != "Invalid attempts: two" {
		t.Errorf("int error = %v", err)
	}
	if _, err := parseFloatField(row, "score", "score"); err == nil || err.Error() != "Invalid score: high" {
		t.Errorf("float error = %v", err)
	}
}

func TestOptionalFields(t *testing.T) {
	row := rowOf(map[string]string{"maxScore": "100"})

	v, err := optionalFloatField(row, "maxScore", "max score")
	if err != nil || v == nil || *v != 100 {
		t.Errorf("present optional float = %v, %v", v, err)
	}

	v, err = optionalFloatField(row, "absent", "max score")
	if err != nil || v != nil {
		t.Errorf("absent optional float = %v, %v", v, err)
	}

	d, err := optionalDateField(row, "absent")
	if err != nil || d != nil {
		t.Errorf("absent optional date = %v, %v", d, err)
	}

	if s := optionalString(row, "absent"); s != nil {
		t.Errorf("absent optional string = %v", s)
	}
}

func TestParseBoolField(t *testing.T) {
	tests := map[string]bool{
		"true": true, "TRUE": true, "Yes": true, "1": true,
		"false": false, "0": false, "no": false, "maybe": false, "": false,
	}

	for raw, want := range tests {
		row := rowOf(map[string]string{"cleared": raw})
		if raw == "" {
			row["cleared"] = nil
		}
		if got := parseBoolField(row, "cleared"); got != want {
			t.Errorf("%q: got %v, want %v", raw, got, want)
		}
	}
}

func TestRowErrorDetection(t *testing.T) {
	if _, ok := asRowError(rowErrorf("bad")); !ok {
		t.Error("rowErrorf should be detected as a row error")
	}
	if _, ok := asRowError(errStudentMissing); !ok {
		t.Error("errStudentMissing should be detected as a row error")
	}
}
