package csvparse

import (
	"testing"
)

func TestParseBasic(t *testing.T) {
	records := Parse("studentId,name\nS001,Alice\nS002,Bob")

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Err != nil {
		t.Fatalf("unexpected record error: %v", records[0].Err)
	}
	if got := records[0].Row.Get("studentId"); got != "S001" {
		t.Errorf("studentId = %q, want S001", got)
	}
	if got := records[1].Row.Get("name"); got != "Bob" {
		t.Errorf("name = %q, want Bob", got)
	}
}

func TestParseTooFewLines(t *testing.T) {
	if records := Parse(""); records != nil {
		t.Errorf("empty input: expected nil, got %d records", len(records))
	}
	if records := Parse("studentId,name"); records != nil {
		t.Errorf("header only: expected nil, got %d records", len(records))
	}
}

func TestParseColumnMismatch(t *testing.T) {
	records := Parse("a,b,c\n1,2\n1,2,3")

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Err == nil {
		t.Fatal("expected error for short row")
	}
	if got := records[0].Err.Error(); got != "expected 3 columns, got 2" {
		t.Errorf("error = %q", got)
	}
	if records[1].Err != nil {
		t.Errorf("valid row should not carry an error: %v", records[1].Err)
	}
}

func TestParseQuotedComma(t *testing.T) {
	records := Parse("name,address\nAlice,\"12 Main St, Springfield\"")

	if len(records) != 1 || records[0].Err != nil {
		t.Fatalf("unexpected parse result: %+v", records)
	}
	if got := records[0].Row.Get("address"); got != "12 Main St, Springfield" {
		t.Errorf("address = %q", got)
	}
}

func TestParseEscapedQuote(t *testing.T) {
	records := Parse("name,nickname\nAlice,\"the \"\"real\"\" one\"")

	if len(records) != 1 || records[0].Err != nil {
		t.Fatalf("unexpected parse result: %+v", records)
	}
	if got := records[0].Row.Get("nickname"); got != `the "real" one` {
		t.Errorf("nickname = %q", got)
	}
}

func TestParseUnmatchedQuoteSwallowsComma(t *testing.T) {
	records := Parse("name,dept\n\"Alice,CSE")

	// The unmatched quote keeps the comma inside one field, so the row
	// no longer matches the header and is surfaced as a row error.
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Err == nil {
		t.Fatal("expected column mismatch error")
	}
	if got := records[0].Err.Error(); got != "expected 2 columns, got 1" {
		t.Errorf("error = %q", got)
	}
}

func TestParseResidualQuoteStripped(t *testing.T) {
	// """Alice""" tokenizes to "Alice" and the surrounding residual
	// quotes are stripped during cleanup.
	records := Parse("name,dept\n\"\"\"Alice\"\"\",CSE")

	if len(records) != 1 || records[0].Err != nil {
		t.Fatalf("unexpected parse result: %+v", records)
	}
	if got := records[0].Row.Get("name"); got != "Alice" {
		t.Errorf("name = %q, want Alice", got)
	}
}

func TestParseEmptyFieldIsNil(t *testing.T) {
	records := Parse("a,b,c\n1,,  ")

	if len(records) != 1 || records[0].Err != nil {
		t.Fatalf("unexpected parse result: %+v", records)
	}
	row := records[0].Row
	if row.Has("b") {
		t.Error("empty field should not count as present")
	}
	if row.Has("c") {
		t.Error("whitespace-only field should not count as present")
	}
	if got := row.Get("b"); got != "" {
		t.Errorf("Get on nil field = %q, want empty", got)
	}
}

func TestParseSkipsBlankLines(t *testing.T) {
	records := Parse("a,b\r\n1,2\r\n\r\n   \r\n3,4\r\n")

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if got := records[1].Row.Get("a"); got != "3" {
		t.Errorf("second row a = %q, want 3", got)
	}
}

func TestParseTrimsWhitespace(t *testing.T) {
	records := Parse("a, b \n  hello , world  ")

	if len(records) != 1 || records[0].Err != nil {
		t.Fatalf("unexpected parse result: %+v", records)
	}
	row := records[0].Row
	if got := row.Get("a"); got != "hello" {
		t.Errorf("a = %q, want hello", got)
	}
	if got := row.Get("b"); got != "world" {
		t.Errorf("b = %q, want world", got)
	}
}
