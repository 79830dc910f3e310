package builtin

import (
	"context"
	"testing"

	"sedreview/internal/data"
)

func TestMissingDischargeCheck_Default(t *testing.T) {
	ds := data.NewDataset([]data.SampleRecord{
		{UID: "has-q", ParameterCode: data.ParamSSC, Discharge: fptr(350)},
		{UID: "no-q", ParameterCode: data.ParamSSC},
		{UID: "has-q-no-uv", ParameterCode: data.ParamSSC, Discharge: fptr(120)},
		{UID: "not-ssc", ParameterCode: data.ParamSedMass},
	})
	table, err := (&MissingDischargeCheck{}).Evaluate(context.Background(), ds)
	if err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}
	got := flaggedUIDs(table)
	if !got["no-q"] {
		t.Error("expected SSC record without discharge flagged")
	}
	if got["has-q"] || got["has-q-no-uv"] || got["not-ssc"] {
		t.Errorf("unexpected flags: %v", got)
	}
}

// Enabling the unit-value rule may only add flags on top of the default rule.
func TestMissingDischargeCheck_UVAddsFlags(t *testing.T) {
	ds := data.NewDataset([]data.SampleRecord{
		{UID: "no-q", ParameterCode: data.ParamSSC},
		{UID: "q-and-uv", ParameterCode: data.ParamSSC, Discharge: fptr(350), UVDischarge: fptr(348)},
		{UID: "q-no-uv", ParameterCode: data.ParamSSC, Discharge: fptr(120)},
	})

	base, err := (&MissingDischargeCheck{}).Evaluate(context.Background(), ds)
	if err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}

	uv := &MissingDischargeCheck{}
	if err := uv.Configure(map[string]string{"uv": "true"}); err != nil {
		t.Fatalf("Configure() error: %v", err)
	}
	withUV, err := uv.Evaluate(context.Background(), ds)
	if err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}

	baseFlags := flaggedUIDs(base)
	uvFlags := flaggedUIDs(withUV)
	for uid := range baseFlags {
		if !uvFlags[uid] {
			t.Errorf("uv rule removed flag for %q", uid)
		}
	}
	if !uvFlags["q-no-uv"] {
		t.Error("expected record with discharge but no unit-value discharge flagged under uv rule")
	}
	if uvFlags["q-and-uv"] {
		t.Error("record with both discharges should not be flagged")
	}
}

func TestMissingDischargeCheck_ConfigureRejectsBadBool(t *testing.T) {
	c := &MissingDischargeCheck{}
	if err := c.Configure(map[string]string{"uv": "maybe"}); err == nil {
		t.Error("expected error for non-boolean uv value")
	}
}

func TestQAQCDatabaseCheck(t *testing.T) {
	ds := data.NewDataset([]data.SampleRecord{
		{UID: "replicate-ok", MediumCode: "WSQ", QADatabase: "02"},
		{UID: "replicate-wrong-db", MediumCode: "WSQ", QADatabase: "01"},
		{UID: "blank-replicate-wrong-db", MediumCode: "OAQ", QADatabase: "01"},
		{UID: "environmental", MediumCode: "WS", QADatabase: "01"},
	})
	table, err := (&QAQCDatabaseCheck{}).Evaluate(context.Background(), ds)
	if err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}
	got := flaggedUIDs(table)
	for _, uid := range []string{"replicate-wrong-db", "blank-replicate-wrong-db"} {
		if !got[uid] {
			t.Errorf("expected %q flagged", uid)
		}
	}
	if got["replicate-ok"] || got["environmental"] {
		t.Errorf("unexpected flags: %v", got)
	}
}

func TestQAQCDatabaseCheck_ConfiguredDB(t *testing.T) {
	ds := data.NewDataset([]data.SampleRecord{
		{UID: "in-03", MediumCode: "WSQ", QADatabase: "03"},
		{UID: "in-02", MediumCode: "WSQ", QADatabase: "02"},
	})
	c := &QAQCDatabaseCheck{}
	if err := c.Configure(map[string]string{"qa_db": "03"}); err != nil {
		t.Fatalf("Configure() error: %v", err)
	}
	table, err := c.Evaluate(context.Background(), ds)
	if err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}
	got := flaggedUIDs(table)
	if got["in-03"] || !got["in-02"] {
		t.Errorf("flags = %v, want only in-02 with qa_db=03", got)
	}
}

func TestQAQCDatabaseCheck_ConfigureRejectsBadDB(t *testing.T) {
	c := &QAQCDatabaseCheck{}
	for _, bad := range []string{"2", "002", ""} {
		if err := c.Configure(map[string]string{"qa_db": bad}); err == nil {
			t.Errorf("expected error for qa_db %q", bad)
		}
	}
}
