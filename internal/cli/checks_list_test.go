package cli

import (
	"bytes"
	"strings"
	"testing"

	_ "sedreview/internal/checks/builtin"
)

func TestChecksShowCmd_DisplaysExemptionOptions(t *testing.T) {
	buf := new(bytes.Buffer)
	checksShowCmd.SetOut(buf)

	if err := checksShowCmd.RunE(checksShowCmd, []string{"tss-reported"}); err != nil {
		t.Fatalf("RunE() error = %v", err)
	}

	output := buf.String()
	expected := []string{
		"CHECK: tss-reported",
		"Options:",
		"exempt.uids",
		"exempt.patterns",
		"exempt.sites",
	}
	for _, exp := range expected {
		if !strings.Contains(output, exp) {
			t.Errorf("Expected output to contain %q, but it didn't.\nOutput:\n%s", exp, output)
		}
	}
}

func TestChecksShowCmd_UnknownCheck(t *testing.T) {
	buf := new(bytes.Buffer)
	checksShowCmd.SetOut(buf)

	if err := checksShowCmd.RunE(checksShowCmd, []string{"no-such-check"}); err == nil {
		t.Error("Expected error, got nil")
	}
}
