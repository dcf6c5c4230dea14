package services

import "testing"

func TestSuggestedFilename(t *testing.T) {
	tests := []struct {
		name  string
		short string
		ic    InvoiceContext
		ext   string
		want  string
	}{
		{
			"spaces become underscores",
			"TMC",
			InvoiceContext{StudentName: "Jane Citizen", Status: DeviceMissing},
			".pdf",
			"TMC_Missing_Device_Jane_Citizen.pdf",
		},
		{
			"surrounding and repeated spaces",
			"TMC",
			InvoiceContext{StudentName: "  Mary  Anne Lee ", Status: DeviceDamaged},
			".pdf",
			"TMC_Damaged_Device_Mary_Anne_Lee.pdf",
		},
		{
			"path separators removed",
			"TMC",
			InvoiceContext{StudentName: "A/B\\C:D", Status: DeviceDamaged},
			".xlsx",
			"TMC_Damaged_Device_A-B-C-D.xlsx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestedFilename(tt.short, tt.ic, tt.ext)
			if got != tt.want {
				t.Errorf("SuggestedFilename() = %q, want %q", got, tt.want)
			}
		})
	}
}
