package services

import (
	"fmt"
	"strings"
)

// SuggestedFilename returns the default file name for a letter, e.g.
// "TMC_Missing_Device_Jane_Citizen.pdf". ext includes the leading dot.
func SuggestedFilename(shortName string, ic InvoiceContext, ext string) string {
	ic = ic.Normalized()
	return fmt.Sprintf("%s_%s_Device_%s%s",
		sanitizeFilename(shortName),
		ic.Status.Label(),
		sanitizeFilename(ic.StudentName),
		ext)
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.Join(strings.Fields(s), "_")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}
