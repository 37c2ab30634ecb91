package label

import (
	"fmt"
	"strings"
	"time"
)

// caracteres prohibidos en nombres de archivo de Windows
var filenameReplacer = strings.NewReplacer(
	`\`, "_", `/`, "_", `*`, "_", `?`, "_",
	`:`, "_", `"`, "_", `<`, "_", `>`, "_", `|`, "_",
)

// SanitizeFilename reemplaza por "_" los caracteres no válidos en nombres
// de archivo. Es idempotente.
func SanitizeFilename(s string) string {
	return filenameReplacer.Replace(s)
}

// Filename nombre del PDF guardado: código, charge y marca de tiempo.
func Filename(code, batch string, now time.Time) string {
	name := fmt.Sprintf("%s_%s_%s.pdf", code, batch, now.Format("2006-01-02_15:04:05"))
	return SanitizeFilename(name)
}
