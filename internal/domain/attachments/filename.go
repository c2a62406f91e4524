package attachments

import (
	"path"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var allowedExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

var windowsDeviceNames = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {},
}

// AllowedFile mira la extensión del nombre original (sin importar mayúsculas).
func AllowedFile(filename string) bool {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return false
	}
	_, ok := allowedExtensions[strings.ToLower(filename[i+1:])]
	return ok
}

// SecureFilename reduce un nombre de archivo del cliente a [A-Za-z0-9_.-]:
// descompone a ASCII, separadores de ruta pasan a espacio, los espacios se
// unen con "_" y se recortan "." y "_" de los extremos. Puede devolver "".
func SecureFilename(filename string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(filename) {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	s := b.String()

	s = strings.NewReplacer("/", " ", `\`, " ").Replace(s)
	s = strings.Join(strings.Fields(s), "_")
	s = unsafeChars.ReplaceAllString(s, "")
	s = strings.Trim(s, "._")

	if s != "" {
		base := strings.ToUpper(strings.SplitN(s, ".", 2)[0])
		if _, ok := windowsDeviceNames[base]; ok {
			s = "_" + s
		}
	}
	return s
}

// Reference es lo que se guarda en Pet.Photo para un archivo subido.
func Reference(name string) string {
	return path.Join(uploadsPrefix, name)
}

const uploadsPrefix = "uploads"
