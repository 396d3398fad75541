package validation

import (
	"fmt"
	"strings"

	"github.com/filedrive/filedrive/internal/model"
)

// mimeToFileType is the fixed mapping from accepted upload MIME types to
// the supported file type enum.
var mimeToFileType = map[string]string{
	"image/png":       model.FileTypeImage,
	"image/jpeg":      model.FileTypeImage,
	"image/gif":       model.FileTypeImage,
	"image/webp":      model.FileTypeImage,
	"application/pdf": model.FileTypePDF,
	"text/csv":        model.FileTypeCSV,
}

// FileTypeForMIME maps an upload content type to a file type. Parameters
// (e.g. "text/csv; charset=utf-8") are ignored. Unrecognized MIME types are
// rejected rather than stored with an undefined type.
func FileTypeForMIME(mimeType string) (string, error) {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.Index(mt, ";"); i != -1 {
		mt = strings.TrimSpace(mt[:i])
	}

	fileType, ok := mimeToFileType[mt]
	if !ok {
		return "", fmt.Errorf("unsupported content type %q", mimeType)
	}
	return fileType, nil
}
