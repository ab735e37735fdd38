package security

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Canonical MIME types of accepted attachment documents
const (
	MIMEPDF  = "application/pdf"
	MIMEDOC  = "application/msword"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// FileValidationResult contains the result of file validation
type FileValidationResult struct {
	Valid        bool   // Whether the file passed all validation checks
	Extension    string // Lowercased file extension
	DetectedMIME string // MIME type sniffed from content
	MIMEType     string // Canonical MIME type to store and serve
	Error        string // Error message if validation failed
}

// Magic byte signatures per lowercase extension
var magicBytes = map[string][][]byte{
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},                         // %PDF
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}}, // OLE Compound Document
	".docx": {{0x50, 0x4B, 0x03, 0x04}},                         // ZIP (PK..)
}

var canonicalMIME = map[string]string{
	".pdf":  MIMEPDF,
	".doc":  MIMEDOC,
	".docx": MIMEDOCX,
}

// Sniffed MIME types accepted per extension. Generic containers are allowed
// because magic bytes were already checked.
var acceptedMIME = map[string][]string{
	".pdf":  {MIMEPDF},
	".doc":  {MIMEDOC, "application/x-ole-storage"},
	".docx": {MIMEDOCX, "application/zip"},
}

// ValidateDocument checks an attachment in three layers:
// extension allow-list, magic bytes, sniffed MIME type.
func ValidateDocument(filename string, data []byte) FileValidationResult {
	var result FileValidationResult

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		result.Error = "file has no extension"
		return result
	}
	result.Extension = ext

	if _, ok := canonicalMIME[ext]; !ok {
		result.Error = "file extension not allowed: " + ext + " (allowed: .pdf, .doc, .docx)"
		return result
	}

	if !validateMagicBytes(ext, data) {
		result.Error = "file content does not match extension"
		return result
	}

	detected := mimetype.Detect(data)
	result.DetectedMIME = detected.String()
	if !mimeAccepted(ext, detected) {
		result.Error = "MIME type not allowed: " + result.DetectedMIME
		return result
	}

	result.MIMEType = canonicalMIME[ext]
	result.Valid = true
	return result
}

func mimeAccepted(ext string, detected *mimetype.MIME) bool {
	for _, m := range acceptedMIME[ext] {
		if detected.Is(m) {
			return true
		}
	}
	return false
}

func validateMagicBytes(ext string, data []byte) bool {
	if len(data) < 4 {
		return false
	}
	for _, sig := range magicBytes[ext] {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}

// ValidateFileExtension checks only the extension (for quick pre-validation)
func ValidateFileExtension(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return errors.New("file has no extension")
	}
	if _, ok := canonicalMIME[ext]; !ok {
		return errors.New("file extension not allowed: " + ext)
	}
	return nil
}

// MIMEForFilename returns the canonical MIME type for a stored file name,
// falling back to content sniffing.
func MIMEForFilename(filename string, data []byte) string {
	if m, ok := canonicalMIME[strings.ToLower(filepath.Ext(filename))]; ok {
		return m
	}
	return mimetype.Detect(data).String()
}
