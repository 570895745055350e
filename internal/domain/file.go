package domain

import (
	"slices"

	"github.com/google/uuid"
)

// PDFContentType is the only declared content type accepted for uploads.
// The check trusts the declared type and never inspects file contents.
const PDFContentType = "application/pdf"

// UploadedFile is a staged upload held in memory for the session lifetime.
type UploadedFile struct {
	ID          uuid.UUID
	Name        string
	Size        int64
	ContentType string
	Data        []byte
}

// IsPDF reports whether the declared content type is exactly application/pdf.
func (f UploadedFile) IsPDF() bool {
	return f.ContentType == PDFContentType
}

// FileList is the ordered set of staged uploads.
type FileList []UploadedFile

// Append adds the PDF files from incoming and silently skips the rest.
// It returns the extended list and the number of accepted files.
func (l FileList) Append(incoming ...UploadedFile) (FileList, int) {
	accepted := 0
	for _, f := range incoming {
		if !f.IsPDF() {
			continue
		}
		l = append(l, f)
		accepted++
	}
	return l, accepted
}

// RemoveAt returns a new list without the element at index i.
func (l FileList) RemoveAt(i int) (FileList, error) {
	if i < 0 || i >= len(l) {
		return l, NewValidationError("index", "file index out of range")
	}
	out := make(FileList, 0, len(l)-1)
	out = append(out, l[:i]...)
	out = append(out, l[i+1:]...)
	return out, nil
}

// Names returns the file names in order.
func (l FileList) Names() []string {
	names := make([]string, 0, len(l))
	for _, f := range l {
		names = append(names, f.Name)
	}
	return names
}

// Clone returns a shallow copy of the list.
func (l FileList) Clone() FileList {
	return slices.Clone(l)
}
