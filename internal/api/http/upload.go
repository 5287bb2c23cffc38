package http

import (
	"mime/multipart"
	"net/http"

	"skillswap-backend/internal/service"
)

const maxMultipartMemory = 8 << 20

// formUpload reads one file part from a multipart form. The caller closes
// the returned file.
func formUpload(r *http.Request, field string) (service.Upload, multipart.File, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return service.Upload{}, nil, &service.ValidationError{Fields: []service.FieldError{{Field: field, Error: "expected a multipart form"}}}
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		return service.Upload{}, nil, &service.ValidationError{Fields: []service.FieldError{{Field: field, Error: "is required"}}}
	}
	return service.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}, file, nil
}
