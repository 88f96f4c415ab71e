package api

import (
	"bytes"
	"io"
	"mime/multipart"

	apperrors "github.com/shop-smart/storefront-client/internal/errors"
	"github.com/shop-smart/storefront-client/internal/models"
)

// multipartBody encodes the given fields and file attachments the way the
// backend's upload middleware expects. Nil uploads are skipped.
func multipartBody(fields map[string]string, files map[string]*models.FileUpload) (io.Reader, string, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", apperrors.ValidationError("Invalid form field").WithError(err)
		}
	}

	for name, upload := range files {
		if upload == nil {
			continue
		}

		part, err := writer.CreateFormFile(name, upload.Name)
		if err != nil {
			return nil, "", apperrors.ValidationError("Invalid form attachment").WithError(err)
		}

		if _, err := part.Write(upload.Content); err != nil {
			return nil, "", apperrors.ValidationError("Invalid form attachment").WithError(err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", apperrors.ValidationError("Invalid form payload").WithError(err)
	}

	return &buf, writer.FormDataContentType(), nil
}
