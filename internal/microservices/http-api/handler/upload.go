package handler

import (
	"io"
	"mime/multipart"

	"perfumism/internal/microservices/http-api/service"
)

// openUploads opens every multipart file. The returned closer closes all of
// them and must be called once the service is done.
func openUploads(headers []*multipart.FileHeader) ([]service.ImageUpload, func(), error) {
	uploads := make([]service.ImageUpload, 0, len(headers))
	files := make([]io.Closer, 0, len(headers))
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		files = append(files, f)
		uploads = append(uploads, service.ImageUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		})
	}

	return uploads, closeAll, nil
}
