package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gigcircle/gigcircle/internal/api/metrics"
	"github.com/gigcircle/gigcircle/internal/core/ports"
)

// saveUpload stores the multipart file posted under field. It returns nil
// when the request has no such file.
func saveUpload(c echo.Context, media ports.MediaStorage, field string) (*string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, fmt.Errorf("read upload %s: %w", field, err)
	}
	if fh.Filename == "" || fh.Size == 0 {
		return nil, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", field, err)
	}
	defer f.Close()

	path, err := media.Save(c.Request().Context(), field, fh.Filename, f)
	if err != nil {
		return nil, fmt.Errorf("store upload %s: %w", field, err)
	}

	metrics.UploadsTotal.WithLabelValues(field).Inc()
	return &path, nil
}

// saveUploads stores every listed field. If one fails, the files stored so
// far are removed before the error is returned.
func saveUploads(c echo.Context, media ports.MediaStorage, log zerolog.Logger, fields ...string) (map[string]*string, error) {
	saved := make(map[string]*string, len(fields))
	for _, field := range fields {
		path, err := saveUpload(c, media, field)
		if err != nil {
			for _, p := range saved {
				if p != nil {
					removeUpload(c, media, log, *p)
				}
			}
			return nil, err
		}
		saved[field] = path
	}
	return saved, nil
}

// removeUpload deletes a stored file whose request failed. A failed removal
// only leaves an orphan behind, so it is logged and not returned.
func removeUpload(c echo.Context, media ports.MediaStorage, log zerolog.Logger, path string) {
	if err := media.Remove(c.Request().Context(), path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to remove orphaned upload")
	}
}
