// Package netx contains the raw HTTP transfers used for file uploads, which
// bypass the JSON API envelope.
package netx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// maxErrBody caps how much of a failed response is echoed into the error.
const maxErrBody = 512

// PutPresigned uploads body to a presigned URL with a single PUT.
func PutPresigned(ctx context.Context, hc *http.Client, url, contentType string, body io.Reader, size int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	if size >= 0 {
		req.ContentLength = size
	}

	resp, err := client(hc).Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// FilePart is the file section of a multipart form.
type FilePart struct {
	Field       string
	Name        string
	ContentType string
	Body        io.Reader
}

// PostMultipart posts fields and file as multipart/form-data and returns the
// response body of a 2xx reply.
func PostMultipart(ctx context.Context, hc *http.Client, url string, fields map[string]string, file FilePart) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("write field %s: %w", k, err)
		}
	}

	fw, err := mw.CreateFormFile(file.Field, file.Name)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(fw, file.Body); err != nil {
		return nil, fmt.Errorf("copy file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := client(hc).Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp)
	}
	return io.ReadAll(resp.Body)
}

// StatusError is returned for non-2xx upload responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upload failed: %d %s; body: %s", e.Code, http.StatusText(e.Code), e.Body)
}

func statusError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
	return &StatusError{Code: resp.StatusCode, Body: string(b)}
}

func client(hc *http.Client) *http.Client {
	if hc == nil {
		return http.DefaultClient
	}
	return hc
}
