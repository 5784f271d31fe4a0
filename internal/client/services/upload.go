package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/dmitrijs2005/jobboard/internal/client/client"
	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/dmitrijs2005/jobboard/internal/client/validate"
	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/filex"
	"github.com/dmitrijs2005/jobboard/internal/netx"
)

// Uploader sends a resume to object storage and returns its public URL.
type Uploader interface {
	UploadResume(ctx context.Context, path string) (string, error)
}

type uploadService struct {
	client     client.Client
	hc         *http.Client
	uploadBase string
}

// NewUploadService builds an Uploader. hc is used for the storage request
// only and must not carry the API session; uploadBase is the signed-form
// endpoint root, e.g. "https://api.cloudinary.com/v1_1".
func NewUploadService(c client.Client, hc *http.Client, uploadBase string) Uploader {
	return &uploadService{client: c, hc: hc, uploadBase: strings.TrimRight(uploadBase, "/")}
}

// UploadResume validates the file locally, asks the API for an upload
// descriptor and sends the file the way the descriptor says.
func (s *uploadService) UploadResume(ctx context.Context, path string) (string, error) {
	fi, err := filex.Inspect(path)
	if err != nil {
		return "", common.NewValidationError("resume", "Could not read the selected file")
	}
	if err := validate.Resume(fi); err != nil {
		return "", err
	}

	d, err := s.client.UploadSignature(ctx, models.UploadRequest{
		Filename: fi.Name,
		MimeType: common.ContentTypePDF,
		Size:     fi.Size,
	})
	if err != nil {
		return "", fmt.Errorf("get upload signature: %w", err)
	}

	f, err := os.Open(fi.Path)
	if err != nil {
		return "", common.NewValidationError("resume", "Could not read the selected file")
	}
	defer f.Close()

	switch {
	case d.IsPresigned():
		if err := netx.PutPresigned(ctx, s.hc, d.UploadURL, common.ContentTypePDF, f, fi.Size); err != nil {
			return "", uploadError(err)
		}
		return d.PublicURL, nil

	case d.IsSignedForm():
		endpoint := fmt.Sprintf("%s/%s/raw/upload", s.uploadBase, d.CloudName)
		fields := map[string]string{
			"api_key":         d.APIKey,
			"timestamp":       fmt.Sprint(d.Timestamp),
			"signature":       d.Signature,
			"folder":          d.Folder,
			"public_id":       d.PublicID,
			"resource_type":   "raw",
			"use_filename":    "true",
			"unique_filename": "false",
		}
		body, err := netx.PostMultipart(ctx, s.hc, endpoint, fields, netx.FilePart{Field: "file", Name: fi.Name, Body: f})
		if err != nil {
			return "", uploadError(err)
		}
		var res struct {
			SecureURL string `json:"secure_url"`
		}
		if err := json.Unmarshal(body, &res); err != nil || res.SecureURL == "" {
			return "", &common.APIError{Kind: common.ErrNetwork, Status: http.StatusOK, Message: "Resume upload returned no file URL"}
		}
		return res.SecureURL, nil

	default:
		return "", &common.APIError{Kind: common.ErrNetwork, Message: "Unsupported upload descriptor"}
	}
}

// uploadError turns a storage failure into the error taxonomy. Storage
// rejections are reported as network failures with the storage message.
func uploadError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	var se *netx.StatusError
	if errors.As(err, &se) {
		msg := "Resume upload failed"
		var body struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal([]byte(se.Body), &body) == nil && body.Error.Message != "" {
			msg += ": " + body.Error.Message
		}
		return &common.APIError{Kind: common.ErrNetwork, Status: se.Code, Message: msg}
	}
	return fmt.Errorf("%w: upload: %v", common.ErrNetwork, err)
}
