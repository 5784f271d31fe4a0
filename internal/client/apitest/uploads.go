package apitest

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const resumeFolder = "resumes"

// Object returns an uploaded file by storage key.
func (s *Server) Object(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.objects[key]
	return b, ok
}

// Objects returns the number of stored uploads.
func (s *Server) Objects() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

func (s *Server) handleSignature(w http.ResponseWriter, r *http.Request) {
	var in models.UploadRequest
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.MimeType != "application/pdf" {
		writeError(w, http.StatusBadRequest, "Only PDF files are allowed")
		return
	}
	if in.Size > 5*1024*1024 {
		writeError(w, http.StatusBadRequest, "File size must not exceed 5MB")
		return
	}

	u := currentUser(r)
	publicID := fmt.Sprintf("%s_%s", u.ID, uuid.NewString())

	if s.UploadMode == Presigned {
		d, err := s.presign(r.Context(), resumeFolder+"/"+publicID+".pdf")
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Could not sign upload")
			return
		}
		writeData(w, http.StatusOK, d, nil)
		return
	}

	ts := s.Now().Unix()
	writeData(w, http.StatusOK, models.UploadDescriptor{
		Signature: signParams(map[string]string{
			"folder":    resumeFolder,
			"public_id": publicID,
			"timestamp": strconv.FormatInt(ts, 10),
		}),
		Timestamp: ts,
		APIKey:    APIKey,
		CloudName: CloudName,
		Folder:    resumeFolder,
		PublicID:  publicID,
	}, nil)
}

// signParams signs the sorted "k=v&..." string with the API secret, the
// way Cloudinary signed uploads are checked.
func signParams(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + params[k]
	}
	sum := sha1.Sum([]byte(strings.Join(parts, "&") + apiSecret))
	return hex.EncodeToString(sum[:])
}

func (s *Server) presign(ctx context.Context, key string) (models.UploadDescriptor, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion("us-east-1"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("test-access-key", "test-secret-key", "")),
	)
	if err != nil {
		return models.UploadDescriptor{}, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.URL)
		o.UsePathStyle = true
	})

	req, err := s3.NewPresignClient(client).PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(ResumeBucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return models.UploadDescriptor{}, err
	}

	return models.UploadDescriptor{
		UploadURL: req.URL,
		PublicURL: s.URL + "/files/" + key,
		Key:       key,
	}, nil
}

func (s *Server) handleFormUpload(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "cloud") != CloudName {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": map[string]string{"message": "Unknown cloud"}})
		return
	}
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": map[string]string{"message": err.Error()}})
		return
	}

	want := signParams(map[string]string{
		"folder":    r.FormValue("folder"),
		"public_id": r.FormValue("public_id"),
		"timestamp": r.FormValue("timestamp"),
	})
	if r.FormValue("api_key") != APIKey || r.FormValue("signature") != want {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": map[string]string{"message": "Invalid Signature"}})
		return
	}
	if r.FormValue("resource_type") != "raw" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": map[string]string{"message": "resource_type must be raw"}})
		return
	}

	f, _, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": map[string]string{"message": "Missing file"}})
		return
	}
	defer f.Close()
	body, err := io.ReadAll(f)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": map[string]string{"message": err.Error()}})
		return
	}

	key := r.FormValue("folder") + "/" + r.FormValue("public_id") + ".pdf"
	s.mu.Lock()
	s.objects[key] = body
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"public_id":     r.FormValue("folder") + "/" + r.FormValue("public_id"),
		"resource_type": "raw",
		"bytes":         len(body),
		"secure_url":    s.URL + "/files/" + key,
	})
}

func (s *Server) handlePresignedPut(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("X-Amz-Signature") == "" {
		http.Error(w, "missing signature", http.StatusForbidden)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	key := chi.URLParam(r, "*")
	s.mu.Lock()
	s.objects[key] = body
	s.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	b, ok := s.Object(chi.URLParam(r, "*"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	_, _ = w.Write(b)
}
