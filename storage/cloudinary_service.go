package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	config "github.com/mindmesh/internship_enrollment/configs"
)

const resumeFolder = "resumes"

// CloudinaryStore uploads enrollment resumes to the hosted storage service.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStore() (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %v", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

// UploadResume stores the resume under {enrollmentId}-{epochMillis}.{ext} and
// returns the retrievable URL. The record insert depends on this URL, so the
// caller aborts the whole submission if the upload fails.
func (s *CloudinaryStore) UploadResume(ctx context.Context, data []byte, filename, enrollmentID string) (string, error) {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		ext = "pdf"
	}
	publicID := fmt.Sprintf("%s/%s-%d.%s", resumeFolder, enrollmentID, time.Now().UnixMilli(), ext)

	uploadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	result, err := s.cld.Upload.Upload(uploadCtx, bytes.NewReader(data), uploader.UploadParams{
		PublicID:     publicID,
		ResourceType: "raw",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload resume: %v", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("cloudinary returned no URL for %s", publicID)
	}

	return result.SecureURL, nil
}
