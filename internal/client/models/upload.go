package models

// UploadRequest asks the backend for an upload descriptor.
type UploadRequest struct {
	Filename string `json:"filename"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
}

// UploadDescriptor authorizes one direct upload to object storage. The
// backend returns either the signed-form fields or the presigned URL ones.
type UploadDescriptor struct {
	Signature string `json:"signature,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
	APIKey    string `json:"apiKey,omitempty"`
	CloudName string `json:"cloudName,omitempty"`
	Folder    string `json:"folder,omitempty"`
	PublicID  string `json:"publicId,omitempty"`

	UploadURL string `json:"uploadUrl,omitempty"`
	PublicURL string `json:"publicUrl,omitempty"`
	Key       string `json:"key,omitempty"`
}

func (d UploadDescriptor) IsPresigned() bool {
	return d.UploadURL != ""
}

func (d UploadDescriptor) IsSignedForm() bool {
	return d.Signature != "" && d.CloudName != ""
}
