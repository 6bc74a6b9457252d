package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/fieldops/pkg/httpx"
	"github.com/ghuser/fieldops/pkg/storage"
)

// maxCertificateSize caps certificate uploads at 10 MiB.
const maxCertificateSize = 10 << 20

// UploadCertificateResponse returns the object key of a stored certificate.
type UploadCertificateResponse struct {
	Key string `json:"key" example:"certificates/2026/08/5f4d….pdf"`
} // @name UploadCertificateResponse

// CertificateURLResponse returns a time-limited download link.
type CertificateURLResponse struct {
	URL string `json:"url"`
} // @name CertificateURLResponse

// CertificatesHandler stores installation certificates in object storage and
// issues presigned download links.
type CertificatesHandler struct {
	store *storage.ObjectStore
}

// NewCertificatesHandler returns a CertificatesHandler backed by the given store.
func NewCertificatesHandler(store *storage.ObjectStore) *CertificatesHandler {
	return &CertificatesHandler{store: store}
}

// Upload accepts a multipart file under the "certificate" field and stores it.
//
//	@Summary		Upload installation certificate
//	@Description	Stores a certificate file in object storage and returns its key
//	@Tags			inventory
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			certificate	formData	file	true	"Certificate file"
//	@Success		201			{object}	UploadCertificateResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/inventory/certificates [post]
func (h *CertificatesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCertificateSize)
	file, header, err := r.FormFile("certificate")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "certificate file is required")
		return
	}
	defer file.Close()

	now := time.Now().UTC()
	key := fmt.Sprintf("certificates/%d/%02d/%s%s", now.Year(), now.Month(), uuid.NewString(), filepath.Ext(header.Filename))

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := h.store.Put(r.Context(), key, file, header.Size, contentType); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "store certificate failed")
		return
	}

	httpx.JSON(w, http.StatusCreated, UploadCertificateResponse{Key: key})
}

// Download issues a presigned URL for a stored certificate.
//
//	@Summary	Get certificate download link
//	@Tags		inventory
//	@Produce	json
//	@Param		key	path		string	true	"Object key"
//	@Success	200	{object}	CertificateURLResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/inventory/certificates/{key} [get]
func (h *CertificatesHandler) Download(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if key == "" {
		key = chi.URLParam(r, "key")
	}
	if key == "" {
		httpx.JSONError(w, http.StatusBadRequest, "object key is required")
		return
	}

	if err := h.store.Stat(r.Context(), key); err != nil {
		httpx.JSONError(w, http.StatusNotFound, "certificate not found")
		return
	}

	url, err := h.store.PresignedGet(r.Context(), key)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "presign failed")
		return
	}

	httpx.JSON(w, http.StatusOK, CertificateURLResponse{URL: url})
}
