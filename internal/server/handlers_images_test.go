package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/t0sssik/gsd-ci-cd/internal/domain"
)

func TestCreateImage_Defaults(t *testing.T) {
	srv := newTestServer(t)
	user := seedUser(t, srv, "alice", "alice@example.com")

	img := seedImage(t, srv, user.ID, "scene.jpg")

	assert.Equal(t, 1, img.ID)
	assert.Equal(t, domain.DefaultImageWidth, img.Width)
	assert.Equal(t, domain.DefaultImageHeight, img.Height)
	assert.Equal(t, domain.DefaultImageFormat, img.Format)
	assert.Equal(t, domain.ImageUploaded, img.Status)
	assert.Equal(t, testTime, img.UploadDate)
}

func TestCreateImage_ExplicitDimensions(t *testing.T) {
	srv := newTestServer(t)
	user := seedUser(t, srv, "alice", "alice@example.com")

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/images", map[string]any{
		"user_id":   user.ID,
		"filename":  "tile.png",
		"file_size": 512,
		"width":     256,
		"height":    256,
		"format":    "png",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	img := decode[domain.Image](t, rec)
	assert.Equal(t, 256, img.Width)
	assert.Equal(t, "png", img.Format)
}

func TestCreateImage_UnknownUser(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/images", map[string]any{
		"user_id":   99,
		"filename":  "scene.jpg",
		"file_size": 2048,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "user not found")
}

func TestCreateImage_MissingFilename(t *testing.T) {
	srv := newTestServer(t)
	user := seedUser(t, srv, "alice", "alice@example.com")

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/images", map[string]any{
		"user_id":   user.ID,
		"file_size": 2048,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListImages(t *testing.T) {
	srv := newTestServer(t)
	user := seedUser(t, srv, "alice", "alice@example.com")
	seedImage(t, srv, user.ID, "a.jpg")
	seedImage(t, srv, user.ID, "b.jpg")

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/images", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	images := decode[[]domain.Image](t, rec)
	require.Len(t, images, 2)
	assert.Equal(t, "a.jpg", images[0].Filename)
}

func TestUpdateImage_Status(t *testing.T) {
	srv := newTestServer(t)
	user := seedUser(t, srv, "alice", "alice@example.com")
	img := seedImage(t, srv, user.ID, "scene.jpg")

	rec := doJSON(t, srv, http.MethodPut, fmt.Sprintf("/api/v1/images/%d", img.ID), map[string]any{
		"status": "processing",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	updated := decode[domain.Image](t, rec)
	assert.Equal(t, domain.ImageProcessing, updated.Status)
	assert.Equal(t, "scene.jpg", updated.Filename)
}

func TestUpdateImage_InvalidStatus(t *testing.T) {
	srv := newTestServer(t)
	user := seedUser(t, srv, "alice", "alice@example.com")
	img := seedImage(t, srv, user.ID, "scene.jpg")

	rec := doJSON(t, srv, http.MethodPut, fmt.Sprintf("/api/v1/images/%d", img.ID), map[string]any{
		"status": "exploded",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteImage(t *testing.T) {
	srv := newTestServer(t)
	user := seedUser(t, srv, "alice", "alice@example.com")
	img := seedImage(t, srv, user.ID, "scene.jpg")

	rec := doJSON(t, srv, http.MethodDelete, fmt.Sprintf("/api/v1/images/%d", img.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Image 'scene.jpg' deleted successfully")
}

func TestDeleteImage_CascadesAssessments(t *testing.T) {
	srv := newTestServer(t)
	user := seedUser(t, srv, "alice", "alice@example.com")
	img := seedImage(t, srv, user.ID, "scene.jpg")
	model := seedModel(t, srv)
	assessment := seedAssessment(t, srv, img.ID, model.ID)

	rec := doJSON(t, srv, http.MethodDelete, fmt.Sprintf("/api/v1/images/%d", img.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/v1/assessments/%d", assessment.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListImageAssessments(t *testing.T) {
	srv := newTestServer(t)
	user := seedUser(t, srv, "alice", "alice@example.com")
	img := seedImage(t, srv, user.ID, "scene.jpg")
	other := seedImage(t, srv, user.ID, "other.jpg")
	model := seedModel(t, srv)
	seedAssessment(t, srv, img.ID, model.ID)
	seedAssessment(t, srv, other.ID, model.ID)

	rec := doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/v1/images/%d/assessments", img.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assessments := decode[[]domain.Assessment](t, rec)
	require.Len(t, assessments, 1)
	assert.Equal(t, img.ID, assessments[0].ImageID)
}

func TestListImageAssessments_UnknownImage(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/images/42/assessments", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
