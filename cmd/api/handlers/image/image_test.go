package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"testing"
	"time"

	"giggles.com/cmd/image/service"
	"giggles.com/cmd/model"
	"giggles.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/test/assert"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/route"
)

type fakeImages struct {
	uploaded *service.UploadImageRequest
	query    string
	failAll  bool
}

func (f *fakeImages) UploadImage(ctx context.Context, req *service.UploadImageRequest) (*model.Image, error) {
	if f.failAll {
		return nil, errno.DependencyErr
	}
	f.uploaded = req
	return &model.Image{ID: "i1", UserID: req.UserID, StoragePath: "images/u1/i1_" + req.Filename}, nil
}

func (f *fakeImages) ListImages(ctx context.Context, userID string, limit int, cursor string) ([]*model.Image, error) {
	return []*model.Image{{ID: "i1", UserID: userID, CreatedAt: time.Date(2025, 3, 1, 8, 0, 0, 500000000, time.UTC)}}, nil
}

func (f *fakeImages) SearchImages(ctx context.Context, userID, query string, limit int) ([]*model.Image, error) {
	f.query = query
	return []*model.Image{}, nil
}

func (f *fakeImages) DeleteImage(ctx context.Context, imageID, userID string) error {
	if imageID != "i1" || userID != "u1" {
		return errno.NotFoundErr.WithMessage("image not found")
	}
	return nil
}

func newEngine(svc *fakeImages) *route.Engine {
	h := New(svc)
	e := route.NewEngine(config.NewOptions(nil))
	e.POST("/images/upload", h.UploadImage)
	e.GET("/images", h.ListImages)
	e.GET("/images/search", h.SearchImages)
	e.DELETE("/images/:id", h.DeleteImage)
	return e
}

func TestUploadImage(t *testing.T) {
	svc := &fakeImages{}
	e := newEngine(svc)

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	assert.Nil(t, mw.WriteField("user_id", "u1"))
	fw, err := mw.CreateFormFile("file", "beach.png")
	assert.Nil(t, err)
	_, _ = fw.Write([]byte("png"))
	assert.Nil(t, mw.Close())

	w := ut.PerformRequest(e, "POST", "/images/upload", &ut.Body{Body: buf, Len: buf.Len()},
		ut.Header{Key: "Content-Type", Value: mw.FormDataContentType()})
	assert.DeepEqual(t, 200, w.Result().StatusCode())

	var got struct {
		Image model.Image `json:"image"`
	}
	assert.Nil(t, json.Unmarshal(w.Result().Body(), &got))
	assert.DeepEqual(t, "images/u1/i1_beach.png", got.Image.StoragePath)
	assert.DeepEqual(t, "beach.png", svc.uploaded.Filename)
}

func TestSearchAndList(t *testing.T) {
	svc := &fakeImages{}
	e := newEngine(svc)

	w := ut.PerformRequest(e, "GET", "/images/search?user_id=u1&q=sunset+beach", nil)
	assert.DeepEqual(t, 200, w.Result().StatusCode())
	assert.DeepEqual(t, `{"images":[]}`, string(w.Result().Body()))
	assert.DeepEqual(t, "sunset beach", svc.query)

	w = ut.PerformRequest(e, "GET", "/images?user_id=u1", nil)
	assert.DeepEqual(t, 200, w.Result().StatusCode())
	var page struct {
		NextCursor string `json:"next_cursor"`
	}
	assert.Nil(t, json.Unmarshal(w.Result().Body(), &page))
	assert.DeepEqual(t, "2025-03-01T08:00:00.5Z", page.NextCursor)
}

func TestDeleteImage(t *testing.T) {
	e := newEngine(&fakeImages{})

	w := ut.PerformRequest(e, "DELETE", "/images/i1?user_id=u1", nil)
	assert.DeepEqual(t, 200, w.Result().StatusCode())
	assert.DeepEqual(t, `{"ok":true}`, string(w.Result().Body()))

	w = ut.PerformRequest(e, "DELETE", "/images/i1?user_id=u2", nil)
	assert.DeepEqual(t, 404, w.Result().StatusCode())
}
