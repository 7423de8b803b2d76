package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/gamevault/storefront-api/internal/core/domain"
	"github.com/gamevault/storefront-api/internal/core/ports"
)

type stubProductService struct {
	products   []*domain.Product
	err        error
	lastCreate ports.CreateProductInput
	lastUpdate ports.UpdateProductInput
	deleted    []string
}

func (s *stubProductService) List(_ context.Context, _ ports.ListProductsInput) ([]*domain.Product, error) {
	return s.products, s.err
}

func (s *stubProductService) Featured(_ context.Context) ([]*domain.Product, error) {
	return s.products, s.err
}

func (s *stubProductService) Get(_ context.Context, id string) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (s *stubProductService) Create(_ context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	s.lastCreate = input
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Product{ID: "prod-1", Name: input.Name, Price: input.Price, Images: input.ImageURLs}, nil
}

func (s *stubProductService) Update(_ context.Context, id string, input ports.UpdateProductInput) (*domain.Product, error) {
	s.lastUpdate = input
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Product{ID: id}, nil
}

func (s *stubProductService) Delete(_ context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

type stubMediaService struct {
	err  error
	seen []string
}

func (s *stubMediaService) Upload(_ context.Context, file ports.FileUpload) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.seen = append(s.seen, file.Filename)
	return "https://cdn.example.com/media/products/1-" + file.Filename, nil
}

func (s *stubMediaService) UploadAll(ctx context.Context, files []ports.FileUpload) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, f := range files {
		url, err := s.Upload(ctx, f)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// multipartRequest builds a multipart form with scalar fields plus n image
// file parts named "images".
func multipartRequest(t *testing.T, method, target string, fields map[string]string, imageNames []string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	for _, name := range imageNames {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename=%q`, name))
		header.Set("Content-Type", "image/png")
		part, err := w.CreatePart(header)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write([]byte("pngdata")); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestProductHandler_List_ForwardsQueryParams(t *testing.T) {
	svc := &stubProductService{products: []*domain.Product{}}
	h := NewProductHandler(svc, &stubMediaService{})

	c, rec := newJSONContext(http.MethodGet, "/api/products?category=c1&sort=price_asc", "")
	if err := h.List(c); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("empty listing must render as [], got %q", body)
	}
}

func TestProductHandler_Create_WithImages(t *testing.T) {
	svc := &stubProductService{}
	media := &stubMediaService{}
	h := NewProductHandler(svc, media)

	c, rec := multipartRequest(t, http.MethodPost, "/api/products", map[string]string{
		"name":  "DualSense Controller",
		"price": "69.99",
	}, []string{"front.png", "back.png"})

	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if len(svc.lastCreate.ImageURLs) != 2 {
		t.Fatalf("expected 2 uploaded urls forwarded, got %v", svc.lastCreate.ImageURLs)
	}
	if len(media.seen) != 2 || media.seen[0] != "front.png" {
		t.Fatalf("expected files streamed in order, got %v", media.seen)
	}
}

func TestProductHandler_Create_NoImages(t *testing.T) {
	svc := &stubProductService{}
	h := NewProductHandler(svc, &stubMediaService{})

	c, rec := multipartRequest(t, http.MethodPost, "/api/products", map[string]string{
		"name":  "Gift Card",
		"price": "25",
	}, nil)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if len(svc.lastCreate.ImageURLs) != 0 {
		t.Fatalf("expected no image urls, got %v", svc.lastCreate.ImageURLs)
	}
}

func TestProductHandler_Create_TooManyImages(t *testing.T) {
	h := NewProductHandler(&stubProductService{}, &stubMediaService{})

	names := []string{"1.png", "2.png", "3.png", "4.png", "5.png", "6.png"}
	c, _ := multipartRequest(t, http.MethodPost, "/api/products", map[string]string{
		"name":  "Bundle",
		"price": "499",
	}, names)

	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for more than 5 images, got %v", err)
	}
}

func TestProductHandler_Create_BadPrice(t *testing.T) {
	h := NewProductHandler(&stubProductService{}, &stubMediaService{})

	c, _ := multipartRequest(t, http.MethodPost, "/api/products", map[string]string{
		"name":  "Bundle",
		"price": "free",
	}, nil)

	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unparsable price, got %v", err)
	}
}

func TestProductHandler_Create_UnsupportedMediaPropagates(t *testing.T) {
	h := NewProductHandler(&stubProductService{}, &stubMediaService{err: domain.ErrUnsupportedMedia})

	c, _ := multipartRequest(t, http.MethodPost, "/api/products", map[string]string{
		"name":  "Bundle",
		"price": "499",
	}, []string{"a.png"})

	if err := h.Create(c); !errors.Is(err, domain.ErrUnsupportedMedia) {
		t.Fatalf("expected ErrUnsupportedMedia passed to the error handler, got %v", err)
	}
}

func TestProductHandler_Update_NewImagesAppended(t *testing.T) {
	svc := &stubProductService{}
	h := NewProductHandler(svc, &stubMediaService{})

	c, rec := multipartRequest(t, http.MethodPut, "/api/products/prod-1", map[string]string{
		"stock": "3",
	}, []string{"extra.png"})
	c.SetParamNames("id")
	c.SetParamValues("prod-1")

	if err := h.Update(c); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(svc.lastUpdate.NewImageURLs) != 1 {
		t.Fatalf("expected 1 new image url, got %v", svc.lastUpdate.NewImageURLs)
	}
	if svc.lastUpdate.Stock == nil || *svc.lastUpdate.Stock != 3 {
		t.Fatalf("expected stock forwarded, got %+v", svc.lastUpdate)
	}
	if svc.lastUpdate.Name != nil {
		t.Fatalf("absent fields must stay nil")
	}
}

func TestProductHandler_Delete_Message(t *testing.T) {
	svc := &stubProductService{}
	h := NewProductHandler(svc, &stubMediaService{})

	c, rec := newJSONContext(http.MethodDelete, "/api/products/prod-1", "")
	c.SetParamNames("id")
	c.SetParamValues("prod-1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["message"] != "Product removed" {
		t.Fatalf("unexpected message %q", resp["message"])
	}
	if len(svc.deleted) != 1 || svc.deleted[0] != "prod-1" {
		t.Fatalf("expected delete forwarded, got %v", svc.deleted)
	}
}

func TestProductHandler_Get_NotFoundPropagates(t *testing.T) {
	h := NewProductHandler(&stubProductService{}, &stubMediaService{})

	c, _ := newJSONContext(http.MethodGet, "/api/products/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.Get(c); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound passed to the error handler, got %v", err)
	}
}
