// Package detect calls the cotton leaf classifier.
package detect

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"

	"cottoncare/internal/domain"
)

var (
	ErrRemote    = errors.New("prediction service unavailable")
	ErrEmpty     = errors.New("no image uploaded")
	ErrNotImage  = errors.New("upload is not an image")
	ErrTooLarge  = errors.New("image is too large")
	ErrBadAnswer = errors.New("prediction service returned an unreadable answer")
)

// Prediction is the classifier's answer. Disease is Unknown for labels outside the
// known set; Label keeps the raw value.
type Prediction struct {
	Disease    domain.Disease `json:"disease"`
	Label      string         `json:"label"`
	Confidence float64        `json:"confidence"`
}

type Client struct {
	URL      string
	Timeout  time.Duration
	MaxBytes int
}

func New(url string, timeout time.Duration, maxBytes int) *Client {
	return &Client{URL: url, Timeout: timeout, MaxBytes: maxBytes}
}

// Check rejects uploads that should never reach the classifier.
func (c *Client) Check(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmpty
	}
	if c.MaxBytes > 0 && len(data) > c.MaxBytes {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, len(data), c.MaxBytes)
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: %s", ErrNotImage, mt.String())
	}
	return mt.String(), nil
}

type wireAnswer struct {
	PredictedClass *string  `json:"predicted_class"`
	Confidence     *float64 `json:"confidence"`
}

// Predict uploads the image as multipart field "file" and maps the answer onto the
// known disease labels.
func (c *Client) Predict(ctx context.Context, filename string, data []byte) (Prediction, error) {
	if _, err := c.Check(data); err != nil {
		return Prediction{}, err
	}
	if err := ctx.Err(); err != nil {
		return Prediction{}, err
	}
	if filename == "" {
		filename = "leaf"
	}

	a := fiber.Post(c.URL)
	if c.Timeout > 0 {
		a.Timeout(c.Timeout)
	}
	a.FileData(&fiber.FormFile{Fieldname: "file", Name: filename, Content: data}).MultipartForm(nil)
	if err := a.Parse(); err != nil {
		return Prediction{}, fmt.Errorf("%w: %v", ErrRemote, err)
	}
	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return Prediction{}, fmt.Errorf("%w: %v", ErrRemote, errors.Join(errs...))
	}
	if code < 200 || code > 299 {
		return Prediction{}, fmt.Errorf("%w: status %d", ErrRemote, code)
	}

	var ans wireAnswer
	if err := json.Unmarshal(body, &ans); err != nil {
		return Prediction{}, fmt.Errorf("%w: %v", ErrBadAnswer, err)
	}
	if ans.PredictedClass == nil {
		return Prediction{}, fmt.Errorf("%w: missing predicted_class", ErrBadAnswer)
	}
	p := Prediction{
		Disease: domain.ParseDisease(*ans.PredictedClass),
		Label:   *ans.PredictedClass,
	}
	if ans.Confidence != nil {
		p.Confidence = *ans.Confidence
	}
	return p, nil
}
