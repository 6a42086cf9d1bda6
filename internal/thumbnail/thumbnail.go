// Package thumbnail fetches a livestream thumbnail and crops the fixed
// letterbox bars the platform adds to the top and bottom.
//
// Fetch failures degrade to "no image" rather than errors: the console
// simply shows no thumbnail and the operator can retry. Only decode and
// encode problems on data we actually received are surfaced.
package thumbnail

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	_ "image/png" // thumbnails are normally JPEG but register PNG too
	"io"
	"net/http"
	"os"
	"time"
)

// Bar heights cropped from the platform's letterboxed thumbnails.
const (
	CropTop    = 45
	CropBottom = 45
)

// Processor fetches and crops thumbnail images
type Processor struct {
	httpClient *http.Client
}

// NewProcessor creates a new thumbnail processor
func NewProcessor() *Processor {
	return &Processor{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Fetch downloads and decodes a thumbnail. A transport failure or
// non-success status yields (nil, nil): no image, not an error.
func (p *Processor) Fetch(url string) (image.Image, error) {
	resp, err := p.httpClient.Get(url)
	if err != nil {
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode thumbnail: %w", err)
	}
	return img, nil
}

// Crop removes the letterbox bars from the top and bottom of an image.
// Images shorter than the combined bar height are returned unchanged.
func Crop(img image.Image) image.Image {
	bounds := img.Bounds()
	if bounds.Dy() <= CropTop+CropBottom {
		return img
	}

	cropped := image.Rect(bounds.Min.X, bounds.Min.Y+CropTop, bounds.Max.X, bounds.Max.Y-CropBottom)

	out := image.NewRGBA(image.Rect(0, 0, cropped.Dx(), cropped.Dy()))
	draw.Draw(out, out.Bounds(), img, cropped.Min, draw.Src)
	return out
}

// EncodeJPEG re-encodes an image as JPEG bytes.
func EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// CroppedJPEG fetches, crops and re-encodes a thumbnail in one step.
// It returns (nil, nil) when no image is available.
func (p *Processor) CroppedJPEG(url string) ([]byte, error) {
	img, err := p.Fetch(url)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, nil
	}
	return EncodeJPEG(Crop(img))
}

// DownloadLink describes a base64-embedded download for the cropped
// thumbnail, suitable for rendering as an anchor href.
type DownloadLink struct {
	Filename string `json:"filename"`
	DataURI  string `json:"data_uri"`
}

// CreateDownloadLink builds a data-URI download link for the cropped
// thumbnail with the caller-supplied filename. It returns (nil, nil)
// when no image is available.
func (p *Processor) CreateDownloadLink(url, filename string) (*DownloadLink, error) {
	data, err := p.CroppedJPEG(url)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	return &DownloadLink{
		Filename: filename,
		DataURI:  "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data),
	}, nil
}

// SaveFile fetches, crops and writes the thumbnail to path. It reports
// whether an image was available.
func (p *Processor) SaveFile(url, path string) (bool, error) {
	data, err := p.CroppedJPEG(url)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return false, fmt.Errorf("failed to write thumbnail file: %w", err)
	}
	return true, nil
}
