// Package image provides utilities for loading, resizing and sampling images,
// and for picking an image out of a directory tree.
package image

import (
	"crypto/rand"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"io/fs"
	"math/big"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "github.com/gen2brain/avif" // Register AVIF format
	_ "golang.org/x/image/bmp"  // Register BMP format
	_ "golang.org/x/image/tiff" // Register TIFF format
	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/jmylchreest/gwal/internal/colour"
)

var (
	// ErrDecode is returned when an image cannot be read or decoded.
	ErrDecode = errors.New("failed to decode image")

	// ErrNoImages is returned when no image path was given or a directory
	// holds no supported images.
	ErrNoImages = errors.New("no image selected")
)

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given path.
	Load(path string) (image.Image, error)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load loads an image from a file path.
// Supported formats: JPEG, PNG, GIF, WebP, TIFF, BMP, AVIF.
func (l *FileLoader) Load(path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: image path cannot be empty", ErrDecode)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: image file not found: %s", ErrDecode, path)
		}
		return nil, fmt.Errorf("%w: failed to stat image file: %w", ErrDecode, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: path is a directory, not a file: %s", ErrDecode, path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open image file: %w", ErrDecode, err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w (format: %s): %w", ErrDecode, format, err)
	}

	return img, nil
}

// Resize scales img to exactly width x height with nearest-neighbour
// sampling. Alpha is dropped without premultiplying, so transparent pixels
// keep their stored colour.
func Resize(img image.Image, width, height int) *image.NRGBA {
	src := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		sy := src.Min.Y + y*src.Dy()/height
		for x := range width {
			sx := src.Min.X + x*src.Dx()/width
			dst.Set(x, y, colour.ToRGB(img.At(sx, sy)))
		}
	}
	return dst
}

// Samples returns the pixels of img in row-major order, dropping alpha.
func Samples(img *image.NRGBA) []colour.RGB {
	bounds := img.Bounds()
	samples := make([]colour.RGB, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := img.Pix[img.PixOffset(bounds.Min.X, y):]
		for x := 0; x < bounds.Dx(); x++ {
			samples = append(samples, colour.RGB{R: row[x*4], G: row[x*4+1], B: row[x*4+2]})
		}
	}
	return samples
}

// Thumbnail loads path, resizes it to width x height and returns its samples.
func Thumbnail(l Loader, path string, width, height int) ([]colour.RGB, error) {
	img, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: image has no pixels: %s", ErrDecode, path)
	}
	return Samples(Resize(img, width, height)), nil
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".tiff", ".tif", ".bmp", ".avif"}
}

// isImageFile checks if a file has a supported image extension.
func isImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(SupportedImageExtensions(), ext)
}

// ScanDirectoryForImages walks a directory tree and returns every file with
// a supported image extension, in lexical order. Unreadable entries are skipped.
func ScanDirectoryForImages(dirPath string) ([]string, error) {
	var imageFiles []string
	err := filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dirPath {
				return err
			}
			// Skip entries we can't read (permission issues, races).
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		// For symlinks, stat the target to determine if it's a file.
		if d.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil || info.IsDir() {
				return nil
			}
		}

		if isImageFile(path) {
			imageFiles = append(imageFiles, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	if len(imageFiles) == 0 {
		return nil, fmt.Errorf("%w: no supported image files found in directory: %s", ErrNoImages, dirPath)
	}

	return imageFiles, nil
}

// SelectRandomImage selects a random image from a list of image paths.
// Uses crypto/rand for uniform selection.
func SelectRandomImage(imagePaths []string) (string, error) {
	if len(imagePaths) == 0 {
		return "", fmt.Errorf("%w: image path list is empty", ErrNoImages)
	}

	randomIndex, err := rand.Int(rand.Reader, big.NewInt(int64(len(imagePaths))))
	if err != nil {
		return "", fmt.Errorf("failed to generate random number: %w", err)
	}

	return imagePaths[randomIndex.Int64()], nil
}

// ResolveImagePath resolves a path that could be a file or directory.
// If the path is a directory, it scans it recursively and returns a random image.
// If the path is a file, it returns the path as-is.
func ResolveImagePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: no image path specified", ErrNoImages)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: path %s does not exist", ErrNoImages, path)
		}
		return "", fmt.Errorf("failed to access path: %w", err)
	}

	if !info.IsDir() {
		return path, nil
	}

	imageFiles, err := ScanDirectoryForImages(path)
	if err != nil {
		return "", err
	}

	return SelectRandomImage(imageFiles)
}
