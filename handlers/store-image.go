package handlers

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	"github.com/chai2010/webp"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/image/draw"
	backblaze "gopkg.in/kothar/go-backblaze.v0"

	"github.com/refill-spot/site/b2util"
	"github.com/refill-spot/site/config"
)

// uploadStoreImagesToB2 re-encodes uploaded store photos as webp in several
// widths and pushes them to B2 under the store's prefix. Runs in the
// background; failures are logged, not surfaced.
func uploadStoreImagesToB2(storeID int, files []*multipart.FileHeader) {
	log.Printf("[B2] Starting upload for store %d with %d images", storeID, len(files))

	accountID := config.B2MasterKeyID
	keyID := config.B2KeyID
	appKey := config.B2AppKey
	if accountID == "" || appKey == "" || keyID == "" {
		log.Printf("[B2] ERROR: B2 credentials not set, skipping upload for store %d", storeID)
		return
	}

	b2, err := backblaze.NewB2(backblaze.Credentials{
		AccountID:      accountID,
		ApplicationKey: appKey,
		KeyID:          keyID,
	})
	if err != nil {
		log.Printf("[B2] ERROR: B2 auth error for store %d: %v", storeID, err)
		return
	}

	bucket, err := b2.Bucket(config.B2BucketName)
	if err != nil {
		log.Printf("[B2] ERROR: B2 bucket error for store %d: %v", storeID, err)
		return
	}

	sizes := []struct {
		Width   int
		Suffix  string
		Quality float32
	}{
		{160, "160w", 60},
		{480, "480w", 70},
		{1200, "1200w", 80},
	}

	successCount := 0
	for i, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			log.Printf("[B2] ERROR: Failed to open file %d for store %d: %v", i+1, storeID, err)
			continue
		}

		var buf bytes.Buffer
		if _, err := buf.ReadFrom(file); err != nil {
			log.Printf("[B2] ERROR: Failed to read file %d for store %d: %v", i+1, storeID, err)
			file.Close()
			continue
		}
		file.Close()

		img, _, err := image.Decode(bytes.NewReader(buf.Bytes()))
		if err != nil {
			log.Printf("[B2] ERROR: Failed to decode image %d for store %d: %v", i+1, storeID, err)
			continue
		}
		bounds := img.Bounds()

		for _, sz := range sizes {
			w := sz.Width
			h := bounds.Dy() * w / bounds.Dx()
			dst := image.NewRGBA(image.Rect(0, 0, w, h))
			draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

			var webpBuf bytes.Buffer
			opt := &webp.Options{Lossless: false, Quality: sz.Quality}
			if err := webp.Encode(&webpBuf, dst, opt); err != nil {
				log.Printf("[B2] ERROR: WebP encode error for image %d size %s store %d: %v", i+1, sz.Suffix, storeID, err)
				continue
			}

			b2Path := filepath.Join(
				fmt.Sprintf("%d", storeID),
				fmt.Sprintf("%d-%s.webp", i+1, sz.Suffix),
			)
			if _, err := bucket.UploadTypedFile(b2Path, "image/webp", nil, bytes.NewReader(webpBuf.Bytes())); err != nil {
				log.Printf("[B2] ERROR: Upload failed for %s store %d: %v", b2Path, storeID, err)
				continue
			}
			successCount++
		}
	}

	log.Printf("[B2] Upload complete for store %d: %d files uploaded", storeID, successCount)
}

// HandleStoreImageSignedURL returns a signed download token for a store's
// image prefix so the browser can fetch images directly from B2.
func HandleStoreImageSignedURL(c *fiber.Ctx) error {
	storeID := c.Params("storeID")
	if storeID == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "storeID required"})
	}
	token, err := b2util.GetDownloadTokenForPrefixCached(storeID + "/")
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"prefix":  "/" + storeID + "/",
		"token":   token,
		"expires": time.Now().Unix() + int64(config.B2DownloadTokenExpiry),
	})
}
