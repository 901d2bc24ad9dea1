package uploadController

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"gymadmin/config"
	"gymadmin/middleware"
	"gymadmin/utils"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2"
)

var allowedImageExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// UploadProfilePic accepts a multipart image and returns a URL to store on
// the member record. When Cloudinary is configured the image goes there via
// an unsigned upload; otherwise it is saved under ./public/uploads and served
// statically.
func UploadProfilePic(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No file uploaded!", nil)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExt[ext] {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Only image files are allowed!", nil)
	}

	cfg := config.AppConfig
	if cfg.CloudinaryCloudName != "" && cfg.CloudinaryUploadPreset != "" {
		url, err := uploadToCloudinary(file)
		if err != nil {
			log.Printf("Cloudinary upload failed: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload image!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Image uploaded.", fiber.Map{"url": url})
	}

	path, err := utils.SaveUploadedFile(file, "./public/uploads")
	if err != nil {
		log.Printf("Error saving uploaded file: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save image!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Image uploaded.", fiber.Map{
		"url": utils.GetFileURL(path),
	})
}

// uploadToCloudinary posts the image to Cloudinary's unsigned upload endpoint
func uploadToCloudinary(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	cfg := config.AppConfig
	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", cfg.CloudinaryCloudName)

	client := resty.New()
	resp, err := client.R().
		SetFileReader("file", file.Filename, io.Reader(src)).
		SetFormData(map[string]string{
			"upload_preset": cfg.CloudinaryUploadPreset,
		}).
		Post(endpoint)
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("cloudinary upload failed, code: %d", resp.StatusCode())
	}

	var uploadResp struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.Unmarshal(resp.Body(), &uploadResp); err != nil {
		return "", err
	}
	if uploadResp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary response missing secure_url")
	}

	return uploadResp.SecureURL, nil
}
