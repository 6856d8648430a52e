package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/buynic/storefront-api/services"
	"github.com/buynic/storefront-api/utils"
)

// UploadImage handles POST /api/v1/admin/uploads - uploads a product or
// review image and returns the storage key plus an access URL. The folder
// form field selects the destination; it defaults to product images.
func UploadImage(c *gin.Context) {
	if requireAdmin(c) == nil {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "No file provided in the 'file' field",
			},
		})
		return
	}

	folder := c.PostForm("folder")
	switch folder {
	case "":
		folder = services.ProductImageFolder
	case services.ProductImageFolder, services.ReviewImageFolder:
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Folder must be 'products' or 'reviews'",
			},
		})
		return
	}

	imageService := services.GetImageService()
	if imageService == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_ERROR",
				"message": "Image storage is not configured",
			},
		})
		return
	}

	imageKey, err := imageService.UploadImage(folder, fileHeader)
	if err != nil {
		if uploadErr, ok := err.(*utils.FileUploadError); ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    uploadErr.Code,
					"message": uploadErr.Message,
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_ERROR",
				"message": "Failed to upload image",
				"details": err.Error(),
			},
		})
		return
	}

	url, err := imageService.GetImageURL(imageKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_ERROR",
				"message": "Image uploaded but URL generation failed",
				"details": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"image_s3_key": imageKey,
			"image_url":    url,
		},
	})
}
