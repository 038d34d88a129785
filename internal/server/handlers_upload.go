package server

import (
	"log"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"concord/internal/database"
	"concord/internal/storage"
)

var uploadTypes = map[string]bool{
	"server":         true,
	"message":        true,
	"direct-message": true,
}

// HandlerUpload stores a multipart file in object storage and returns its
// public URL for use as an imageUrl or fileUrl.
func (s *Server) HandlerUpload(c echo.Context) error {
	resp := make(map[string]any)

	profile := s.auth.CurrentProfile(c)
	if profile == nil {
		resp["error"] = "Unauthorized"
		return c.JSON(http.StatusUnauthorized, resp)
	}

	uploadType := c.FormValue("uploadType")
	if !uploadTypes[uploadType] {
		resp["error"] = "Invalid upload type"
		return c.JSON(http.StatusBadRequest, resp)
	}

	header, err := c.FormFile("file")
	if err != nil {
		resp["error"] = "File missing"
		return c.JSON(http.StatusBadRequest, resp)
	}

	file, err := header.Open()
	if err != nil {
		log.Println("opening upload:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}
	defer file.Close()

	entityID := c.FormValue("entityId")
	if entityID == "" {
		entityID = profile.ID
	}

	key := storage.BuildKey(uploadType, database.BareID(entityID), filepath.Base(header.Filename))
	url, err := s.uploads.Upload(key, header.Header.Get("Content-Type"), file)
	if err != nil {
		log.Println("uploading file:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}

	resp["url"] = url
	return c.JSON(http.StatusOK, resp)
}
