package handler

import (
	"github.com/gin-gonic/gin"

	"bizdocs/internal/service"
)

// FileHandler serves the rendered files in the output directory.
type FileHandler struct {
	fileService service.FileService
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(fileService service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// List handles GET /api/v1/files
// @Summary List generated files
// @Description List the PDF files in the output directory, newest first
// @Tags files
// @Produce json
// @Success 200 {object} Response{data=[]domain.FileEntry} "Files"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /files [get]
func (h *FileHandler) List(c *gin.Context) {
	files, err := h.fileService.List()
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, files)
}

// Download handles GET /api/v1/files/:name
// @Summary Download a generated file
// @Tags files
// @Produce application/pdf
// @Param name path string true "File name as listed"
// @Success 200 {file} file "File content"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "File not found"
// @Security BearerAuth
// @Router /files/{name} [get]
func (h *FileHandler) Download(c *gin.Context) {
	name := c.Param("name")
	p, err := h.fileService.Path(name)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.FileAttachment(p, name)
}
