package http

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// DocumentQueue schedules background work after a document save.
type DocumentQueue interface {
	EnqueueDocumentSaved(ctx context.Context, name, text string) error
}

// FileInfo describes one document in a listing.
type FileInfo struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

type fileContent struct {
	Content string `json:"content"`
}

// FilesController serves document CRUD under a single configured
// directory. Names are plain file names; anything that could escape the
// directory is rejected.
type FilesController struct {
	baseDir string
	queue   DocumentQueue
}

// NewFilesController creates a files controller. The queue is optional;
// without one, saves simply skip the background follow-up work.
func NewFilesController(baseDir string, queue DocumentQueue) *FilesController {
	return &FilesController{baseDir: baseDir, queue: queue}
}

// resolve validates a client-supplied name and returns its absolute
// path inside the documents directory.
func (f *FilesController) resolve(name string) (string, bool) {
	if name == "" || name == "." || name == ".." {
		return "", false
	}
	if strings.ContainsAny(name, "/\\") {
		return "", false
	}
	if filepath.Base(name) != name {
		return "", false
	}
	return filepath.Join(f.baseDir, name), true
}

func (f *FilesController) List(c *gin.Context) {
	entries, err := os.ReadDir(f.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			c.JSON(http.StatusOK, gin.H{"files": []FileInfo{}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	files := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Name:     entry.Name(),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	c.JSON(http.StatusOK, gin.H{"files": files})
}

func (f *FilesController) Get(c *gin.Context) {
	path, ok := f.resolve(c.Param("name"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file name"})
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"name": c.Param("name"), "content": string(data)})
}

func (f *FilesController) Put(c *gin.Context) {
	path, ok := f.resolve(c.Param("name"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file name"})
		return
	}

	var body fileContent
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := os.MkdirAll(f.baseDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := os.WriteFile(path, []byte(body.Content), 0o644); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if f.queue != nil {
		if err := f.queue.EnqueueDocumentSaved(c.Request.Context(), c.Param("name"), body.Content); err != nil {
			log.Printf("Failed to enqueue background tasks for %s: %v", c.Param("name"), err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"name": c.Param("name"), "saved": true})
}

func (f *FilesController) Delete(c *gin.Context) {
	path, ok := f.resolve(c.Param("name"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file name"})
		return
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"name": c.Param("name"), "deleted": true})
}
