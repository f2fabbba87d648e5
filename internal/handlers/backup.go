package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"canteen-system/internal/backup"
)

// BackupHandler exposes raw database file export/import. Only meaningful for
// the file-backed sqlite driver; fileBacked is false for postgres.
type BackupHandler struct {
	dbPath     string
	fileBacked bool
}

func NewBackupHandler(dbPath string, fileBacked bool) *BackupHandler {
	return &BackupHandler{dbPath: dbPath, fileBacked: fileBacked}
}

func (h *BackupHandler) Export(c *gin.Context) {
	if !h.fileBacked {
		c.JSON(http.StatusConflict, errorResponse("Backup requires the sqlite driver"))
		return
	}

	exportPath := filepath.Join(os.TempDir(),
		"canteen-backup-"+time.Now().Format("20060102-150405")+".db")
	if err := backup.Export(h.dbPath, exportPath); err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Export failed"))
		return
	}
	defer os.Remove(exportPath)

	c.FileAttachment(exportPath, "canteen-backup.db")
}

func (h *BackupHandler) Import(c *gin.Context) {
	if !h.fileBacked {
		c.JSON(http.StatusConflict, errorResponse("Backup requires the sqlite driver"))
		return
	}

	file, _, err := c.Request.FormFile("database")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Upload a database file in the 'database' field"))
		return
	}
	defer file.Close()

	if err := backup.Import(file, h.dbPath); err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Import failed"))
		return
	}

	c.JSON(http.StatusOK, successResponse(
		"Database imported successfully. Restart the service to load the imported database.", nil))
}
