package handlers

import (
	"net/http"
	"os"

	"mediabox/logger"
	"mediabox/repositories"
	"mediabox/services"

	"github.com/gin-gonic/gin"
)

// BlobOpener serves blobs of the local storage driver; see storage.LocalStore.
type BlobOpener interface {
	Open(path string, token string) (*os.File, error)
}

type Options struct {
	SessionCookie string
	SecretKey     string
	StorageDriver string
	// LocalBlobs is set only with the local storage driver.
	LocalBlobs BlobOpener
}

type Handler struct {
	files         services.FileService
	flashes       repositories.FlashRepository
	sessionCookie string
	secretKey     string
	storageDriver string
	localBlobs    BlobOpener
}

func New(container *services.Container, opts Options) *Handler {
	if opts.SessionCookie == "" {
		opts.SessionCookie = "session"
	}
	return &Handler{
		files:         container.File,
		flashes:       container.Flashes,
		sessionCookie: opts.SessionCookie,
		secretKey:     opts.SecretKey,
		storageDriver: opts.StorageDriver,
		localBlobs:    opts.LocalBlobs,
	}
}

// serviceError resolves the status and user-facing message of a service error.
func serviceError(err error) (int, string) {
	if appErr, ok := services.AsAppError(err); ok {
		return appErr.HTTPCode, appErr.Message
	}
	return http.StatusInternalServerError, "internal error"
}

// respondServiceError writes err as an {ok:false} JSON reply. Server-side
// failures are logged.
func respondServiceError(c *gin.Context, err error, what string) {
	status, msg := serviceError(err)
	if status >= http.StatusInternalServerError {
		logger.Errorf(err, "%s", what)
	}
	c.JSON(status, uploadResponse{OK: false, Message: msg})
}
