// POST /user/register     # Register (public)
// POST /user/login        # Login (public)
// GET  /api/health        # Health check (public)
// POST /api/sync          # Reconcile offline changes (auth)
// GET  /api/notes         # List notes (auth)
// POST /api/notes         # Create note (auth)
// GET  /api/notes/{id}    # Get note (auth)
// PUT  /api/notes/{id}    # Update note (auth)
// DELETE /api/notes/{id}  # Delete note (auth)
// GET  /api/folders       # List folders (auth)
// POST /api/folders       # Create folder (auth)
// GET  /api/folders/{id}  # Get folder (auth)
// PUT  /api/folders/{id}  # Update folder (auth)
// DELETE /api/folders/{id} # Delete folder (auth)
// POST /api/uploads       # Presigned audio upload URL (auth)
// GET  /api/uploads       # Presigned audio download URL (auth)

package api

import (
	folderAPI "notesync/internal/app/server/api/http/folder"
	healthAPI "notesync/internal/app/server/api/http/health"
	"notesync/internal/app/server/api/http/middleware"
	"notesync/internal/app/server/api/http/middleware/auth"
	"notesync/internal/app/server/api/http/middleware/logger"
	noteAPI "notesync/internal/app/server/api/http/note"
	syncAPI "notesync/internal/app/server/api/http/sync"
	uploadAPI "notesync/internal/app/server/api/http/upload"
	userAPI "notesync/internal/app/server/api/http/user"
	"notesync/internal/domain/folder"
	"notesync/internal/domain/note"
	"notesync/internal/domain/session"
	"notesync/internal/domain/sync"
	"notesync/internal/domain/user"
	"notesync/internal/infrastructure/blob"
	"notesync/internal/infrastructure/storage/postgres"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

type Handlers struct {
	Health *healthAPI.Handler
	User   *userAPI.Handler
	Note   *noteAPI.Handler
	Folder *folderAPI.Handler
	Sync   *syncAPI.Handler
	Upload *uploadAPI.Handler
}

// New builds a *chi.Mux with every operation registered through huma.
func New(storage *postgres.Storage, blobStore *blob.Store, idx note.Indexer, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("Notesync API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, config)

	h := handlers(storage, blobStore, idx, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Note.SetupRoutes(API)
	h.Folder.SetupRoutes(API)
	h.Sync.SetupRoutes(API)
	h.Upload.SetupRoutes(API)

	return mux
}

func handlers(storage *postgres.Storage, blobStore *blob.Store, idx note.Indexer, log *slog.Logger) *Handlers {
	sessionRepo := postgres.NewSessionRepository(storage, log)
	sessionService := session.NewService(sessionRepo, log)
	authMW := auth.New(sessionService, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	userRepo := postgres.NewUserRepository(storage.Pool(), log)
	userService := user.NewService(userRepo, user.NewPasswordValidator(), log)
	middlewares.Add(loggerMW.Middleware())
	userHandler := userAPI.NewHandler(userService, sessionService, log, middlewares.GetAllAndClear())

	noteRepo := postgres.NewNoteRepository(storage.Pool(), log)
	noteService := note.NewService(noteRepo, blobStore, idx, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	noteHandler := noteAPI.NewHandler(noteService, log, middlewares.GetAllAndClear())

	folderRepo := postgres.NewFolderRepository(storage.Pool(), log)
	folderService := folder.NewService(folderRepo, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	folderHandler := folderAPI.NewHandler(folderService, log, middlewares.GetAllAndClear())

	syncRepo := postgres.NewSyncRepository(storage.Pool(), log)
	syncService := sync.NewService(syncRepo, blobStore, idx, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	syncHandler := syncAPI.NewHandler(syncService, log, middlewares.GetAllAndClear())

	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	uploadHandler := uploadAPI.NewHandler(blobStore, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		User:   userHandler,
		Note:   noteHandler,
		Folder: folderHandler,
		Sync:   syncHandler,
		Upload: uploadHandler,
	}
}
