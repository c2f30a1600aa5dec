package di

import (
	"dnd-webapp-demo/backend/internal/service"
	"dnd-webapp-demo/backend/pkg/cache"
	"dnd-webapp-demo/backend/pkg/config"
	"dnd-webapp-demo/backend/pkg/logger"

	"gorm.io/gorm"
)

// Container holds all the dependencies for the application
type Container struct {
	DB     *gorm.DB
	Config *config.Config
	Logger *logger.Logger
	Cache  *cache.Cache

	UserService       *service.UserService
	CharacterService  *service.CharacterService
	CollectionService *service.CollectionService
	EquipmentService  *service.EquipmentService
	TemplateService   *service.TemplateService
	SheetService      *service.SheetService
}

// New creates a new dependency injection container
func New(db *gorm.DB, cfg *config.Config, log *logger.Logger) *Container {
	configCache := cache.New(cfg.Cache.TTL, cfg.Cache.PurgeWindow, cfg.Cache.MaxSize)

	userService := service.NewUserService(db)
	characterService := service.NewCharacterService(db)
	collectionService := service.NewCollectionService(db)
	equipmentService := service.NewEquipmentService(db)
	templateService := service.NewTemplateService(db, characterService, configCache)
	sheetService := service.NewSheetService(db, characterService, collectionService, equipmentService, templateService)

	return &Container{
		DB:     db,
		Config: cfg,
		Logger: log,
		Cache:  configCache,

		UserService:       userService,
		CharacterService:  characterService,
		CollectionService: collectionService,
		EquipmentService:  equipmentService,
		TemplateService:   templateService,
		SheetService:      sheetService,
	}
}
