package bootstrap

import (
	"log"
	"time"

	"task-tracking-be/internal/config"
	"task-tracking-be/internal/controller"
	"task-tracking-be/internal/pkg/logger"
	"task-tracking-be/internal/repository/memory"
	"task-tracking-be/internal/repository/unitofwork"
	"task-tracking-be/internal/service"
	pkgNats "task-tracking-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	NoteController    controller.INoteController
	GroupController   controller.IGroupController
	HistoryController controller.IHistoryController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS forwarding is optional; without a URL events stay local.
	var natsPub *pkgNats.Publisher
	if cfg.App.NatsURL != "" {
		var err error
		natsPub, err = pkgNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPub = nil
		}
	}

	statsCache := memory.NewStatsCache(time.Duration(cfg.Archive.StatsCacheTTLSeconds) * time.Second)

	// 3. Services
	publisherService := service.NewPublisherService(cfg.App.LifecycleTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.LifecycleTopic,
		uowFactory,
		natsPub,
		sysLogger,
	)

	archiveService := service.NewArchiveService(uowFactory)
	noteService := service.NewNoteService(uowFactory, archiveService, publisherService, sysLogger)
	groupService := service.NewGroupService(uowFactory, publisherService, sysLogger)
	historyService := service.NewHistoryService(uowFactory, statsCache)

	// 4. Controllers
	return &Container{
		NoteController:    controller.NewNoteController(noteService),
		GroupController:   controller.NewGroupController(groupService),
		HistoryController: controller.NewHistoryController(historyService, archiveService),

		ConsumerService: consumerService,
	}
}
