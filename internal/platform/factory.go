package platform

import (
	"context"

	"github.com/aretw0/scribe/pkg/adapters/fs"
	"github.com/aretw0/scribe/pkg/audio"
	"github.com/aretw0/scribe/pkg/core"
)

// Init builds and initializes the document repository.
func Init(opts ...Option) (core.Repository, error) {
	o := parseOptions(opts)
	if o.repository != nil {
		return o.repository, nil
	}

	dir, err := resolveStorageDir(o)
	if err != nil {
		return nil, err
	}

	repo := fs.NewRepository(fs.Config{
		Path:         dir,
		MustExist:    o.mustExist,
		Logger:       o.logger,
		ErrorHandler: o.errorHandler,
	})
	if err := repo.Initialize(context.Background()); err != nil {
		return nil, err
	}
	if o.logger != nil {
		o.logger.Debug("document store ready", "path", dir)
	}
	return repo, nil
}

// New creates the document service.
func New(opts ...Option) (*core.Service, error) {
	repo, err := Init(opts...)
	if err != nil {
		return nil, err
	}
	o := parseOptions(opts)
	return core.NewService(repo,
		core.WithServiceLogger(o.logger),
		core.WithEventBuffer(o.eventBuffer),
	), nil
}

// NewAudio creates an idle audio controller. The player is chosen once here
// from the platform table unless overridden.
func NewAudio(opts ...Option) *audio.Controller {
	o := parseOptions(opts)
	player := audio.DefaultPlayer()
	if o.player != nil {
		player = *o.player
	}
	return audio.NewController(player,
		audio.WithLogger(o.logger),
		audio.WithSpawner(o.spawner),
	)
}
