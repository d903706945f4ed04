package repository

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/openvol/missionhub/internal/model"
)

var _ RefDataRepository = &RefDataFileRepository{}

// RefDataFileRepository loads countries, cities, themes and skills from a
// YAML file into the database and reloads on file change. The tables are
// rebuilt from scratch on every load so removals in the file take effect.
type RefDataFileRepository struct {
	file   string
	logger *slog.Logger
	db     *gorm.DB

	watcher *fsnotify.Watcher
}

func NewRefDataFileRepo(db *gorm.DB, file string) *RefDataFileRepository {
	return &RefDataFileRepository{
		logger: slog.Default().With("logger", "RefDataRepo"),
		file:   file,
		db:     db,
	}
}

func (r *RefDataFileRepository) Load() error {
	if _, err := os.Lstat(r.file); os.IsNotExist(err) {
		// create empty file
		f, err := os.Create(r.file)
		if err != nil {
			return err
		}

		return f.Close()
	}

	dat, err := os.ReadFile(r.file)
	if err != nil {
		return err
	}

	data := new(model.RefData)

	if err := yaml.Unmarshal(dat, data); err != nil {
		return err
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&model.Country{}, &model.City{}, &model.Theme{}, &model.Skill{}} {
			if err := tx.Where("id > 0").Delete(m).Error; err != nil {
				return err
			}
		}

		for _, c := range data.Countries {
			if err := tx.Create(c).Error; err != nil {
				return err
			}
		}

		for _, c := range data.Cities {
			if err := tx.Create(c).Error; err != nil {
				return err
			}
		}

		for _, t := range data.Themes {
			if err := tx.Create(t).Error; err != nil {
				return err
			}
		}

		for _, s := range data.Skills {
			if err := tx.Create(s).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *RefDataFileRepository) Start() error {
	if err := r.Load(); err != nil {
		return err
	}

	var err error
	r.watcher, err = fsnotify.NewWatcher()

	if err != nil {
		return err
	}

	if err := r.watcher.Add(r.file); err != nil {
		return err
	}

	go func() {
		for {
			select {
			case event, ok := <-r.watcher.Events:
				if !ok {
					return
				}

				r.logger.Debug(fmt.Sprintf("event: %v", event))

				if event.Has(fsnotify.Write) && event.Name == r.file {
					r.logger.Info("refdata file is modified, reloading")

					if err := r.Load(); err != nil {
						r.logger.Error("error", slog.Any("error", err))
					}
				}
			case err, ok := <-r.watcher.Errors:
				if !ok {
					return
				}

				r.logger.Error("error", slog.Any("error", err))
			}
		}
	}()

	return nil
}

func (r *RefDataFileRepository) Stop() {
	if r.watcher != nil {
		_ = r.watcher.Close()
	}
}
