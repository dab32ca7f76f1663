package storage

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/causelist/internal/common"
	"github.com/ternarybob/causelist/internal/interfaces"
	"github.com/ternarybob/causelist/internal/storage/badger"
	"github.com/ternarybob/causelist/internal/storage/file"
)

// NewStore creates a persisted store based on config
func NewStore(logger arbor.ILogger, config *common.Config) (interfaces.Store, error) {
	switch config.Storage.Type {
	case "file", "":
		return file.NewStore(logger, &config.Storage.File)
	case "badger":
		return badger.NewStore(logger, &config.Storage.Badger)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s (supported: 'file', 'badger')", config.Storage.Type)
	}
}
