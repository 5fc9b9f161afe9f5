package tui

import (
	"go.uber.org/zap"

	"github.com/idilsaglam/phonebook/internal/directory"
)

type Deps struct {
	Collection directory.Collection
	BaseURL    string

	Logger *zap.Logger
	Debug  bool
}
