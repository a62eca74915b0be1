package app

import (
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingualatina/internal/infrastructure/config"
	"github.com/eslsoft/lingualatina/internal/infrastructure/server"
	"github.com/eslsoft/lingualatina/internal/usecase"
	"github.com/eslsoft/lingualatina/internal/usecase/backup"
	"github.com/eslsoft/lingualatina/internal/usecase/translate"
)

// Container aggregates the application dependencies produced by Wire.
type Container struct {
	Config     *config.Config
	Logger     *logrus.Logger
	Session    *usecase.Session
	Backup     *backup.Service
	Translator *translate.Service
	Server     *server.Server
}
