package services

import (
	"mediabox/repositories"
	"mediabox/storage"
)

type Container struct {
	File    FileService
	Flashes repositories.FlashRepository
}

func NewContainer(repos repositories.Container, blobs storage.ObjectStore, opts FileServiceOptions) *Container {
	return &Container{
		File:    NewFileService(repos.Files, blobs, opts),
		Flashes: repos.Flashes,
	}
}
