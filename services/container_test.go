package services

import (
	"testing"

	"mediabox/repositories"
)

func TestNewContainerInitializesServices(t *testing.T) {
	flashes := newFakeFlashRepo()
	container := NewContainer(repositories.Container{Files: newFakeRecordRepo(), Flashes: flashes}, newFakeBlobStore(), FileServiceOptions{})

	if container == nil {
		t.Fatalf("expected container instance")
	}
	if container.File == nil {
		t.Fatalf("expected file service to be initialized")
	}
	if container.Flashes != flashes {
		t.Fatalf("expected flash repository to be passed through")
	}
}
