package http

import "github.com/swapnilyadv/CloneX/internal/projects/repository"

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	store repository.Store
}

func New(store repository.Store) *Handler {
	return &Handler{store: store}
}
